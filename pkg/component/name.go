package component

import (
	"fmt"
	"math"
	"strings"
)

// Param is one cell parameter that contributes to a cell name when it
// differs from its default.
type Param struct {
	Key     string
	Value   float64
	Default float64
}

// CellName builds a deterministic cell name from a prefix and the
// parameters that differ from their defaults, e.g. "straight_L500n".
func CellName(prefix string, params ...Param) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range params {
		if p.Value == p.Default {
			continue
		}
		b.WriteString("_")
		b.WriteString(p.Key)
		b.WriteString(Value(p.Value))
	}
	return b.String()
}

// Value formats a number for use in a cell name: integers print as-is,
// values below one as nanometers ("500n") and others with "p" for the
// decimal point ("2p5"). Negative values are prefixed with "m".
func Value(v float64) string {
	if v < 0 {
		return "m" + Value(-v)
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	if v > 1e-3 && v < 1 {
		return fmt.Sprintf("%dn", int64(math.Round(v*1e3)))
	}
	s := strings.TrimRight(fmt.Sprintf("%.3f", v), "0")
	return strings.Replace(s, ".", "p", 1)
}
