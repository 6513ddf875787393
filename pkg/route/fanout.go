package route

import "github.com/matzehuels/fiberroute/pkg/geom"

// FanoutLength returns the straight length each edge must fan out so that
// two opposing fiber bundles stay minSpacing apart.
//
// When width+2*offset already reaches minSpacing, it returns (0, false) and
// the array router uses its own default. Otherwise the deficit is snapped to
// snapNM nanometers and then halved, since both edges share it; the half is
// deliberately not re-snapped.
func FanoutLength(width, offset, minSpacing, snapNM float64) (float64, bool) {
	if width+2*offset >= minSpacing {
		return 0, false
	}
	raw := minSpacing - width - 2*offset
	return geom.SnapNM(raw, snapNM) / 2, true
}
