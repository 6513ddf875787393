package pipeline

import (
	"bytes"
	"strings"

	"github.com/matzehuels/fiberroute/pkg/cache"
	"github.com/matzehuels/fiberroute/pkg/component"
	fio "github.com/matzehuels/fiberroute/pkg/io"
)

// BuildComponent returns the component to route: Input if set, else the
// inline component file, else the named built-in cell.
func BuildComponent(opts Options) (*component.Component, error) {
	switch {
	case opts.Input != nil:
		return opts.Input, nil
	case opts.Component != "":
		format := opts.ComponentFormat
		if format == "" {
			format = fio.FormatJSON
		}
		return fio.Read(strings.NewReader(opts.Component), format)
	default:
		return component.Cells[opts.Cell](opts.Length), nil
	}
}

// HashComponent returns the content hash of c's component file.
func HashComponent(c *component.Component) (string, error) {
	var buf bytes.Buffer
	if err := fio.WriteJSON(c, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}
