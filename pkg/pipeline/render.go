package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/fiberroute/pkg/graph"
	"github.com/matzehuels/fiberroute/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, routed Routed, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))

	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = graph.MarshalLayout(routed.Layout)
		case FormatSVG:
			data = render.LayoutSVG(routed.Layout)
		case FormatNetlist:
			data, err = graph.MarshalGraph(routed.Netlist)
		case FormatDOT:
			data = []byte(render.NetlistDOT(routed.Netlist))
		case FormatNetlistSVG:
			data, err = render.RenderSVG(ctx, render.NetlistDOT(routed.Netlist))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
