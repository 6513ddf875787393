// Package render draws routed layouts and their netlists.
//
// # Layout SVG
//
// [LayoutSVG] draws a [graph.Layout] as a flat SVG: component and coupler
// outlines, waveguide centerlines at their drawn width, and measurement
// labels. Coordinates are micrometers with y pointing up, flipped to SVG's
// y-down frame.
//
//	svg := render.LayoutSVG(layout)
//
// # Netlist Diagrams
//
// [NetlistDOT] writes the netlist as a Graphviz digraph, couplers on the
// left and right of the device under test. [RenderSVG] lays the DOT out with
// Graphviz:
//
//	dot := render.NetlistDOT(netlist)
//	svg, err := render.RenderSVG(ctx, dot)
package render
