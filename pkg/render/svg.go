package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/geom"
	"github.com/matzehuels/fiberroute/pkg/graph"
)

// Margin is the space left around the layout, in micrometers.
const Margin = 10.0

const layoutCSS = `
    .component { fill: #e8e8e8; stroke: #333; stroke-width: 0.5; }
    .coupler { fill: #ffd27f; stroke: #b07800; stroke-width: 0.5; }
    .wg { fill: none; stroke: #1f6fd1; stroke-linecap: butt; stroke-linejoin: round; }
    .label { font-family: monospace; font-size: 4px; fill: #444; }
    .port { fill: #d14; }`

// LayoutSVG draws l. The output is deterministic for a given layout.
func LayoutSVG(l graph.Layout) []byte {
	bounds := layoutBounds(l)
	w := bounds.Width() + 2*Margin
	h := bounds.Height() + 2*Margin
	// flip y: SVG grows downwards
	tx := func(x float64) float64 { return x - bounds.Min.X + Margin }
	ty := func(y float64) float64 { return bounds.Max.Y - y + Margin }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(l.Name))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", layoutCSS)

	for _, in := range l.Instances {
		if in.Kind == component.KindWaveguide {
			continue
		}
		b := in.Bounds
		fmt.Fprintf(&buf, `  <rect id="%s" class="%s" x="%.3f" y="%.3f" width="%.3f" height="%.3f"><title>%s</title></rect>`+"\n",
			html.EscapeString(in.ID), in.Kind, tx(b.Min.X), ty(b.Max.Y), b.Width(), b.Height(), html.EscapeString(in.Cell))
	}

	for _, p := range l.Paths {
		pts := make([]string, len(p.Points))
		for i, pt := range p.Points {
			pts[i] = fmt.Sprintf("%.3f,%.3f", tx(pt[0]), ty(pt[1]))
		}
		fmt.Fprintf(&buf, `  <polyline class="wg" data-layer="%s" stroke-width="%.3f" points="%s"/>`+"\n",
			p.Layer, p.Width, strings.Join(pts, " "))
	}

	for _, p := range l.Ports {
		fmt.Fprintf(&buf, `  <circle class="port" cx="%.3f" cy="%.3f" r="1"><title>%s</title></circle>`+"\n",
			tx(p.X), ty(p.Y), html.EscapeString(p.Name))
	}

	for _, lb := range l.Labels {
		fmt.Fprintf(&buf, `  <text class="label" x="%.3f" y="%.3f">%s</text>`+"\n",
			tx(lb.X), ty(lb.Y), html.EscapeString(lb.Text))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// layoutBounds is the union of the recorded bounds and everything drawn.
// Points are folded in one by one since a degenerate Rect at the origin
// counts as empty for Rect.Union.
func layoutBounds(l graph.Layout) geom.Rect {
	pts := []geom.Point{}
	if !l.Bounds.Empty() {
		pts = append(pts, l.Bounds.Min, l.Bounds.Max)
	}
	for _, in := range l.Instances {
		pts = append(pts, in.Bounds.Min, in.Bounds.Max)
	}
	for _, p := range l.Paths {
		for _, pt := range p.Points {
			pts = append(pts, geom.Pt(pt[0], pt[1]))
		}
	}
	if len(pts) == 0 {
		return geom.Rect{}
	}
	return geom.BoundsOf(pts...)
}
