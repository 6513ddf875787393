package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/geom"
	"github.com/matzehuels/fiberroute/pkg/graph"
)

func testLayout() graph.Layout {
	return graph.Layout{
		Name:   "straight_fs",
		Bounds: geom.R(-20, -40, 20, 10),
		Instances: []graph.Instance{
			{ID: "straight", Cell: "straight", Kind: component.KindComponent, Bounds: geom.R(-0.25, 0, 0.25, 10)},
			{ID: "wg#0", Cell: "wg_L20", Kind: component.KindWaveguide, Bounds: geom.R(-0.25, -20, 0.25, 0)},
			{ID: "grating_coupler_te", Cell: "grating_coupler_te", Kind: component.KindCoupler, Bounds: geom.R(-12, -50, 12, -20)},
		},
		Paths: []graph.Path{
			{Points: [][2]float64{{0, 0}, {0, -20}}, Width: 0.5, Layer: "1/0"},
		},
		Labels: []graph.Label{{Text: "opt_te_1530_(straight)_0_1", X: 0, Y: -20, Layer: "201/0"}},
	}
}

func TestLayoutSVG(t *testing.T) {
	svg := string(LayoutSVG(testLayout()))

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("LayoutSVG is not a single svg element:\n%s", svg)
	}
	// coupler bounds reach y = -50, so the frame is 60 + 2 margins high
	if !strings.Contains(svg, `viewBox="0 0 60.0 80.0"`) {
		t.Errorf("viewBox not sized to the layout:\n%s", svg)
	}
	for _, want := range []string{
		`class="component"`,
		`class="coupler"`,
		`<polyline class="wg" data-layer="1/0" stroke-width="0.500"`,
		"opt_te_1530_(straight)_0_1",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("LayoutSVG missing %q", want)
		}
	}
	if strings.Contains(svg, `id="wg#0"`) {
		t.Error("waveguide instances should be drawn as paths only")
	}
	if got := string(LayoutSVG(testLayout())); got != svg {
		t.Error("LayoutSVG is not deterministic")
	}
}

func TestLayoutSVGFlipsY(t *testing.T) {
	l := graph.Layout{
		Name:  "flip",
		Paths: []graph.Path{{Points: [][2]float64{{0, 0}, {0, 10}}, Width: 1, Layer: "1/0"}},
	}
	svg := string(LayoutSVG(l))
	// the top of the path (y = 10) lands on the top margin
	if !strings.Contains(svg, `points="10.000,20.000 10.000,10.000"`) {
		t.Errorf("path not flipped into SVG coordinates:\n%s", svg)
	}
}

func TestLayoutSVGEscapes(t *testing.T) {
	l := testLayout()
	l.Labels = []graph.Label{{Text: "a<b&c"}}
	if svg := string(LayoutSVG(l)); !strings.Contains(svg, "a&lt;b&amp;c") {
		t.Errorf("label not escaped:\n%s", svg)
	}
}

func testNetlist() graph.Graph {
	return graph.Graph{
		Name: "straight_fs",
		Nodes: []graph.Node{
			{ID: "straight", Cell: "straight", Kind: component.KindComponent},
			{ID: "grating_coupler_te#0", Cell: "grating_coupler_te", Kind: component.KindCoupler, Label: "opt_te_1530_(straight)_0_1"},
		},
		Edges: []graph.Edge{
			{From: "straight", FromPort: "W0", To: "grating_coupler_te#0", ToPort: "o1", Length: 42.5},
		},
	}
}

func TestNetlistDOT(t *testing.T) {
	dot := NetlistDOT(testNetlist())
	for _, want := range []string{
		"digraph G {",
		`"straight" [label="straight"];`,
		`"grating_coupler_te#0" [label="grating_coupler_te#0\nopt_te_1530_(straight)_0_1", shape=trapezium`,
		`"straight" -> "grating_coupler_te#0" [taillabel="W0", headlabel="o1", label="42.5 um"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("NetlistDOT missing %q in:\n%s", want, dot)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), NetlistDOT(testNetlist()))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("RenderSVG did not normalize the svg tag:\n%.300s", svg)
	}
}

func TestRenderSVGInvalid(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG accepted malformed DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "graphviz tag",
			in:   `<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox = %s, want %s", got, tt.want)
			}
		})
	}
}
