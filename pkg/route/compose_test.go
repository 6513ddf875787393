package route

import (
	"testing"

	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/geom"
)

func TestComposeOrdering(t *testing.T) {
	s1 := component.Label{Text: "s1", Position: geom.Pt(1, 0)}
	s2 := &component.Reference{Cell: stubCell}
	n1 := component.Label{Text: "n1", Position: geom.Pt(2, 3)}
	n2 := component.Label{Text: "n2", Position: geom.Pt(4, 5)}
	n3 := component.Label{Text: "n3", Position: geom.Pt(-1, 0)}
	gc := &component.Reference{Cell: stubCell, Transform: geom.Transform{Origin: geom.Pt(0, -5)}}
	ignored := &component.Reference{Cell: stubCell}

	south := Result{
		Elements: []component.Element{s1, s2},
		Couplers: [][]component.Element{{s2}},
	}
	north := Result{
		Elements: []component.Element{component.Group{n1, n2}, n3},
		Couplers: [][]component.Element{{gc}, {ignored}},
	}
	elements, couplers := Compose(south, north)

	if len(elements) != 5 {
		t.Fatalf("len(elements) = %d, want 5", len(elements))
	}
	if elements[0] != component.Element(s1) || elements[1] != component.Element(s2) {
		t.Error("south elements not preserved in order")
	}
	wantText := []string{"n1", "n2", "n3"}
	for i, e := range elements[2:] {
		l, ok := e.(component.Label)
		if !ok {
			t.Fatalf("elements[%d] = %T, want flattened Label", i+2, e)
		}
		if l.Text != wantText[i] {
			t.Errorf("elements[%d] = %s, want %s", i+2, l.Text, wantText[i])
		}
	}
	if got := elements[2].(component.Label).Position; got != geom.Pt(-2, -3) {
		t.Errorf("n1 at %v, want (-2, -3)", got)
	}

	if len(couplers) != 2 {
		t.Fatalf("len(couplers) = %d, want 2", len(couplers))
	}
	if couplers[0] != component.Element(s2) {
		t.Error("south coupler identity not preserved")
	}
	if got := couplers[1].(*component.Reference).Transform.Origin; got != geom.Pt(0, 5) {
		t.Errorf("north coupler at %v, want (0, 5)", got)
	}
}

func TestComposeEmptyNorth(t *testing.T) {
	south := Result{
		Elements: []component.Element{component.Label{Text: "s"}},
		Couplers: [][]component.Element{{&component.Reference{Cell: stubCell}}},
	}
	elements, couplers := Compose(south, Result{})
	if len(elements) != 1 || len(couplers) != 1 {
		t.Errorf("Compose = (%d, %d) elements, want (1, 1)", len(elements), len(couplers))
	}
}
