package component

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/fiberroute/pkg/geom"
)

func TestPortFacing(t *testing.T) {
	tests := []struct {
		orientation float64
		want        Facing
	}{
		{0, East},
		{90, North},
		{180, West},
		{270, South},
		{-90, South},
		{360, East},
		{89, North},
	}

	for _, tt := range tests {
		p := Port{Orientation: tt.orientation}
		if got := p.Facing(); got != tt.want {
			t.Errorf("Facing(%v) = %v, want %v", tt.orientation, got, tt.want)
		}
	}
}

func TestPortsOrder(t *testing.T) {
	ps := NewPorts(Port{Name: "b"}, Port{Name: "a"}, Port{Name: "c"})

	if diff := cmp.Diff([]string{"b", "a", "c"}, ps.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	ps.Set(Port{Name: "a", Width: 2})
	if diff := cmp.Diff([]string{"b", "a", "c"}, ps.Names()); diff != "" {
		t.Errorf("replacing moved the port (-want +got):\n%s", diff)
	}
	if p, _ := ps.Get("a"); p.Width != 2 {
		t.Errorf("Get(a).Width = %v, want 2", p.Width)
	}

	if !ps.Delete("a") {
		t.Fatal("Delete(a) = false, want true")
	}
	if ps.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if diff := cmp.Diff([]string{"b", "c"}, ps.Names()); diff != "" {
		t.Errorf("after delete (-want +got):\n%s", diff)
	}
}

func TestPortsCloneIsIndependent(t *testing.T) {
	ps := NewPorts(Port{Name: "a"}, Port{Name: "b"})
	cp := ps.Clone()
	cp.Delete("a")
	cp.Set(Port{Name: "z"})

	if ps.Len() != 2 || !ps.Has("a") || ps.Has("z") {
		t.Errorf("original changed: %v", ps.Names())
	}
}

func TestAddPortNumbers(t *testing.T) {
	c := New("dut")
	for _, n := range []string{"o1", "o2", "o3"} {
		if err := c.AddPort(Port{Name: n}); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.AddPort(Port{Name: "o2"}); err == nil {
		t.Error("duplicate AddPort should fail")
	}
	for i, p := range c.Ports.List() {
		if p.Number != i+1 {
			t.Errorf("%s.Number = %d, want %d", p.Name, p.Number, i+1)
		}
		if p.Type != Optical {
			t.Errorf("%s.Type = %q, want optical", p.Name, p.Type)
		}
	}
}

func TestStraight(t *testing.T) {
	c := Straight(0.5, DefaultWGWidth)
	if c.Name != "straight_L500n" {
		t.Errorf("Name = %q, want straight_L500n", c.Name)
	}
	if got := c.XSize(); got != 0.5 {
		t.Errorf("XSize() = %v, want 0.5", got)
	}
	if diff := cmp.Diff([]string{"W0", "E0"}, c.Ports.Names()); diff != "" {
		t.Errorf("ports (-want +got):\n%s", diff)
	}
	if len(c.Labels) != 0 {
		t.Errorf("len(Labels) = %d, want 0", len(c.Labels))
	}
}

func TestRotateLeavesOriginal(t *testing.T) {
	c := Straight(10, DefaultWGWidth)
	before := c.Copy()

	r := c.Rotate(90)

	if diff := cmp.Diff(before.Ports.List(), c.Ports.List()); diff != "" {
		t.Errorf("original ports changed (-want +got):\n%s", diff)
	}
	if r.Name != "straight_rotate90" {
		t.Errorf("Name = %q, want straight_rotate90", r.Name)
	}

	w0, _ := r.Port("W0")
	if w0.Facing() != South {
		t.Errorf("W0 faces %v after +90, want south", w0.Facing())
	}
	e0, _ := r.Port("E0")
	if e0.Center != geom.Pt(0, 10) || e0.Facing() != North {
		t.Errorf("E0 = %+v, want (0,10) facing north", e0)
	}
	if r.Bounds != c.Bounds.Rotate(90) {
		t.Errorf("Bounds = %v, want %v", r.Bounds, c.Bounds.Rotate(90))
	}
}

func TestPortsByOrientation(t *testing.T) {
	c := MMI2x2(DefaultMMILength)

	west := c.PortsByOrientation(180)
	if len(west) != 2 || west[0].Name != "W0" || west[1].Name != "W1" {
		t.Errorf("PortsByOrientation(180) = %v", west)
	}

	south := c.Rotate(90).PortsByOrientation(270)
	if len(south) != 2 {
		t.Errorf("after +90, %d ports face south, want 2", len(south))
	}
}

func TestCopyIsDeep(t *testing.T) {
	c := Straight(10, DefaultWGWidth)
	c.AddLabel("x", geom.Pt(1, 1))
	cp := c.Copy()

	cp.Ports.Delete("W0")
	cp.Labels[0].Text = "y"
	cp.Paths[0].Points[0] = geom.Pt(-5, -5)
	cp.Info["length"] = 99.0

	if !c.Ports.Has("W0") {
		t.Error("port deleted from original")
	}
	if c.Labels[0].Text != "x" {
		t.Error("label changed on original")
	}
	if c.Paths[0].Points[0] != geom.Pt(0, 0) {
		t.Error("path changed on original")
	}
	if c.Info["length"] != 10.0 {
		t.Error("info changed on original")
	}
}

func TestReference(t *testing.T) {
	cell := Straight(10, DefaultWGWidth)
	top := New("top")
	ref := top.AddRef(cell, geom.Transform{Rotation: 90, Origin: geom.Pt(5, 0)})

	e0, ok := ref.Port("E0")
	if !ok {
		t.Fatal("E0 missing")
	}
	if e0.Center != geom.Pt(5, 10) || e0.Orientation != 90 {
		t.Errorf("E0 = %+v, want (5,10) @90", e0)
	}
	if top.Bounds != ref.Bounds() {
		t.Errorf("top bounds = %v, want %v", top.Bounds, ref.Bounds())
	}

	rot := ref.Rotate(180).(*Reference)
	if rot == ref {
		t.Error("Rotate returned the same reference")
	}
	p, _ := rot.Port("E0")
	if p.Center != geom.Pt(-5, -10) || p.Orientation != 270 {
		t.Errorf("rotated E0 = %+v, want (-5,-10) @270", p)
	}
}

func TestGroupAndLabels(t *testing.T) {
	g := Group{
		Label{Text: "a", Position: geom.Pt(1, 0)},
		Group{Label{Text: "b", Position: geom.Pt(0, 1)}},
		&Reference{Cell: Straight(1, DefaultWGWidth)},
	}
	rot := g.Rotate(180)

	labels := Labels([]Element{rot})
	if len(labels) != 2 {
		t.Fatalf("len(Labels) = %d, want 2", len(labels))
	}
	if labels[0].Position != geom.Pt(-1, 0) || labels[1].Position != geom.Pt(0, -1) {
		t.Errorf("rotated labels = %+v", labels)
	}
	if refs := References([]Element{rot}); len(refs) != 1 || refs[0].Transform.Rotation != 180 {
		t.Errorf("References() = %+v", refs)
	}

	top := New("top")
	top.Add(g)
	if len(top.Labels) != 2 || len(top.References) != 1 {
		t.Errorf("Add(group) placed %d labels, %d refs", len(top.Labels), len(top.References))
	}
}

func TestFlatten(t *testing.T) {
	top := New("top")
	top.AddRef(Straight(10, DefaultWGWidth), geom.Transform{Rotation: 90})
	paths := top.Flatten()
	if len(paths) != 1 {
		t.Fatalf("len(Flatten()) = %d, want 1", len(paths))
	}
	want := []geom.Point{geom.Pt(0, 0), geom.Pt(0, 10)}
	if diff := cmp.Diff(want, paths[0].Points); diff != "" {
		t.Errorf("flattened points (-want +got):\n%s", diff)
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{0.5, "500n"},
		{2.5, "2p5"},
		{12.25, "12p25"},
		{-3, "m3"},
		{90, "90"},
	}
	for _, tt := range tests {
		if got := Value(tt.in); got != tt.want {
			t.Errorf("Value(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKind(t *testing.T) {
	c := New("gc")
	if got := c.Kind(); got != KindComponent {
		t.Errorf("Kind() = %q, want %q", got, KindComponent)
	}

	c.SetKind(KindCoupler)
	if got := c.Kind(); got != KindCoupler {
		t.Errorf("Kind() = %q, want %q", got, KindCoupler)
	}
	if got := c.Copy().Kind(); got != KindCoupler {
		t.Errorf("Copy().Kind() = %q, want %q", got, KindCoupler)
	}
}

func TestMustAddPortPanicsOnDuplicate(t *testing.T) {
	c := New("wg")
	MustAddPort(c, Port{Name: "o1"})
	defer func() {
		if recover() == nil {
			t.Error("MustAddPort with a duplicate name did not panic")
		}
	}()
	MustAddPort(c, Port{Name: "o1"})
}
