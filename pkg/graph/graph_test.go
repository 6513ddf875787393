package graph

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/fiberroute/pkg/assembly"
	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/geom"
	"github.com/matzehuels/fiberroute/pkg/route"
	"github.com/matzehuels/fiberroute/pkg/route/fiberarray"
)

func routedStraight(t *testing.T, loopback bool) *component.Component {
	t.Helper()
	top, err := assembly.AddFiberSingle(component.Straight(0.5, component.DefaultWGWidth), assembly.Options{
		Options:      route.DefaultOptions(fiberarray.New()),
		WithLoopback: loopback,
	})
	if err != nil {
		t.Fatalf("AddFiberSingle: %v", err)
	}
	return top
}

func TestNetlistRoutedStraight(t *testing.T) {
	g := Netlist(routedStraight(t, true))

	if g.Name != "straight_L500n_fs" {
		t.Errorf("Name = %q, want straight_L500n_fs", g.Name)
	}
	var couplers int
	for _, n := range g.Nodes {
		if n.Kind == component.KindWaveguide {
			t.Errorf("waveguide %s kept as a node", n.ID)
		}
		if n.IsCoupler() {
			couplers++
		}
	}
	if couplers != 4 {
		t.Errorf("coupler nodes = %d, want 4", couplers)
	}
	if len(g.Edges) != 3 {
		t.Fatalf("len(Edges) = %d, want 3: %+v", len(g.Edges), g.Edges)
	}

	wantLabel := map[string]string{
		"W0": "opt_te_1530_(straight_L500n)_0_1",
		"E0": "opt_te_1530_(straight_L500n)_0_2",
	}
	var loop int
	for _, e := range g.Edges {
		if e.From == "straight_L500n" {
			to, ok := g.Node(e.To)
			if !ok || !to.IsCoupler() {
				t.Errorf("%s routed to %q, want a coupler", e.FromPort, e.To)
				continue
			}
			if to.Label != wantLabel[e.FromPort] {
				t.Errorf("%s coupler label = %q, want %q", e.FromPort, to.Label, wantLabel[e.FromPort])
			}
			if e.Length <= 0 {
				t.Errorf("%s route length = %v, want > 0", e.FromPort, e.Length)
			}
			continue
		}
		loop++
		// up one radius, across one pitch, down one radius
		if e.Length != 70 {
			t.Errorf("loopback length = %v, want 70", e.Length)
		}
	}
	if loop != 1 {
		t.Errorf("loopback edges = %d, want 1", loop)
	}
}

func TestNetlistDanglingRoute(t *testing.T) {
	top := component.New("top")
	dut := component.New("dut")
	component.MustAddPort(dut, component.Port{Name: "o1", Orientation: 270})
	top.AddRef(dut, geom.Identity)

	g := Netlist(top)
	if len(g.Nodes) != 1 || len(g.Edges) != 0 {
		t.Errorf("Netlist = %+v, want one node and no edges", g)
	}
}

func TestInstanceIDs(t *testing.T) {
	a, b := component.New("a"), component.New("b")
	refs := []*component.Reference{{Cell: a}, {Cell: b}, {Cell: a}}
	if diff := cmp.Diff([]string{"a#1", "b", "a#2"}, instanceIDs(refs)); diff != "" {
		t.Errorf("instanceIDs mismatch (-want +got):\n%s", diff)
	}
}

func TestFromComponent(t *testing.T) {
	top := routedStraight(t, false)
	l := FromComponent(top)

	if l.Name != top.Name {
		t.Errorf("Name = %q, want %q", l.Name, top.Name)
	}
	if len(l.Instances) != len(top.References) {
		t.Errorf("len(Instances) = %d, want %d", len(l.Instances), len(top.References))
	}
	if got := len(l.Couplers()); got != 2 {
		t.Errorf("len(Couplers) = %d, want 2", got)
	}
	if l.Instances[0].Kind != component.KindComponent || l.Instances[0].Rotation != 90 {
		t.Errorf("first instance = %+v, want the component at 90°", l.Instances[0])
	}
	if len(l.Paths) != len(top.Flatten()) {
		t.Errorf("len(Paths) = %d, want %d", len(l.Paths), len(top.Flatten()))
	}
	var texts []string
	for _, lb := range l.Labels {
		texts = append(texts, lb.Text)
		if lb.Layer != "201/0" {
			t.Errorf("label %s on layer %s, want 201/0", lb.Text, lb.Layer)
		}
	}
	if len(texts) != 2 {
		t.Errorf("labels = %v, want 2", texts)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := FromComponent(routedStraight(t, true))
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if diff := cmp.Diff(l.Instances, got.Instances); diff != "" {
		t.Errorf("instances mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(l.Labels, got.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", "{"},
		{"no name", `{"instances": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(tt.data)); err == nil {
				t.Error("UnmarshalLayout succeeded, want error")
			}
		})
	}
}

func TestReadGraph(t *testing.T) {
	valid := `{"name":"t","nodes":[{"id":"a"},{"id":"b"}],"edges":[{"from":"a","to":"b"}]}`
	g, err := ReadGraph(strings.NewReader(valid))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Errorf("ReadGraph = %+v, want 2 nodes and 1 edge", g)
	}

	dangling := `{"name":"t","nodes":[{"id":"a"}],"edges":[{"from":"a","to":"zzz"}]}`
	if _, err := ReadGraph(strings.NewReader(dangling)); err == nil {
		t.Error("ReadGraph accepted an edge to an unknown node")
	}
}
