package graph

import (
	"fmt"
	"maps"

	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/geom"
)

// =============================================================================
// Component → Layout
// =============================================================================

// FromComponent flattens a top cell into its serialization format.
// Instances keep the order of the cell's references.
func FromComponent(top *component.Component) Layout {
	ids := instanceIDs(top.References)
	out := Layout{
		Name:      top.Name,
		Bounds:    top.Bounds,
		Instances: make([]Instance, len(top.References)),
		Info:      maps.Clone(top.Info),
	}
	for i, r := range top.References {
		out.Instances[i] = Instance{
			ID:       ids[i],
			Cell:     r.Cell.Name,
			Kind:     r.Cell.Kind(),
			X:        r.Transform.Origin.X,
			Y:        r.Transform.Origin.Y,
			Rotation: r.Transform.Rotation,
			Bounds:   r.Bounds(),
		}
	}
	for _, p := range top.Flatten() {
		pts := make([][2]float64, len(p.Points))
		for i, pt := range p.Points {
			pts[i] = [2]float64{pt.X, pt.Y}
		}
		out.Paths = append(out.Paths, Path{Points: pts, Width: p.Width, Layer: p.Layer.String()})
	}
	for _, l := range top.Labels {
		out.Labels = append(out.Labels, Label{Text: l.Text, X: l.Position.X, Y: l.Position.Y, Layer: l.Layer.String()})
	}
	for _, p := range top.Ports.List() {
		out.Ports = append(out.Ports, Port{Name: p.Name, X: p.Center.X, Y: p.Center.Y, Orientation: p.Orientation})
	}
	return out
}

// instanceIDs names references by cell, numbering cells placed more than once.
func instanceIDs(refs []*component.Reference) []string {
	count := make(map[string]int)
	for _, r := range refs {
		count[r.Cell.Name]++
	}
	seen := make(map[string]int)
	ids := make([]string, len(refs))
	for i, r := range refs {
		name := r.Cell.Name
		if count[name] == 1 {
			ids[i] = name
			continue
		}
		seen[name]++
		ids[i] = fmt.Sprintf("%s#%d", name, seen[name])
	}
	return ids
}

// =============================================================================
// Component → Netlist
// =============================================================================

type portRef struct {
	inst int
	port string
}

// Netlist returns the connectivity of the top-level instances of top.
// Waveguides are folded into the edges they carry; a route that does not end
// on another instance produces no edge.
func Netlist(top *component.Component) Graph {
	refs := top.References
	ids := instanceIDs(refs)

	at := make(map[geom.Point][]portRef)
	for i, r := range refs {
		for _, p := range r.Ports() {
			k := p.Center.Snap(geom.DefaultGrid)
			at[k] = append(at[k], portRef{inst: i, port: p.Name})
		}
	}
	peer := func(pr portRef) (portRef, bool) {
		p, _ := refs[pr.inst].Port(pr.port)
		for _, o := range at[p.Center.Snap(geom.DefaultGrid)] {
			if o.inst != pr.inst {
				return o, true
			}
		}
		return portRef{}, false
	}
	isWaveguide := func(i int) bool { return refs[i].Cell.Kind() == component.KindWaveguide }

	g := Graph{Name: top.Name, Nodes: []Node{}, Edges: []Edge{}}
	labels := labelsByInstance(top, at)
	visited := make(map[portRef]bool)
	for i, r := range refs {
		if isWaveguide(i) {
			continue
		}
		g.Nodes = append(g.Nodes, Node{ID: ids[i], Cell: r.Cell.Name, Kind: r.Cell.Kind(), Label: labels[i]})

		for _, name := range r.Cell.Ports.Names() {
			start := portRef{inst: i, port: name}
			if visited[start] {
				continue
			}
			end, length, ok := trace(start, peer, isWaveguide, refs)
			if !ok {
				continue
			}
			visited[start], visited[end] = true, true
			g.Edges = append(g.Edges, Edge{
				From:     ids[i],
				FromPort: name,
				To:       ids[end.inst],
				ToPort:   end.port,
				Length:   length,
			})
		}
	}
	return g
}

// trace follows a route from start through waveguide segments to the next
// non-waveguide port.
func trace(start portRef, peer func(portRef) (portRef, bool), isWaveguide func(int) bool, refs []*component.Reference) (portRef, float64, bool) {
	cur, length := start, 0.0
	for range len(refs) + 1 {
		next, ok := peer(cur)
		if !ok {
			return portRef{}, 0, false
		}
		if !isWaveguide(next.inst) {
			return next, length, true
		}
		cell := refs[next.inst].Cell
		for _, p := range cell.Paths {
			length += p.Length()
		}
		exit, ok := otherPort(cell, next.port)
		if !ok {
			return portRef{}, 0, false
		}
		cur = portRef{inst: next.inst, port: exit}
	}
	return portRef{}, 0, false
}

func otherPort(c *component.Component, name string) (string, bool) {
	for _, n := range c.Ports.Names() {
		if n != name {
			return n, true
		}
	}
	return "", false
}

// labelsByInstance attaches each label to the coupler whose port it marks.
func labelsByInstance(top *component.Component, at map[geom.Point][]portRef) map[int]string {
	out := make(map[int]string)
	for _, l := range top.Labels {
		for _, pr := range at[l.Position.Snap(geom.DefaultGrid)] {
			if top.References[pr.inst].Cell.Kind() == component.KindCoupler {
				out[pr.inst] = l.Text
				break
			}
		}
	}
	return out
}
