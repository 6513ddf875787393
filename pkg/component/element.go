package component

import (
	"github.com/matzehuels/fiberroute/pkg/geom"
)

// Element is a piece of route output that can be rotated and placed.
type Element interface {
	// Rotate returns a copy of the element rotated about the origin.
	Rotate(deg float64) Element
	// AddTo places the element into c.
	AddTo(c *Component)
}

// Reference places a cell inside a parent.
type Reference struct {
	Cell      *Component     `json:"cell"`
	Transform geom.Transform `json:"transform"`
}

// Rotate returns a new reference rotated about the parent origin.
func (r *Reference) Rotate(deg float64) Element { return r.rotate(deg) }

func (r *Reference) rotate(deg float64) *Reference {
	return &Reference{Cell: r.Cell, Transform: r.Transform.Rotate(deg)}
}

// AddTo appends the reference to c and grows c's bounds.
func (r *Reference) AddTo(c *Component) {
	c.References = append(c.References, r)
	c.Bounds = c.Bounds.Union(r.Bounds())
}

// Bounds returns the bounding box of the placed cell.
func (r *Reference) Bounds() geom.Rect {
	return r.Cell.Bounds.Rotate(r.Transform.Rotation).Translate(r.Transform.Origin)
}

// Port returns the named port of the cell in parent coordinates.
func (r *Reference) Port(name string) (Port, bool) {
	p, ok := r.Cell.Ports.Get(name)
	if !ok {
		return Port{}, false
	}
	return p.Transform(r.Transform), true
}

// Ports returns all ports of the cell in parent coordinates.
func (r *Reference) Ports() []Port {
	ps := r.Cell.Ports.List()
	for i := range ps {
		ps[i] = ps[i].Transform(r.Transform)
	}
	return ps
}

// Label is a text annotation, used for automated measurement.
type Label struct {
	Text     string     `json:"text"`
	Position geom.Point `json:"position"`
	Layer    Layer      `json:"layer"`
}

// Rotate returns the label rotated about the origin.
func (l Label) Rotate(deg float64) Element { return l.rotate(deg) }

func (l Label) rotate(deg float64) Label {
	l.Position = l.Position.Rotate(deg)
	return l
}

// AddTo appends the label to c.
func (l Label) AddTo(c *Component) {
	c.Labels = append(c.Labels, l)
}

// Group is an ordered sequence of elements produced together, such as the
// straight and bend segments of one route.
type Group []Element

// Rotate rotates every member.
func (g Group) Rotate(deg float64) Element {
	out := make(Group, len(g))
	for i, e := range g {
		out[i] = e.Rotate(deg)
	}
	return out
}

// AddTo places every member into c.
func (g Group) AddTo(c *Component) {
	for _, e := range g {
		e.AddTo(c)
	}
}

// Labels returns the labels among elems, descending into groups.
func Labels(elems []Element) []Label {
	var out []Label
	for _, e := range elems {
		switch v := e.(type) {
		case Label:
			out = append(out, v)
		case Group:
			out = append(out, Labels(v)...)
		}
	}
	return out
}

// References returns the references among elems, descending into groups.
func References(elems []Element) []*Reference {
	var out []*Reference
	for _, e := range elems {
		switch v := e.(type) {
		case *Reference:
			out = append(out, v)
		case Group:
			out = append(out, References(v)...)
		}
	}
	return out
}
