// Package component is the layout model consumed by the routers.
//
// A [Component] is a cell: a bounding box, an ordered set of [Port]s,
// waveguide [Path]s drawn directly in the cell, placed sub-cells
// ([Reference]) and text [Label]s. Components are immutable by convention
// once handed to a router: every routing entry point deep-copies its input
// with [Component.Copy] and transforms copies with [Component.Rotate], which
// never touches the receiver.
//
// Route output is expressed as [Element]s. An element can be rotated about
// the origin and added to a parent cell; [Reference], [Label] and [Group]
// implement it.
package component

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/fiberroute/pkg/geom"
)

// Path is a waveguide centerline drawn in a cell.
type Path struct {
	Points []geom.Point `json:"points"`
	Width  float64      `json:"width"`
	Layer  Layer        `json:"layer"`
}

// Length returns the length of the centerline.
func (p Path) Length() float64 {
	var l float64
	for i := 1; i < len(p.Points); i++ {
		l += p.Points[i].Dist(p.Points[i-1])
	}
	return l
}

func (p Path) rotate(deg float64) Path {
	pts := make([]geom.Point, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = pt.Rotate(deg)
	}
	return Path{Points: pts, Width: p.Width, Layer: p.Layer}
}

// Component is a layout cell.
type Component struct {
	Name       string         `json:"name"`
	Bounds     geom.Rect      `json:"bounds"`
	Ports      Ports          `json:"ports"`
	Paths      []Path         `json:"paths,omitempty"`
	References []*Reference   `json:"references,omitempty"`
	Labels     []Label        `json:"labels,omitempty"`
	Info       map[string]any `json:"info,omitempty"`
}

// New creates an empty component.
func New(name string) *Component {
	return &Component{Name: name}
}

// Cell kinds, stored under Info["kind"].
const (
	KindComponent = "component"
	KindCoupler   = "coupler"
	KindWaveguide = "waveguide"
)

// Kind returns the kind recorded by [Component.SetKind], or KindComponent.
func (c *Component) Kind() string {
	if k, ok := c.Info["kind"].(string); ok && k != "" {
		return k
	}
	return KindComponent
}

// SetKind records what the cell is.
func (c *Component) SetKind(kind string) {
	if c.Info == nil {
		c.Info = make(map[string]any)
	}
	c.Info["kind"] = kind
}

// AddPort appends a port. A zero Number is replaced by the next 1-based index.
func (c *Component) AddPort(p Port) error {
	if c.Ports.Has(p.Name) {
		return fmt.Errorf("duplicate port %q on %s", p.Name, c.Name)
	}
	if p.Number == 0 {
		p.Number = c.Ports.Len() + 1
	}
	if p.Type == "" {
		p.Type = Optical
	}
	c.Ports.Set(p)
	return nil
}

// AddPath draws a waveguide in the cell and grows the bounds to cover it.
func (c *Component) AddPath(p Path) {
	c.Paths = append(c.Paths, p)
	c.Bounds = c.Bounds.Union(p.Bounds())
}

// Bounds returns the bounding box of the drawn waveguide. Axis-aligned
// segments only grow across their direction of travel.
func (p Path) Bounds() geom.Rect {
	var b geom.Rect
	hw := p.Width / 2
	for i := 1; i < len(p.Points); i++ {
		a, z := p.Points[i-1], p.Points[i]
		seg := geom.BoundsOf(a, z)
		switch {
		case a.Y == z.Y:
			seg.Min.Y -= hw
			seg.Max.Y += hw
		case a.X == z.X:
			seg.Min.X -= hw
			seg.Max.X += hw
		default:
			seg.Min = seg.Min.Sub(geom.Pt(hw, hw))
			seg.Max = seg.Max.Add(geom.Pt(hw, hw))
		}
		b = b.Union(seg)
	}
	return b
}

// AddRef places cell with transform t and returns the reference.
func (c *Component) AddRef(cell *Component, t geom.Transform) *Reference {
	r := &Reference{Cell: cell, Transform: t}
	r.AddTo(c)
	return r
}

// AddLabel adds a text annotation.
func (c *Component) AddLabel(text string, pos geom.Point) {
	Label{Text: text, Position: pos, Layer: LayerLabel}.AddTo(c)
}

// Add places every element into c.
func (c *Component) Add(elems ...Element) {
	for _, e := range elems {
		e.AddTo(c)
	}
}

// XSize returns the horizontal extent of the cell.
func (c *Component) XSize() float64 { return c.Bounds.Width() }

// YSize returns the vertical extent of the cell.
func (c *Component) YSize() float64 { return c.Bounds.Height() }

// Port returns the named port.
func (c *Component) Port(name string) (Port, bool) { return c.Ports.Get(name) }

// PortsByOrientation returns the ports facing the edge of the given angle, in port order.
func (c *Component) PortsByOrientation(deg float64) []Port {
	want := Port{Orientation: deg}.Facing()
	var out []Port
	for _, p := range c.Ports.List() {
		if p.Facing() == want {
			out = append(out, p)
		}
	}
	return out
}

// Copy returns a deep copy. Referenced cells are shared, since cell
// definitions are never mutated once placed.
func (c *Component) Copy() *Component {
	out := &Component{
		Name:   c.Name,
		Bounds: c.Bounds,
		Ports:  c.Ports.Clone(),
		Labels: slices.Clone(c.Labels),
		Info:   maps.Clone(c.Info),
	}
	if len(c.Paths) > 0 {
		out.Paths = make([]Path, len(c.Paths))
		for i, p := range c.Paths {
			out.Paths[i] = Path{Points: slices.Clone(p.Points), Width: p.Width, Layer: p.Layer}
		}
	}
	if len(c.References) > 0 {
		out.References = make([]*Reference, len(c.References))
		for i, r := range c.References {
			cp := *r
			out.References[i] = &cp
		}
	}
	return out
}

// Rotate returns a new component holding c rotated by deg degrees about the
// origin. Ports, paths, references and labels are transformed; c is not
// modified.
func (c *Component) Rotate(deg float64) *Component {
	deg = geom.NormalizeAngle(deg)
	out := &Component{
		Name:   rotatedName(c.Name, deg),
		Bounds: c.Bounds.Rotate(deg),
		Ports:  c.Ports.Rotate(deg),
		Info:   maps.Clone(c.Info),
	}
	for _, p := range c.Paths {
		out.Paths = append(out.Paths, p.rotate(deg))
	}
	for _, r := range c.References {
		out.References = append(out.References, r.rotate(deg))
	}
	for _, l := range c.Labels {
		out.Labels = append(out.Labels, l.rotate(deg))
	}
	return out
}

// Flatten returns every path of the hierarchy in the coordinates of c.
func (c *Component) Flatten() []Path {
	return c.flatten(geom.Identity)
}

func (c *Component) flatten(t geom.Transform) []Path {
	var out []Path
	for _, p := range c.Paths {
		pts := make([]geom.Point, len(p.Points))
		for i, pt := range p.Points {
			pts[i] = t.Apply(pt)
		}
		out = append(out, Path{Points: pts, Width: p.Width, Layer: p.Layer})
	}
	for _, r := range c.References {
		out = append(out, r.Cell.flatten(r.Transform.Then(t))...)
	}
	return out
}

func rotatedName(name string, deg float64) string {
	if deg == 0 {
		return name
	}
	return fmt.Sprintf("%s_rotate%s", name, Value(deg))
}
