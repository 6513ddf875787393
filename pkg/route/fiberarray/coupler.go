package fiberarray

import (
	"fmt"

	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/coupler"
	"github.com/matzehuels/fiberroute/pkg/geom"
	"github.com/matzehuels/fiberroute/pkg/xsection"
)

// LabelText returns the measurement label of a routed port.
func LabelText(t *coupler.Template, name string, gcIndex, portNumber int) string {
	pol := t.Polarization
	if pol == "" {
		pol = "te"
	}
	return fmt.Sprintf("opt_%s_%d_(%s)_%d_%d", pol, t.WavelengthNM(), name, gcIndex, portNumber)
}

// Place returns a reference to the coupler of t with its waveguide port at
// at, facing north.
func Place(t *coupler.Template, at geom.Point) *component.Reference {
	p := t.Port()
	rot := geom.NormalizeAngle(90 - p.Orientation)
	return &component.Reference{
		Cell:      t.Cell,
		Transform: geom.Transform{Rotation: rot, Origin: at.Sub(p.Center.Rotate(rot))},
	}
}

// Loopback returns two couplers one pitch apart, the first with its port at
// at, joined by a waveguide looping north. The labels name the component
// "loopback_<name>" and number the ports 2 then 1.
func Loopback(at geom.Point, pitch float64, t *coupler.Template, xs xsection.CrossSection, name string) (elements, couplers []component.Element) {
	a, b := at, at.Add(geom.Pt(pitch, 0))
	top := a.Y + xs.Radius
	seg := newSegmenter(xs, false)
	elements = append(elements, seg.route([]geom.Point{a, geom.Pt(a.X, top), geom.Pt(b.X, top), b}))

	for i, p := range []geom.Point{a, b} {
		couplers = append(couplers, Place(t, p))
		elements = append(elements, component.Label{
			Text:     LabelText(t, "loopback_"+name, i, 2-i),
			Position: p,
			Layer:    component.LayerLabel,
		})
	}
	return elements, couplers
}
