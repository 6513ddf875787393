// Package assembly builds fiber-ready top cells from routed components.
//
// [AddFiberSingle] places the component rotated by +90° together with its
// single-side fiber routes, couplers and measurement labels in a new cell,
// optionally adding a loopback for calibration:
//
//	top, err := assembly.AddFiberSingle(c, assembly.Options{
//	    Options:      route.DefaultOptions(fiberarray.New()),
//	    WithLoopback: true,
//	})
package assembly

import (
	"math"

	"github.com/matzehuels/fiberroute/pkg/component"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
	"github.com/matzehuels/fiberroute/pkg/geom"
	"github.com/matzehuels/fiberroute/pkg/route"
	"github.com/matzehuels/fiberroute/pkg/route/fiberarray"
)

// Suffix is appended to the component name to name the top cell.
const Suffix = "_fs"

// Options configures [AddFiberSingle].
type Options struct {
	route.Options
	// WithLoopback adds two extra couplers joined by a waveguide next to the
	// lowest coupler row.
	WithLoopback bool
}

// Assembly is a routed top cell and how it was routed.
type Assembly struct {
	Cell    *component.Component
	Routing *route.Routing
}

// AddFiberSingle returns a new cell holding c routed to grating couplers on
// two opposite edges.
func AddFiberSingle(c *component.Component, opts Options) (*component.Component, error) {
	a, err := Assemble(c, opts)
	if err != nil {
		return nil, err
	}
	return a.Cell, nil
}

// Assemble is [AddFiberSingle] with the routing kept.
func Assemble(c *component.Component, opts Options) (*Assembly, error) {
	if c == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no component to assemble")
	}
	if err := errs.ValidateCellName(c.Name); err != nil {
		return nil, err
	}
	r, err := route.Route(c, opts.Options)
	if err != nil {
		return nil, err
	}

	top := component.New(c.Name + Suffix)
	top.AddRef(c, geom.Transform{Rotation: 90})
	top.Add(r.Elements...)
	top.Add(r.Couplers...)

	if opts.WithLoopback {
		at := loopbackAnchor(r, opts.FiberSpacing)
		elems, gcs := fiberarray.Loopback(at, opts.FiberSpacing, r.Coupler, r.CrossSection, r.Component)
		top.Add(elems...)
		top.Add(gcs...)
	}

	top.Info = map[string]any{
		"component":     c.Name,
		"ports":         r.Ports(),
		"loopback":      opts.WithLoopback,
		"fiber_spacing": opts.FiberSpacing,
	}
	if r.HasFanout {
		top.Info["fanout_length"] = r.FanoutLength
	}
	return &Assembly{Cell: top, Routing: r}, nil
}

// loopbackAnchor returns where the first loopback coupler goes: one pitch
// east of the last coupler on the lowest row.
func loopbackAnchor(r *route.Routing, pitch float64) geom.Point {
	y, x := math.Inf(1), math.Inf(-1)
	var ports []geom.Point
	for _, ref := range component.References(r.Couplers) {
		if p, ok := ref.Port(r.Coupler.PortName); ok {
			ports = append(ports, p.Center)
			y = min(y, p.Center.Y)
		}
	}
	for _, p := range ports {
		if p.Y == y {
			x = max(x, p.X)
		}
	}
	if len(ports) == 0 {
		return geom.Point{}
	}
	return geom.Pt(x+pitch, y)
}
