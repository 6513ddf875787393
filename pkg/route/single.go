package route

import (
	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/coupler"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
	"github.com/matzehuels/fiberroute/pkg/xsection"
)

// Routing is the outcome of a single-side fiber routing call.
type Routing struct {
	// Component is the name of the routed component.
	Component string
	// Elements are the routes and labels in the frame of the component
	// rotated by +90°.
	Elements []component.Element
	// Couplers are the placed grating couplers, one per routed port.
	Couplers []component.Element
	// SouthPorts and NorthPorts name the ports routed on each edge.
	SouthPorts []string
	NorthPorts []string
	// FanoutLength is the forced fanout, valid when HasFanout is set.
	FanoutLength float64
	HasFanout    bool
	// Coupler is the template of the south edge and CrossSection the
	// resolved cross-section, kept for structures added after routing.
	Coupler      *coupler.Template
	CrossSection xsection.CrossSection
}

// Ports returns every routed port name, south edge first.
func (r *Routing) Ports() []string {
	out := make([]string, 0, len(r.SouthPorts)+len(r.NorthPorts))
	out = append(out, r.SouthPorts...)
	return append(out, r.NorthPorts...)
}

// RouteFiberSingle routes the optical ports of c to grating couplers on two
// opposite edges and returns the route elements and the coupler instances.
// The result lives in the frame of c rotated by +90°; c is not modified.
func RouteFiberSingle(c *component.Component, opts Options) (elements, couplers []component.Element, err error) {
	r, err := Route(c, opts)
	if err != nil {
		return nil, nil, err
	}
	return r.Elements, r.Couplers, nil
}

// Route is [RouteFiberSingle] with the routing metadata kept.
func Route(c *component.Component, opts Options) (*Routing, error) {
	if c == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no component to route")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	working, err := SelectPorts(c, opts.Selector, opts.PortNames, opts.ExcludedPorts)
	if err != nil {
		return nil, err
	}

	templates, err := opts.Coupler.Resolve(len(working))
	if err != nil {
		return nil, err
	}
	xs := opts.CrossSection
	if len(opts.Settings) > 0 {
		if xs, err = xs.With(opts.Settings); err != nil {
			return nil, err
		}
	}

	src := c.Copy()
	name := opts.ComponentName
	if name == "" {
		name = c.Name
	}

	fanout, hasFanout := FanoutLength(src.XSize(), templates[0].Offset(), opts.MinInputToOutputSpacing, opts.SnapNM)
	if hasFanout {
		logger.Debug("fanout forced", "component", name, "length", fanout)
	}

	south, north := edgeComponents(src, working)
	logger.Debug("edges split", "component", name,
		"ports", len(working), "south", south.Ports.Len(), "north", north.Ports.Len())

	base := EdgeOptions{
		FiberSpacing:  opts.FiberSpacing,
		FanoutLength:  fanout,
		HasFanout:     hasFanout,
		RoutingType:   opts.RoutingType,
		AutoWiden:     opts.AutoWiden,
		ComponentName: name,
		CrossSection:  xs,
	}
	so, no := base, base
	so.Couplers = templates[:1]
	no.Couplers = templates[1:]
	if !opts.Coupler.IsPerPort() {
		no.Couplers = templates[:1]
	}

	sr, nr, err := routeEdges(opts.Router, south, north, so, no, opts.Parallel)
	if err != nil {
		logger.Debug("edge routing failed", "component", name, "error", err)
		return nil, err
	}

	elements, couplers := Compose(sr, nr)
	return &Routing{
		Component:    name,
		Elements:     elements,
		Couplers:     couplers,
		SouthPorts:   south.Ports.Names(),
		NorthPorts:   north.Ports.Names(),
		FanoutLength: fanout,
		HasFanout:    hasFanout,
		Coupler:      templates[0],
		CrossSection: xs,
	}, nil
}
