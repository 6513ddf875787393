package fiberarray

import (
	"cmp"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/coupler"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
	"github.com/matzehuels/fiberroute/pkg/geom"
	"github.com/matzehuels/fiberroute/pkg/route"
	"github.com/matzehuels/fiberroute/pkg/xsection"
)

// Option configures a [Router].
type Option func(*Router)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option { return func(r *Router) { r.logger = l } }

// Router is the grating-coupler array router.
type Router struct {
	logger *log.Logger
}

var _ route.ArrayRouter = (*Router)(nil)

// New returns a router.
func New(opts ...Option) *Router {
	r := &Router{}
	for _, o := range opts {
		o(r)
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return r
}

// escape is the part of a route that leaves the component: the points from
// the port to where the route starts heading south.
type escape struct {
	pts []geom.Point
}

func (e escape) end() geom.Point { return e.pts[len(e.pts)-1] }

// RouteEdge routes every port of c to its own coupler on a row below c.
// A component without ports yields an empty result.
func (r *Router) RouteEdge(c *component.Component, opts route.EdgeOptions) (route.Result, error) {
	ports := c.Ports.List()
	n := len(ports)
	if n == 0 {
		return route.Result{}, nil
	}

	templates, err := assign(opts.Couplers, n)
	if err != nil {
		return route.Result{}, err
	}
	for _, t := range templates {
		if w := t.Cell.YSize(); opts.FiberSpacing < w {
			return route.Result{}, errs.New(errs.ErrCodeRoutingInfeasible,
				"fiber spacing %v is narrower than grating coupler %s (%v)", opts.FiberSpacing, t.Name(), w)
		}
	}

	xs := opts.CrossSection
	if xs.Width == 0 {
		xs = xsection.Strip()
	}
	name := opts.ComponentName
	if name == "" {
		name = c.Name
	}

	bounds := c.Bounds
	if bounds.Empty() {
		centers := make([]geom.Point, n)
		for i, p := range ports {
			centers[i] = p.Center
		}
		bounds = geom.BoundsOf(centers...)
	}
	escapes := escapeAll(ports, bounds, xs)

	// slot[i] is the coupler index of port i.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if opts.RoutingType != route.RoutingBasic {
		slices.SortStableFunc(order, func(a, b int) int {
			return cmp.Compare(escapes[a].end().X, escapes[b].end().X)
		})
	}
	slot := make([]int, n)
	for k, i := range order {
		slot[i] = k
	}

	var xc float64
	if opts.RoutingType == route.RoutingPorts {
		xc = bounds.Center().X
	} else {
		for _, e := range escapes {
			xc += e.end().X
		}
		xc /= float64(n)
	}
	slotX := func(k int) float64 {
		return xc + (float64(k)-float64(n-1)/2)*opts.FiberSpacing
	}

	yBase := bounds.Min.Y
	for _, e := range escapes {
		yBase = min(yBase, e.end().Y)
	}
	var fanout float64
	if opts.HasFanout {
		fanout = opts.FanoutLength
	}
	radius, sep := xs.Radius, xs.Separation
	yGC := yBase - fanout - 2*radius - float64(n-1)*sep

	levels := turnLevels(escapes, func(i int) float64 { return slotX(slot[i]) })

	seg := newSegmenter(xs, opts.AutoWiden)
	res := route.Result{Ports: make([]string, 0, n)}
	group := make([]component.Element, 0, n)
	for i, p := range ports {
		x := slotX(slot[i])
		at := geom.Pt(x, yGC)
		yTurn := yBase - fanout - radius - float64(levels[i])*sep
		end := escapes[i].end()

		pts := slices.Clone(escapes[i].pts)
		pts = append(pts, geom.Pt(end.X, yTurn), geom.Pt(x, yTurn), at)
		res.Elements = append(res.Elements,
			seg.route(pts),
			component.Label{
				Text:     LabelText(templates[i], name, slot[i], p.Number),
				Position: at,
				Layer:    component.LayerLabel,
			},
		)
		group = append(group, Place(templates[i], at))
		res.Ports = append(res.Ports, p.Name)
	}
	res.Couplers = [][]component.Element{group}

	if opts.WithLoopback {
		elems, gcs := Loopback(geom.Pt(slotX(n), yGC), opts.FiberSpacing, templates[0], xs, name)
		res.Elements = append(res.Elements, elems...)
		res.Couplers = append(res.Couplers, gcs)
	}

	r.logger.Debug("edge routed", "component", name, "ports", n, "coupler_y", yGC, "cells", len(seg.cells))
	return res, nil
}

// assign resolves the coupler templates of an edge: one template is used for
// every port, otherwise each port needs its own.
func assign(ts []*coupler.Template, n int) ([]*coupler.Template, error) {
	switch {
	case len(ts) == 0:
		return nil, errs.New(errs.ErrCodeRoutingInfeasible, "no grating coupler for %d ports", n)
	case len(ts) == 1:
		out := make([]*coupler.Template, n)
		for i := range out {
			out[i] = ts[0]
		}
		return out, nil
	case len(ts) < n:
		return nil, errs.New(errs.ErrCodeRoutingInfeasible,
			"%d grating couplers for %d ports", len(ts), n)
	}
	return ts[:n], nil
}

// escapeAll computes the escape of every port. Ports facing south start
// heading south immediately. Ports facing west or east step out past the
// component, lower ports closer to it. Ports facing north go up over the
// component and down its east side, outside the east escapes.
func escapeAll(ports []component.Port, bounds geom.Rect, xs xsection.CrossSection) []escape {
	out := make([]escape, len(ports))
	radius, sep := xs.Radius, xs.Separation

	byFacing := func(f component.Facing, key func(component.Port) float64) []int {
		var idx []int
		for i, p := range ports {
			if p.Facing() == f {
				idx = append(idx, i)
			}
		}
		slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(key(ports[a]), key(ports[b])) })
		return idx
	}
	byY := func(p component.Port) float64 { return p.Center.Y }

	for _, i := range byFacing(component.South, byY) {
		out[i] = escape{pts: []geom.Point{ports[i].Center}}
	}
	for j, i := range byFacing(component.West, byY) {
		c := ports[i].Center
		x := min(bounds.Min.X, c.X) - radius - float64(j)*sep
		out[i] = escape{pts: []geom.Point{c, geom.Pt(x, c.Y)}}
	}
	east := byFacing(component.East, byY)
	for j, i := range east {
		c := ports[i].Center
		x := max(bounds.Max.X, c.X) + radius + float64(j)*sep
		out[i] = escape{pts: []geom.Point{c, geom.Pt(x, c.Y)}}
	}
	north := byFacing(component.North, func(p component.Port) float64 { return -p.Center.X })
	for j, i := range north {
		c := ports[i].Center
		y := max(bounds.Max.Y, c.Y) + radius + float64(j)*sep
		x := bounds.Max.X + radius + float64(len(east)+j)*sep
		out[i] = escape{pts: []geom.Point{c, geom.Pt(c.X, y), geom.Pt(x, y)}}
	}
	return out
}

// turnLevels staggers the horizontal runs. Routes moving west turn higher
// the further west they start, routes moving east turn higher the further
// east they start, so that no two routes moving the same way cross.
func turnLevels(escapes []escape, target func(int) float64) []int {
	levels := make([]int, len(escapes))
	var west, east []int
	for i, e := range escapes {
		switch x := e.end().X; {
		case target(i) < x:
			west = append(west, i)
		case target(i) > x:
			east = append(east, i)
		}
	}
	slices.SortStableFunc(west, func(a, b int) int {
		return cmp.Compare(escapes[a].end().X, escapes[b].end().X)
	})
	slices.SortStableFunc(east, func(a, b int) int {
		return cmp.Compare(escapes[b].end().X, escapes[a].end().X)
	})
	for l, i := range west {
		levels[i] = l
	}
	for l, i := range east {
		levels[i] = l
	}
	return levels
}
