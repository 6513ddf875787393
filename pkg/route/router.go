package route

import (
	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/coupler"
	"github.com/matzehuels/fiberroute/pkg/xsection"
)

// ArrayRouter lays out the routes from the ports of a component to a linear
// grating-coupler array below it.
//
// Implementations must route exactly the ports present on c, in port order,
// produce one coupler element per routed port and return an empty Result
// (not an error) when c has no ports.
type ArrayRouter interface {
	RouteEdge(c *component.Component, opts EdgeOptions) (Result, error)
}

// EdgeOptions are the per-edge settings passed to an [ArrayRouter].
type EdgeOptions struct {
	WithLoopback bool
	FiberSpacing float64
	// FanoutLength is only meaningful when HasFanout is set.
	FanoutLength float64
	HasFanout    bool
	// Couplers holds either one template for all ports or one per port.
	Couplers      []*coupler.Template
	RoutingType   int
	AutoWiden     bool
	ComponentName string
	CrossSection  xsection.CrossSection
}

// Result is the output of one [ArrayRouter] call.
type Result struct {
	// Elements are the route references and measurement labels.
	Elements []component.Element
	// Couplers are the placed grating couplers, grouped by the router.
	Couplers [][]component.Element
	// Ports are the names of the routed ports in routing order.
	Ports []string
}

// CouplerCount returns the number of coupler elements across all groups.
func (r Result) CouplerCount() int {
	n := 0
	for _, g := range r.Couplers {
		n += len(g)
	}
	return n
}

// RouterFunc adapts a function to the [ArrayRouter] interface.
type RouterFunc func(c *component.Component, opts EdgeOptions) (Result, error)

// RouteEdge calls f.
func (f RouterFunc) RouteEdge(c *component.Component, opts EdgeOptions) (Result, error) {
	return f(c, opts)
}
