package route

import (
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/fiberroute/pkg/component"
)

// edgeComponents returns the working copies routed on each edge.
//
// The south copy is c rotated by +90° keeping only the working ports that
// now face south. The north copy is an independent -90° rotation of c with
// the ports routed south removed (they face north in that frame), again
// restricted to the working set.
func edgeComponents(c *component.Component, working []component.Port) (south, north *component.Component) {
	keep := make(map[string]bool, len(working))
	for _, p := range working {
		keep[p.Name] = true
	}

	south = c.Rotate(90)
	var ps []component.Port
	for _, p := range south.PortsByOrientation(270) {
		if keep[p.Name] {
			ps = append(ps, p)
		}
	}
	south.Ports = component.NewPorts(ps...)

	north = c.Rotate(-90)
	for _, p := range north.PortsByOrientation(90) {
		north.Ports.Delete(p.Name)
	}
	north.Ports = north.Ports.Filter(func(p component.Port) bool { return keep[p.Name] })
	return south, north
}

// routeEdges calls r once per edge. The two calls share nothing, so running
// them concurrently yields the same results.
func routeEdges(r ArrayRouter, south, north *component.Component, so, no EdgeOptions, parallel bool) (Result, Result, error) {
	var sr, nr Result
	if !parallel {
		var err error
		if sr, err = r.RouteEdge(south, so); err != nil {
			return Result{}, Result{}, err
		}
		if nr, err = r.RouteEdge(north, no); err != nil {
			return Result{}, Result{}, err
		}
		return sr, nr, nil
	}

	var g errgroup.Group
	g.Go(func() error {
		var err error
		sr, err = r.RouteEdge(south, so)
		return err
	})
	g.Go(func() error {
		var err error
		nr, err = r.RouteEdge(north, no)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, Result{}, err
	}
	return sr, nr, nil
}
