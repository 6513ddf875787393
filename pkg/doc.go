// Package pkg provides the core libraries for fiberroute.
//
// # Overview
//
// Fiberroute connects the optical ports of a photonic component to a row of
// grating couplers so that the chip can be probed with a fiber array. The
// component is rotated by +90°, its ports are split between the south and
// north edges, and each edge is routed to couplers at a fixed pitch. The pkg
// directory is organized into four main areas:
//
//  1. Geometry and cells ([geom], [component], [coupler], [xsection])
//  2. Routing ([route], [route/fiberarray], [assembly])
//  3. Serialization and rendering ([io], [graph], [render])
//  4. Orchestration and infrastructure ([pipeline], [cache], [store], [server], [config])
//
// # Architecture
//
// The typical data flow:
//
//	Component file / built-in cell
//	         ↓
//	    [io] package (read JSON or TOML)
//	         ↓
//	    [route] package (select ports, fanout, route both edges)
//	         ↓
//	    [assembly] package (place the component and routes in a new top cell)
//	         ↓
//	    [graph] package (flatten into a layout and a netlist)
//	         ↓
//	    [render] package (SVG, DOT)
//
// # Quick Start
//
// Route the optical ports of a 2x2 MMI with TE couplers:
//
//	import (
//	    "github.com/matzehuels/fiberroute/pkg/assembly"
//	    "github.com/matzehuels/fiberroute/pkg/component"
//	    "github.com/matzehuels/fiberroute/pkg/coupler"
//	    "github.com/matzehuels/fiberroute/pkg/graph"
//	    "github.com/matzehuels/fiberroute/pkg/route"
//	    "github.com/matzehuels/fiberroute/pkg/route/fiberarray"
//	)
//
//	// 1. Pick a component
//	c := component.MMI2x2(component.DefaultMMILength)
//
//	// 2. Configure routing
//	opts := route.DefaultOptions(fiberarray.New())
//	opts.Coupler = coupler.Single(coupler.TE())
//
//	// 3. Route and assemble the top cell
//	top, _ := assembly.AddFiberSingle(c, assembly.Options{Options: opts})
//
//	// 4. Flatten for output
//	layout := graph.FromComponent(top)
//	netlist := graph.Netlist(top)
//
// Most callers go through [pipeline] instead, which resolves preset names,
// caches routes and renders every output format.
//
// # Main Packages
//
// [route] - The single-side fiber routing orchestrator: port selection,
// fanout length, edge splitting and result composition. Edge routing itself
// is behind the [route.ArrayRouter] interface.
//
// [route/fiberarray] - The array router: escapes each port, orders the
// ports and places one grating coupler per port with its label.
//
// [pipeline] - The route → render pipeline used by the CLI and the API.
//
// [cache] - File, Redis and null caches for routes and artifacts.
//
// [store] - Saved runs in JSON files or MongoDB.
//
// [server] - The HTTP API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/route/...              # Specific package
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/geom
// [component]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/component
// [coupler]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/coupler
// [xsection]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/xsection
// [route]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/route
// [route.ArrayRouter]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/route#ArrayRouter
// [route/fiberarray]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/route/fiberarray
// [assembly]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/assembly
// [io]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/io
// [graph]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/fiberroute/pkg/config
package pkg
