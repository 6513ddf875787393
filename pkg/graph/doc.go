// Package graph provides the serialization types for routed layouts.
//
// This package defines the wire format of fiberroute results, used for JSON
// files, API responses, caching and the run store. Every type carries both
// json and bson tags so the same document is written to disk and to MongoDB.
//
// # Core Types
//
//   - [Layout]: a routed top cell flattened to instances, waveguide paths and
//     measurement labels
//   - [Graph]: the optical netlist of a top cell, instances as nodes and
//     routed connections as edges
//   - [Node], [Edge], [Instance], [Path], [Label]: shared structural types
//
// # Netlists
//
// [Netlist] connects instance ports whose centers coincide on the layout
// grid. Waveguide segments are folded away, so an edge runs straight from a
// component port to the coupler it was routed to and records the waveguide
// length in between:
//
//	{
//	  "name": "mmi2x2_fs",
//	  "nodes": [{"id": "mmi2x2", "cell": "mmi2x2", "kind": "component"}, ...],
//	  "edges": [{"from": "mmi2x2", "from_port": "W0",
//	             "to": "grating_coupler_te#1", "to_port": "o1", "length": 61.75}]
//	}
//
// # Layouts
//
//	top, _ := assembly.AddFiberSingle(c, opts)
//	l := graph.FromComponent(top)
//	graph.WriteLayoutFile(l, "mmi2x2_fs.json")
package graph
