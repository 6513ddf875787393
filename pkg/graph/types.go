package graph

import (
	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/geom"
)

// =============================================================================
// Graph - Optical Netlist
// =============================================================================

// Graph is the netlist of a top cell.
type Graph struct {
	Name  string `json:"name" bson:"name"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a placed instance in the netlist.
type Node struct {
	ID   string `json:"id" bson:"id"`
	Cell string `json:"cell" bson:"cell"`
	Kind string `json:"kind" bson:"kind"` // component, coupler or waveguide
	// Label is the measurement label placed on the instance, if any.
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// IsCoupler reports whether the node is a grating coupler.
func (n *Node) IsCoupler() bool { return n.Kind == component.KindCoupler }

// Edge connects two instance ports.
type Edge struct {
	From     string  `json:"from" bson:"from"`
	FromPort string  `json:"from_port" bson:"from_port"`
	To       string  `json:"to" bson:"to"`
	ToPort   string  `json:"to_port" bson:"to_port"`
	Length   float64 `json:"length,omitempty" bson:"length,omitempty"` // waveguide length folded into the edge
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// =============================================================================
// Layout - Flattened Top Cell
// =============================================================================

// Layout is a top cell flattened for rendering and storage.
type Layout struct {
	Name      string         `json:"name" bson:"name"`
	Bounds    geom.Rect      `json:"bounds" bson:"bounds"`
	Instances []Instance     `json:"instances" bson:"instances"`
	Paths     []Path         `json:"paths" bson:"paths"`
	Labels    []Label        `json:"labels,omitempty" bson:"labels,omitempty"`
	Ports     []Port         `json:"ports,omitempty" bson:"ports,omitempty"`
	Info      map[string]any `json:"info,omitempty" bson:"info,omitempty"`
}

// Couplers returns the coupler instances.
func (l *Layout) Couplers() []Instance {
	var out []Instance
	for _, in := range l.Instances {
		if in.Kind == component.KindCoupler {
			out = append(out, in)
		}
	}
	return out
}

// Instance is a placed cell of the top level.
type Instance struct {
	ID       string    `json:"id" bson:"id"`
	Cell     string    `json:"cell" bson:"cell"`
	Kind     string    `json:"kind" bson:"kind"`
	X        float64   `json:"x" bson:"x"`
	Y        float64   `json:"y" bson:"y"`
	Rotation float64   `json:"rotation" bson:"rotation"`
	Bounds   geom.Rect `json:"bounds" bson:"bounds"`
}

// Path is a waveguide centerline in top-cell coordinates.
type Path struct {
	Points [][2]float64 `json:"points" bson:"points"`
	Width  float64      `json:"width" bson:"width"`
	Layer  string       `json:"layer" bson:"layer"`
}

// Label is a text annotation in top-cell coordinates.
type Label struct {
	Text  string  `json:"text" bson:"text"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Layer string  `json:"layer" bson:"layer"`
}

// Port is an unconnected port of the top cell.
type Port struct {
	Name        string  `json:"name" bson:"name"`
	X           float64 `json:"x" bson:"x"`
	Y           float64 `json:"y" bson:"y"`
	Orientation float64 `json:"orientation" bson:"orientation"`
}
