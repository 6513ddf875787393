package component

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/fiberroute/pkg/geom"
)

// PortType distinguishes optical from electrical connection points.
type PortType string

const (
	Optical    PortType = "optical"
	Electrical PortType = "electrical"
)

// Layer is a GDS (layer, datatype) pair.
type Layer struct {
	Layer    int `json:"layer" toml:"layer"`
	Datatype int `json:"datatype" toml:"datatype"`
}

// String formats the layer as "layer/datatype".
func (l Layer) String() string { return fmt.Sprintf("%d/%d", l.Layer, l.Datatype) }

// Well-known layers.
var (
	LayerWG    = Layer{Layer: 1, Datatype: 0}
	LayerLabel = Layer{Layer: 201, Datatype: 0}
)

// Facing is the chip edge a port points towards.
type Facing int

const (
	East Facing = iota
	North
	West
	South
)

var facingNames = [...]string{"east", "north", "west", "south"}

// String returns the lowercase edge name.
func (f Facing) String() string {
	if f < 0 || int(f) >= len(facingNames) {
		return "unknown"
	}
	return facingNames[f]
}

// Angle returns the orientation angle of the edge in degrees.
func (f Facing) Angle() float64 { return float64(f) * 90 }

// Port is a named connection point of a component.
type Port struct {
	Name string `json:"name"`
	// Number is the 1-based position of the port in its component, assigned
	// when the port is added. It survives copies and rotations.
	Number      int        `json:"number"`
	Center      geom.Point `json:"center"`
	Orientation float64    `json:"orientation"`
	Width       float64    `json:"width"`
	Layer       Layer      `json:"layer"`
	Type        PortType   `json:"type"`
}

// Facing returns the edge the port faces. Orientations between the four
// cardinal angles are assigned to the nearest one.
func (p Port) Facing() Facing {
	a := geom.NormalizeAngle(p.Orientation + 45)
	return Facing(int(a/90) % 4)
}

// Rotate returns the port rotated about the origin.
func (p Port) Rotate(deg float64) Port {
	p.Center = p.Center.Rotate(deg)
	p.Orientation = geom.NormalizeAngle(p.Orientation + deg)
	return p
}

// Transform returns the port as seen from the parent of a placed cell.
func (p Port) Transform(t geom.Transform) Port {
	p.Center = t.Apply(p.Center)
	p.Orientation = geom.NormalizeAngle(p.Orientation + t.Rotation)
	return p
}

// IsOptical reports whether the port carries light. Ports with no type are
// treated as optical.
func (p Port) IsOptical() bool { return p.Type == Optical || p.Type == "" }

// Ports is a name → Port mapping that iterates in insertion order.
// The zero value is an empty set ready to use.
type Ports struct {
	names  []string
	byName map[string]Port
}

// NewPorts builds a port set from ps, keeping their order. Later duplicates
// replace earlier ones in place.
func NewPorts(ps ...Port) Ports {
	var out Ports
	for _, p := range ps {
		out.Set(p)
	}
	return out
}

// Len returns the number of ports.
func (s *Ports) Len() int { return len(s.names) }

// Get returns the port with the given name.
func (s *Ports) Get(name string) (Port, bool) {
	p, ok := s.byName[name]
	return p, ok
}

// Has reports whether a port with the given name exists.
func (s *Ports) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Names returns the port names in iteration order.
func (s *Ports) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// List returns the ports in iteration order.
func (s *Ports) List() []Port {
	out := make([]Port, len(s.names))
	for i, n := range s.names {
		out[i] = s.byName[n]
	}
	return out
}

// Set inserts p, or replaces the port of the same name without moving it.
func (s *Ports) Set(p Port) {
	if s.byName == nil {
		s.byName = make(map[string]Port)
	}
	if _, ok := s.byName[p.Name]; !ok {
		s.names = append(s.names, p.Name)
	}
	s.byName[p.Name] = p
}

// Delete removes the named port and reports whether it existed.
func (s *Ports) Delete(name string) bool {
	if _, ok := s.byName[name]; !ok {
		return false
	}
	delete(s.byName, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i:i], s.names[i+1:]...)
			break
		}
	}
	return true
}

// Filter returns a new set holding the ports for which keep returns true.
func (s *Ports) Filter(keep func(Port) bool) Ports {
	var out Ports
	for _, n := range s.names {
		if p := s.byName[n]; keep(p) {
			out.Set(p)
		}
	}
	return out
}

// Clone returns an independent copy of the set.
func (s *Ports) Clone() Ports {
	return s.Filter(func(Port) bool { return true })
}

// Rotate returns a new set with every port rotated about the origin.
func (s *Ports) Rotate(deg float64) Ports {
	var out Ports
	for _, n := range s.names {
		out.Set(s.byName[n].Rotate(deg))
	}
	return out
}

// MarshalJSON encodes the set as an ordered array.
func (s Ports) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

// UnmarshalJSON decodes an ordered array of ports.
func (s *Ports) UnmarshalJSON(data []byte) error {
	var ps []Port
	if err := json.Unmarshal(data, &ps); err != nil {
		return err
	}
	*s = NewPorts(ps...)
	return nil
}
