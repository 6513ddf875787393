package component

import (
	"github.com/matzehuels/fiberroute/pkg/geom"
)

// Default cell parameters.
const (
	DefaultWGWidth        = 0.5
	DefaultStraightLength = 10.0
	DefaultMMILength      = 5.5
	DefaultMMIWidth       = 2.5
	DefaultMMIGap         = 0.25
	DefaultTaperLength    = 10.0
	DefaultCrossLength    = 10.0
)

// Straight returns a straight waveguide along +x with ports W0 (west) and E0 (east).
func Straight(length, width float64) *Component {
	c := New(CellName("straight",
		Param{Key: "L", Value: length, Default: DefaultStraightLength},
		Param{Key: "W", Value: width, Default: DefaultWGWidth},
	))
	c.AddPath(Path{Points: []geom.Point{geom.Pt(0, 0), geom.Pt(length, 0)}, Width: width, Layer: LayerWG})
	MustAddPort(c, Port{Name: "W0", Center: geom.Pt(0, 0), Orientation: 180, Width: width, Layer: LayerWG})
	MustAddPort(c, Port{Name: "E0", Center: geom.Pt(length, 0), Orientation: 0, Width: width, Layer: LayerWG})
	c.Info = map[string]any{"length": length, "width": width}
	return c
}

// MMI2x2 returns a 2x2 multimode interferometer with tapered access waveguides.
// Ports are W0, W1 on the west side and E0, E1 on the east side.
func MMI2x2(length float64) *Component {
	c := New(CellName("mmi2x2", Param{Key: "L", Value: length, Default: DefaultMMILength}))
	y := (DefaultMMIWidth/2+DefaultMMIGap)/2 + DefaultWGWidth/4
	xw, xe := -DefaultTaperLength, length+DefaultTaperLength

	c.AddPath(Path{Points: []geom.Point{geom.Pt(0, 0), geom.Pt(length, 0)}, Width: DefaultMMIWidth, Layer: LayerWG})
	for _, sy := range []float64{-y, y} {
		c.AddPath(Path{Points: []geom.Point{geom.Pt(xw, sy), geom.Pt(0, sy)}, Width: DefaultWGWidth, Layer: LayerWG})
		c.AddPath(Path{Points: []geom.Point{geom.Pt(length, sy), geom.Pt(xe, sy)}, Width: DefaultWGWidth, Layer: LayerWG})
	}
	MustAddPort(c, Port{Name: "W0", Center: geom.Pt(xw, -y), Orientation: 180, Width: DefaultWGWidth, Layer: LayerWG})
	MustAddPort(c, Port{Name: "W1", Center: geom.Pt(xw, y), Orientation: 180, Width: DefaultWGWidth, Layer: LayerWG})
	MustAddPort(c, Port{Name: "E0", Center: geom.Pt(xe, -y), Orientation: 0, Width: DefaultWGWidth, Layer: LayerWG})
	MustAddPort(c, Port{Name: "E1", Center: geom.Pt(xe, y), Orientation: 0, Width: DefaultWGWidth, Layer: LayerWG})
	c.Info = map[string]any{"length": length}
	return c
}

// Cross returns a waveguide crossing with arms of the given length and one
// port per edge: W0, N0, E0, S0.
func Cross(length float64) *Component {
	c := New(CellName("cross", Param{Key: "L", Value: length, Default: DefaultCrossLength}))
	h := length / 2
	c.AddPath(Path{Points: []geom.Point{geom.Pt(-h, 0), geom.Pt(h, 0)}, Width: DefaultWGWidth, Layer: LayerWG})
	c.AddPath(Path{Points: []geom.Point{geom.Pt(0, -h), geom.Pt(0, h)}, Width: DefaultWGWidth, Layer: LayerWG})
	MustAddPort(c, Port{Name: "W0", Center: geom.Pt(-h, 0), Orientation: 180, Width: DefaultWGWidth, Layer: LayerWG})
	MustAddPort(c, Port{Name: "N0", Center: geom.Pt(0, h), Orientation: 90, Width: DefaultWGWidth, Layer: LayerWG})
	MustAddPort(c, Port{Name: "E0", Center: geom.Pt(h, 0), Orientation: 0, Width: DefaultWGWidth, Layer: LayerWG})
	MustAddPort(c, Port{Name: "S0", Center: geom.Pt(0, -h), Orientation: 270, Width: DefaultWGWidth, Layer: LayerWG})
	c.Info = map[string]any{"length": length}
	return c
}

// Pad returns an electrical bond pad with a single electrical port facing north.
func Pad(size float64) *Component {
	c := New(CellName("pad", Param{Key: "S", Value: size, Default: 100}))
	c.Bounds = geom.R(-size/2, -size/2, size/2, size/2)
	MustAddPort(c, Port{
		Name:        "e1",
		Center:      geom.Pt(0, size/2),
		Orientation: 90,
		Width:       size,
		Layer:       Layer{Layer: 49, Datatype: 0},
		Type:        Electrical,
	})
	return c
}

// Cells maps the names accepted in component files to their builders.
// Each builder receives the file's "length" parameter (0 means default).
var Cells = map[string]func(length float64) *Component{
	"straight": func(l float64) *Component {
		if l == 0 {
			l = DefaultStraightLength
		}
		return Straight(l, DefaultWGWidth)
	},
	"mmi2x2": func(l float64) *Component {
		if l == 0 {
			l = DefaultMMILength
		}
		return MMI2x2(l)
	},
	"cross": func(l float64) *Component {
		if l == 0 {
			l = DefaultCrossLength
		}
		return Cross(l)
	},
}

// MustAddPort adds p to c and panics on a duplicate name. It is meant for
// builders whose port names are fixed and unique.
func MustAddPort(c *Component, p Port) {
	if err := c.AddPort(p); err != nil {
		panic(err)
	}
}
