package fiberarray

import (
	"math"

	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/geom"
	"github.com/matzehuels/fiberroute/pkg/xsection"
)

// simplify drops repeated points and the middle of collinear runs.
func simplify(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if n := len(out); n > 0 && out[n-1] == p {
			continue
		}
		if n := len(out); n >= 2 && collinear(out[n-2], out[n-1], p) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

func collinear(a, b, c geom.Point) bool {
	return (a.X == b.X && b.X == c.X) || (a.Y == b.Y && b.Y == c.Y)
}

// segmenter turns Manhattan polylines into placed straights, one per
// segment. Long segments are widened when autoWiden is set.
type segmenter struct {
	xs        xsection.CrossSection
	autoWiden bool
	cells     map[[2]float64]*component.Component
}

func newSegmenter(xs xsection.CrossSection, autoWiden bool) *segmenter {
	return &segmenter{xs: xs, autoWiden: autoWiden, cells: make(map[[2]float64]*component.Component)}
}

func (s *segmenter) width(length float64) float64 {
	if s.autoWiden && s.xs.WideWidth > 0 && length > s.xs.WidenThreshold {
		return s.xs.WideWidth
	}
	return s.xs.Width
}

// cell returns the straight waveguide of the given length and width, shared
// across segments of one routing call.
func (s *segmenter) cell(length, width float64) *component.Component {
	key := [2]float64{length, width}
	if c, ok := s.cells[key]; ok {
		return c
	}
	c := component.New(component.CellName("waveguide",
		component.Param{Key: "L", Value: length, Default: -1},
		component.Param{Key: "W", Value: width, Default: component.DefaultWGWidth},
	))
	c.SetKind(component.KindWaveguide)
	c.AddPath(component.Path{
		Points: []geom.Point{geom.Pt(0, 0), geom.Pt(length, 0)},
		Width:  width,
		Layer:  s.xs.Layer,
	})
	component.MustAddPort(c, component.Port{Name: "o1", Orientation: 180, Width: width, Layer: s.xs.Layer})
	component.MustAddPort(c, component.Port{Name: "o2", Center: geom.Pt(length, 0), Width: width, Layer: s.xs.Layer})
	s.cells[key] = c
	return c
}

// route places pts as a group of straight references.
func (s *segmenter) route(pts []geom.Point) component.Group {
	pts = simplify(pts)
	var g component.Group
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := b.Sub(a)
		length := math.Hypot(d.X, d.Y)
		angle := geom.NormalizeAngle(math.Atan2(d.Y, d.X) * 180 / math.Pi)
		g = append(g, &component.Reference{
			Cell:      s.cell(length, s.width(length)),
			Transform: geom.Transform{Rotation: snapAngle(angle), Origin: a},
		})
	}
	return g
}

// snapAngle maps angles within rounding noise of a cardinal angle onto it.
func snapAngle(a float64) float64 {
	r := math.Round(a/90) * 90
	if math.Abs(a-r) < 1e-9 {
		return geom.NormalizeAngle(r)
	}
	return a
}
