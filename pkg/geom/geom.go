// Package geom provides the planar primitives used by the layout model.
//
// All coordinates are in micrometers. Rotations are counter-clockwise in
// degrees and are always taken about the origin, matching how cells are
// rotated in a GDS hierarchy. Quarter-turn rotations are computed exactly so
// that rotating a point four times by 90° returns the original bits.
package geom

import "math"

// DefaultGrid is the database unit of the layout (1 nm).
const DefaultGrid = 0.001

// Point is a position in the layout plane.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale returns p scaled by k.
func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Rotate rotates p about the origin by deg degrees.
func (p Point) Rotate(deg float64) Point {
	switch NormalizeAngle(deg) {
	case 0:
		return p
	case 90:
		return Point{X: -p.Y, Y: p.X}
	case 180:
		return Point{X: -p.X, Y: -p.Y}
	case 270:
		return Point{X: p.Y, Y: -p.X}
	}
	rad := deg * math.Pi / 180
	s, c := math.Sincos(rad)
	return Point{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Snap returns p with both coordinates snapped to grid.
func (p Point) Snap(grid float64) Point { return Point{X: Snap(p.X, grid), Y: Snap(p.Y, grid)} }

// NormalizeAngle maps deg into [0, 360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a == 360 {
		a = 0
	}
	return a
}

// Snap rounds v to the nearest multiple of grid. A non-positive grid returns v unchanged.
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// Direction returns the unit vector for an orientation angle.
func Direction(deg float64) Point {
	return Point{X: 1, Y: 0}.Rotate(deg)
}

// SnapNM snaps v (in micrometers) to a grid of nm nanometers.
func SnapNM(v float64, nm float64) float64 {
	if nm <= 0 {
		return v
	}
	return nm * math.Round(v*1e3/nm) / 1e3
}
