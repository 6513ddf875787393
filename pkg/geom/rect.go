package geom

import "math"

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min Point `json:"min" toml:"min"`
	Max Point `json:"max" toml:"max"`
}

// R builds a normalized rectangle from two opposite corners.
func R(x0, y0, x1, y1 float64) Rect {
	return Rect{
		Min: Point{X: math.Min(x0, x1), Y: math.Min(y0, y1)},
		Max: Point{X: math.Max(x0, x1), Y: math.Max(y0, y1)},
	}
}

// Width returns the horizontal span of the box.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical span of the box.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the center point of the box.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Empty reports whether the box has no area and sits at the origin.
func (r Rect) Empty() bool { return r == Rect{} }

// Rotate rotates the box about the origin and returns the bounding box of the result.
func (r Rect) Rotate(deg float64) Rect {
	return BoundsOf(
		r.Min.Rotate(deg),
		Point{X: r.Max.X, Y: r.Min.Y}.Rotate(deg),
		r.Max.Rotate(deg),
		Point{X: r.Min.X, Y: r.Max.Y}.Rotate(deg),
	)
}

// Translate moves the box by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Union returns the smallest box containing r and o. An empty r yields o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		Min: Point{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

// BoundsOf returns the bounding box of the given points.
func BoundsOf(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	b := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}
