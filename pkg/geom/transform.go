package geom

// Transform places a cell in its parent: rotate about the cell origin, then
// translate by Origin.
type Transform struct {
	Rotation float64 `json:"rotation"`
	Origin   Point   `json:"origin"`
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{}

// Apply maps a point from cell coordinates into parent coordinates.
func (t Transform) Apply(p Point) Point {
	return p.Rotate(t.Rotation).Add(t.Origin)
}

// Rotate returns t followed by a rotation of deg degrees about the parent origin.
func (t Transform) Rotate(deg float64) Transform {
	return Transform{
		Rotation: NormalizeAngle(t.Rotation + deg),
		Origin:   t.Origin.Rotate(deg),
	}
}

// Translate returns t followed by a translation of d.
func (t Transform) Translate(d Point) Transform {
	return Transform{Rotation: t.Rotation, Origin: t.Origin.Add(d)}
}

// Then composes t with outer, so that Then(outer).Apply(p) == outer.Apply(t.Apply(p)).
func (t Transform) Then(outer Transform) Transform {
	return Transform{
		Rotation: NormalizeAngle(t.Rotation + outer.Rotation),
		Origin:   outer.Apply(t.Origin),
	}
}
