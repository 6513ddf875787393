package route

import "github.com/matzehuels/fiberroute/pkg/component"

// Compose merges the two edge results into the south frame.
//
// South elements come first, unchanged and in order. Every north element is
// then rotated by 180° and appended; groups are flattened so that each member
// is appended on its own. South couplers are flattened in group order and the
// first north coupler group follows, rotated by 180°.
func Compose(south, north Result) (elements, couplers []component.Element) {
	elements = make([]component.Element, 0, len(south.Elements)+len(north.Elements))
	elements = append(elements, south.Elements...)
	for _, e := range north.Elements {
		if g, ok := e.(component.Group); ok {
			for _, ei := range g {
				elements = append(elements, ei.Rotate(180))
			}
			continue
		}
		elements = append(elements, e.Rotate(180))
	}

	couplers = make([]component.Element, 0, south.CouplerCount()+north.CouplerCount())
	for _, g := range south.Couplers {
		couplers = append(couplers, g...)
	}
	if len(north.Couplers) > 0 {
		for _, e := range north.Couplers[0] {
			couplers = append(couplers, e.Rotate(180))
		}
	}
	return elements, couplers
}
