package lens

// Path is one ghost reflection path: the ray reflects off element
// Bounce1, travels back through the stack, then reflects off Bounce2
// before continuing on to the sensor.
type Path struct {
	Bounce1 int
	Bounce2 int
}

// PassThrough is the sentinel path selecting the direct, non-reflected
// image (no ghost at all).
var PassThrough = Path{Bounce1: -1, Bounce2: -1}

// AllPaths enumerates every admissible ghost path for a model with the
// given element count and aperture index: pairs (bounce1, bounce2) with
// 1 ≤ bounce1 < elementCount-1 and 0 ≤ bounce2 < bounce1, additionally
// requiring bounce2 > apertureIndex whenever bounce1 > apertureIndex (a
// ray that bounces after the aperture must bounce a second time after it
// too, since it cannot recross the aperture stop to bounce before it).
func AllPaths(elementCount, apertureIndex int) []Path {
	var paths []Path
	for b1 := 1; b1 < elementCount-1; b1++ {
		for b2 := 0; b2 < b1; b2++ {
			if b1 > apertureIndex && b2 <= apertureIndex {
				continue
			}
			paths = append(paths, Path{Bounce1: b1, Bounce2: b2})
		}
	}
	return paths
}

// Select resolves a path selector against the full enumeration of a
// model's ghost paths. A nil or empty selector with all==true returns
// every path (the ALL sentinel in the render selector); a selector equal
// to {-1} returns only the pass-through path; otherwise the selector is a
// set of indices into AllPaths' result.
func Select(all []Path, indices []int, selectAll bool) []Path {
	if selectAll {
		return all
	}
	if len(indices) == 1 && indices[0] == -1 {
		return []Path{PassThrough}
	}

	out := make([]Path, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(all) {
			continue
		}
		out = append(out, all[i])
	}
	return out
}
