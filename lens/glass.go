package lens

import (
	"fmt"
	"math"

	"github.com/flarekit/flare"
)

// Glass is a refractive medium: a manufacturer's named catalog entry with
// its nd/vd specification numbers and the Sellmeier dispersion
// coefficients (B1,C1,B2,C2,B3,C3) used to evaluate n(λ).
type Glass struct {
	Name         string
	Manufacturer string
	Nd           float64
	Vd           float64
	Coefficients [6]float64
}

// IOR evaluates the three-term Sellmeier equation at wavelength nm
// (nanometres), returning the refractive index at that wavelength.
func (g Glass) IOR(nm float64) float64 {
	return Sellmeier(g.Coefficients, nm)
}

// Sellmeier evaluates n(λ) from the six Sellmeier coefficients
// (B1,C1,B2,C2,B3,C3). Wavelength is given in nanometres; the equation
// itself is defined in micrometres, so it is converted internally.
func Sellmeier(c [6]float64, nm float64) float64 {
	um := nm * 1e-3
	l2 := um * um
	d0 := (c[0] * l2) / (l2 - c[1])
	d1 := (c[2] * l2) / (l2 - c[3])
	d2 := (c[4] * l2) / (l2 - c[5])
	return math.Sqrt(1 + d0 + d1 + d2)
}

// Library is a finite set of glasses loaded from a manufacturer
// directory, keyed for closest-match lookup by (n, v).
type Library struct {
	Glasses []Glass
}

// Closest returns the glass whose (n, v) is nearest, in percentage-
// normalized Euclidean space, to the requested (n, v+offset). Ties are
// broken by first-found order, matching a plain linear scan. Returns
// false if n or v is zero, or the library is empty.
func (l Library) Closest(n, v, offset float64) (Glass, bool) {
	if n == 0 || v == 0 || len(l.Glasses) == 0 {
		return Glass{}, false
	}
	v += offset

	best := -1
	var bestDiff float64
	for i, g := range l.Glasses {
		nDiff := 1 - g.Nd/n
		vDiff := 1 - g.Vd/v
		diff := nDiff*nDiff + vDiff*vDiff
		if best == -1 || diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	if best == -1 {
		return Glass{}, false
	}
	return l.Glasses[best], true
}

// ErrNoGlassData reports that a glass file parsed but lacked either a
// formula-2 (Sellmeier) coefficient set or an nd/vd specification, and was
// skipped rather than added to the library.
var ErrNoGlassData = fmt.Errorf("%w: missing formula-2 coefficients or nd/vd spec", flare.ErrBadGlassLibrary)
