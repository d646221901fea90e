package tasks

import (
	"math"

	"github.com/flarekit/flare"
)

// smoothstep returns a value that is 1 below edge1, 0 above edge0, and
// smoothly interpolated between — i.e. a falling edge from edge1 to
// edge0, matching the aperture mask's "inside = 1, outside = 0" sense
// when edge1 < edge0 is not assumed (edge0 is the outer radius, edge1
// the inner).
func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 1
		}
		return 0
	}
	t := clamp01((edge0 - x) / (edge0 - edge1))
	return t * t * (3 - 2*t)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// rectPulse returns a soft rectangular pulse centered at `center` with
// half-width `half`, falling off over `softness` at each edge.
func rectPulse(x, center, half, softness float64) float64 {
	d := math.Abs(x - center)
	if softness <= 0 {
		softness = 1e-6
	}
	return smoothstep(half+softness, half-softness, d)
}

// drawSegment additively composes a soft line segment of the given
// length/width/softness, centered at `center` (in normalized aperture
// coordinates) and rotated by angle, into m.
func drawSegment(m *Mask, origin flare.Vec2, scale float64, center flare.Vec2, angle, length, width, softness, strength float64) {
	dir := flare.V2(math.Cos(angle), math.Sin(angle))
	half := length / 2

	minX, maxX := center.X-half-width, center.X+half+width
	minY, maxY := center.Y-half-width, center.Y+half+width

	px0 := int(origin.X + minX*scale)
	px1 := int(origin.X + maxX*scale)
	py0 := int(origin.Y + minY*scale)
	py1 := int(origin.Y + maxY*scale)
	px0, px1 = clampRange(px0, px1, m.Width)
	py0, py1 = clampRange(py0, py1, m.Height)

	for y := py0; y < py1; y++ {
		for x := px0; x < px1; x++ {
			p := flare.V2(float64(x)+0.5, float64(y)+0.5).Sub(origin).Div(scale).Sub(center)
			along := p.Dot(dir)
			perp := p.Cross(dir)

			lengthFalloff := rectPulse(along, 0, half, softness)
			widthFalloff := rectPulse(perp, 0, width/2, softness)
			m.Add(x, y, strength*lengthFalloff*widthFalloff)
		}
	}
}

// drawDisk additively composes a soft disk of the given radius/softness,
// centered at `center` (in normalized aperture coordinates), into m.
func drawDisk(m *Mask, origin flare.Vec2, scale float64, center flare.Vec2, radius, softness, strength float64) {
	minX, maxX := center.X-radius, center.X+radius
	minY, maxY := center.Y-radius, center.Y+radius

	px0 := int(origin.X + minX*scale)
	px1 := int(origin.X + maxX*scale)
	py0 := int(origin.Y + minY*scale)
	py1 := int(origin.Y + maxY*scale)
	px0, px1 = clampRange(px0, px1, m.Width)
	py0, py1 = clampRange(py0, py1, m.Height)

	for y := py0; y < py1; y++ {
		for x := px0; x < px1; x++ {
			p := flare.V2(float64(x)+0.5, float64(y)+0.5).Sub(origin).Div(scale).Sub(center)
			m.Add(x, y, strength*rectPulse(p.Length(), 0, radius, softness))
		}
	}
}

func clampRange(lo, hi, max int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > max {
		hi = max
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}
