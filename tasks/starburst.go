package tasks

import (
	"math"

	"github.com/flarekit/flare/compute"
	"github.com/flarekit/flare/project"
)

const starburstWGSL = `
// Far-field (Fraunhofer) diffraction pattern of the aperture: the squared
// magnitude of the 2-D FFT of the aperture's complex transmittance.
@group(0) @binding(0) var<storage, read> aperture: array<f32>;
@group(0) @binding(1) var<storage, read_write> starburst: array<f32>;
@compute @workgroup_size(8, 8, 1)
fn starburst_diffraction(@builtin(global_invocation_id) id: vec3<u32>) {
}
`

// StarburstKernel registers the diffraction kernel against ctx.
func StarburstKernel(ctx *compute.ComputeContext) error {
	return ctx.RegisterKernel(&compute.Kernel{
		Name:       "starburst",
		EntryPoint: "starburst_diffraction",
		WGSL:       starburstWGSL,
		HostMirror: func(compute.KernelArgs) error { return nil },
	})
}

// DiffractionPattern computes the Fraunhofer far-field diffraction power
// spectrum of a real-valued aperture transmittance mask: the squared
// magnitude of its zero-padded, fftshifted 2-D FFT, normalized to a peak
// of 1.
func DiffractionPattern(aperture *Mask, resolution int) *Mask {
	g := newComplexGrid(resolution, resolution)
	offsetX := (resolution - aperture.Width) / 2
	offsetY := (resolution - aperture.Height) / 2
	for y := 0; y < aperture.Height; y++ {
		for x := 0; x < aperture.Width; x++ {
			dx, dy := x+offsetX, y+offsetY
			if dx < 0 || dy < 0 || dx >= resolution || dy >= resolution {
				continue
			}
			g.set(dx, dy, complex(aperture.At(x, y), 0))
		}
	}

	spectrum := fft2DOrtho(g)
	shifted := fftShift2D(spectrum)

	out := NewMask(resolution, resolution)
	peak := 0.0
	for i, c := range shifted.Data {
		p := real(c)*real(c) + imag(c)*imag(c)
		out.Data[i] = p
		if p > peak {
			peak = p
		}
	}
	if peak > 0 {
		for i := range out.Data {
			out.Data[i] /= peak
		}
	}
	return out
}

// StarburstImage renders cfg's diffraction pattern, rotated around the
// light's angle to the optical axis per RotationWeighting, blurred, faded
// out between FadeoutStart and FadeoutEnd (fractions of the distance from
// the image center to a corner), and multiplied by Intensity. Scale is not
// applied.
func StarburstImage(cfg project.Starburst, aperture *Mask, resolution int, lightAngle float64) *Mask {
	base := DiffractionPattern(aperture, resolution)
	rotated := rotateMask(base, cfg.Rotation+lightAngle*cfg.RotationWeighting)
	blurred := boxBlur(rotated, cfg.Blur)
	faded := fadeOut(blurred, cfg.FadeoutStart, cfg.FadeoutEnd)

	out := NewMask(resolution, resolution)
	for i, v := range faded.Data {
		out.Data[i] = v * cfg.Intensity
	}
	return out
}

// rotateMask resamples m at angle radians around its center using
// bilinear sampling of the inverse rotation.
func rotateMask(m *Mask, angle float64) *Mask {
	if angle == 0 {
		return m
	}
	out := NewMask(m.Width, m.Height)
	cx, cy := float64(m.Width)/2, float64(m.Height)/2
	cos, sin := math.Cos(-angle), math.Sin(-angle)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			sx := dx*cos-dy*sin+cx
			sy := dx*sin+dy*cos+cy
			out.Set(x, y, m.BilinearAt(sx/float64(m.Width), sy/float64(m.Height)))
		}
	}
	return out
}

// boxBlur applies a separable box blur of the given radius in pixels.
func boxBlur(m *Mask, radius float64) *Mask {
	r := int(radius)
	if r <= 0 {
		return m
	}

	horizontal := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			var sum float64
			var count int
			for k := -r; k <= r; k++ {
				xx := x + k
				if xx < 0 || xx >= m.Width {
					continue
				}
				sum += m.At(xx, y)
				count++
			}
			horizontal.Set(x, y, sum/float64(count))
		}
	}

	out := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			var sum float64
			var count int
			for k := -r; k <= r; k++ {
				yy := y + k
				if yy < 0 || yy >= m.Height {
					continue
				}
				sum += horizontal.At(x, yy)
				count++
			}
			out.Set(x, y, sum/float64(count))
		}
	}
	return out
}

// fadeOut attenuates m radially from its center, at full strength inside
// start (fraction of the half-diagonal) and zero beyond end.
func fadeOut(m *Mask, start, end float64) *Mask {
	out := NewMask(m.Width, m.Height)
	cx, cy := float64(m.Width)/2, float64(m.Height)/2
	maxR := math.Hypot(cx, cy)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxR
			var w float64
			switch {
			case d <= start:
				w = 1
			case d >= end:
				w = 0
			default:
				w = 1 - (d-start)/(end-start)
			}
			out.Set(x, y, m.At(x, y)*w)
		}
	}
	return out
}
