package tasks

import (
	"math"
	"math/cmplx"

	"github.com/flarekit/flare/compute"
	"github.com/flarekit/flare/spectrum"
)

const ghostWGSL = `
// Fractional Fourier transform magnitude of the fft-shifted aperture,
// producing the ghost's internal ringing pattern.
@group(0) @binding(0) var<storage, read> aperture: array<f32>;
@group(0) @binding(1) var<storage, read_write> ghost: array<f32>;
@compute @workgroup_size(8, 8, 1)
fn ghost_frft(@builtin(global_invocation_id) id: vec3<u32>) {
}
`

// GhostKernel registers the ghost-ringing kernel against ctx.
func GhostKernel(ctx *compute.ComputeContext) error {
	return ctx.RegisterKernel(&compute.Kernel{
		Name:       "ghost",
		EntryPoint: "ghost_frft",
		WGSL:       ghostWGSL,
		HostMirror: func(compute.KernelArgs) error { return nil },
	})
}

// RitschelEitzAlpha returns the fractional-Fourier-transform order the
// ghost ringing pattern is sampled at, per Ritschel & Eitz: proportional
// to the center wavelength relative to 400nm and the f-stop relative to
// f/18.
func RitschelEitzAlpha(fstop float64) float64 {
	return 0.15 * (spectrum.LambdaMid / 400) * (fstop / 18)
}

// GhostImage computes the ghost's internal ringing pattern from a
// single-channel aperture mask: the magnitude of the fractional Fourier
// transform of the fft-shifted aperture at order alpha, fft-shifted back
// and rescaled by sqrt(W*H).
func GhostImage(aperture *Mask, fstop float64) *Mask {
	alpha := RitschelEitzAlpha(fstop)

	g := newComplexGrid(aperture.Width, aperture.Height)
	for i, v := range aperture.Data {
		g.Data[i] = complex(v, 0)
	}

	shifted := fftShift2D(g)
	transformed := frft2D(shifted, alpha)
	result := fftShift2D(transformed)

	scale := math.Sqrt(float64(aperture.Width * aperture.Height))
	out := NewMask(aperture.Width, aperture.Height)
	mag := magnitude2D(result)
	for i, v := range mag {
		out.Data[i] = v * scale
	}
	return out
}

// frft2D computes the 2-D fractional Fourier transform of g at order
// alpha (a value in [0,4), where integer values reduce to plain FFT
// powers). The quadrant normalization below keeps phi = alpha*pi/2 away
// from a multiple of pi/2, where cot(phi) is singular.
func frft2D(g *complexGrid, alpha float64) *complexGrid {
	rel := math.Mod(alpha, 4)
	if rel < 0 {
		rel += 4
	}

	var normalized *complexGrid
	switch {
	case rel < 0.5:
		alpha = rel + 1
		normalized = ifft2DOrtho(g)
	case rel < 1.5:
		alpha = rel
		normalized = g
	case rel < 2.5:
		alpha = rel - 1
		normalized = fft2DOrtho(g)
	case rel < 3.5:
		alpha = rel - 2
		normalized = flip2D(g)
	default:
		alpha = rel - 3
		normalized = ifft2DOrtho(g)
	}

	return frftCore(normalized, alpha)
}

// frftCore implements the convolution form of the fractional Fourier
// transform for alpha already reduced to (0, 2): a chirp-modulate,
// FFT-convolve, chirp-demodulate sequence (Ozaktas et al. 1996).
func frftCore(g *complexGrid, alpha float64) *complexGrid {
	phi := alpha * math.Pi / 2
	cotPhi := 1 / math.Tan(phi)
	sqCotPhi := math.Sqrt(1 + cotPhi*cotPhi)

	n := float64(g.W * g.H)
	scale := cmplx.Sqrt(complex(1, -cotPhi)) / complex(math.Sqrt(n), 0)

	chirpArg := chirpArgument(g.W, g.H)

	chirp1 := make([]complex128, len(chirpArg))
	chirp2 := make([]complex128, len(chirpArg))
	for i, c := range chirpArg {
		chirp1[i] = cmplx.Exp(c * complex(cotPhi-sqCotPhi, 0))
		chirp2[i] = cmplx.Exp(c * complex(sqCotPhi, 0))
	}

	chirp1Array := newComplexGrid(g.W, g.H)
	for i, v := range g.Data {
		chirp1Array.Data[i] = chirp1[i] * v
	}

	chirp2Grid := &complexGrid{W: g.W, H: g.H, Data: chirp2}
	fft1 := fft2DOrtho(chirp2Grid)
	fft2 := fft2DOrtho(chirp1Array)

	product := newComplexGrid(g.W, g.H)
	for i := range product.Data {
		product.Data[i] = fft1.Data[i] * fft2.Data[i]
	}
	convolved := ifft2DOrtho(product)

	out := newComplexGrid(g.W, g.H)
	for i, v := range convolved.Data {
		out.Data[i] = scale * chirp1[i] * v
	}
	return out
}

// chirpArgument returns, for each cell of a W x H grid, the value
// iπ*(fx²/W + fy²/H) where fx,fy are the standard FFT frequency-bin
// indices (0..n/2, then negative, matching fftshift's ordering) of that
// cell's position. This is the argument to the chirp exponentials in the
// convolution-form fractional Fourier transform.
func chirpArgument(w, h int) []complex128 {
	out := make([]complex128, w*h)
	for y := 0; y < h; y++ {
		fy := fftFreqIndex(y, h)
		for x := 0; x < w; x++ {
			fx := fftFreqIndex(x, w)
			v := fx*fx/float64(w) + fy*fy/float64(h)
			out[y*w+x] = complex(0, math.Pi) * complex(v, 0)
		}
	}
	return out
}

// fftFreqIndex returns the signed frequency-bin index of position i in a
// dimension of size n: 0..ceil(n/2)-1 for the low frequencies, then
// negative for the wrapped-around high frequencies, matching numpy's
// fftfreq bin ordering (unnormalized, in bins rather than Hz).
func fftFreqIndex(i, n int) float64 {
	if i < (n+1)/2 {
		return float64(i)
	}
	return float64(i - n)
}
