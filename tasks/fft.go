package tasks

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// fft1DOrtho returns the ortho-normalized (energy-preserving) forward DFT
// of x: gonum's Forward is unnormalized, so the result is scaled by
// 1/sqrt(n) to match the ortho convention the fractional Fourier
// transform below is derived against.
func fft1DOrtho(x []complex128) []complex128 {
	n := len(x)
	t := fourier.NewCmplxFFT(n)
	out := t.Forward(nil, x)
	scale := complex(1/math.Sqrt(float64(n)), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// ifft1DOrtho returns the ortho-normalized inverse DFT of x: gonum's
// Inverse already divides by n, so the result is multiplied back by
// sqrt(n) to match the ortho convention.
func ifft1DOrtho(x []complex128) []complex128 {
	n := len(x)
	t := fourier.NewCmplxFFT(n)
	out := t.Inverse(nil, x)
	scale := complex(math.Sqrt(float64(n)), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// complexGrid is a row-major W x H grid of complex128 values, the
// working representation for the 2-D FFT/FrFT the ghost and starburst
// tasks use.
type complexGrid struct {
	W, H int
	Data []complex128
}

func newComplexGrid(w, h int) *complexGrid {
	return &complexGrid{W: w, H: h, Data: make([]complex128, w*h)}
}

func (g *complexGrid) at(x, y int) complex128 { return g.Data[y*g.W+x] }
func (g *complexGrid) set(x, y int, v complex128) {
	g.Data[y*g.W+x] = v
}

// fft2DOrtho applies a 2-D ortho-normalized FFT: a 1-D FFT along each row,
// then along each column.
func fft2DOrtho(g *complexGrid) *complexGrid {
	return transform2D(g, fft1DOrtho)
}

// ifft2DOrtho applies the 2-D ortho-normalized inverse FFT.
func ifft2DOrtho(g *complexGrid) *complexGrid {
	return transform2D(g, ifft1DOrtho)
}

func transform2D(g *complexGrid, transform1D func([]complex128) []complex128) *complexGrid {
	out := newComplexGrid(g.W, g.H)

	row := make([]complex128, g.W)
	for y := 0; y < g.H; y++ {
		copy(row, g.Data[y*g.W:(y+1)*g.W])
		transformed := transform1D(row)
		copy(out.Data[y*g.W:(y+1)*g.W], transformed)
	}

	col := make([]complex128, g.H)
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			col[y] = out.at(x, y)
		}
		transformed := transform1D(col)
		for y := 0; y < g.H; y++ {
			out.set(x, y, transformed[y])
		}
	}
	return out
}

// fftShift2D swaps quadrants diagonally, moving the zero-frequency
// component from the corner to the center (or back — the operation is
// its own inverse for even dimensions).
func fftShift2D(g *complexGrid) *complexGrid {
	out := newComplexGrid(g.W, g.H)
	hw, hh := g.W/2, g.H/2
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			sx := (x + hw) % g.W
			sy := (y + hh) % g.H
			out.set(sx, sy, g.at(x, y))
		}
	}
	return out
}

// flip2D reverses both axes, matching numpy.flip on a 2-D array.
func flip2D(g *complexGrid) *complexGrid {
	out := newComplexGrid(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			out.set(g.W-1-x, g.H-1-y, g.at(x, y))
		}
	}
	return out
}

// magnitude2D returns |g| elementwise as a real-valued grid.
func magnitude2D(g *complexGrid) []float64 {
	out := make([]float64, len(g.Data))
	for i, c := range g.Data {
		out[i] = cmplx.Abs(c)
	}
	return out
}
