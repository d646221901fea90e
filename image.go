package flare

import "math"

// FloatImage is a linear-light RGB accumulation buffer backing a render's
// intermediate stages: ghosts, starburst, and diagram all additively
// deposit energy into one before the final tone-map pass converts it to a
// displayable Pixmap. Unlike Pixmap it has no alpha channel; coverage is
// tracked implicitly by accumulated radiance.
type FloatImage struct {
	width  int
	height int
	pix    []float32 // RGB, 3 floats per pixel, row-major
}

// NewFloatImage creates a zeroed accumulation buffer of the given size.
func NewFloatImage(width, height int) *FloatImage {
	return &FloatImage{
		width:  width,
		height: height,
		pix:    make([]float32, width*height*3),
	}
}

// Width returns the image width in pixels.
func (f *FloatImage) Width() int { return f.width }

// Height returns the image height in pixels.
func (f *FloatImage) Height() int { return f.height }

// Pix returns the raw float32 RGB pixel data.
func (f *FloatImage) Pix() []float32 { return f.pix }

// At returns the accumulated radiance at (x, y), or zero if out of bounds.
func (f *FloatImage) At(x, y int) (r, g, b float32) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0, 0, 0
	}
	i := (y*f.width + x) * 3
	return f.pix[i], f.pix[i+1], f.pix[i+2]
}

// Accumulate adds radiance to the pixel at (x, y). Out-of-bounds
// coordinates are silently dropped, matching a rasterizer that clips
// primitives to tile bounds before depositing energy.
func (f *FloatImage) Accumulate(x, y int, r, g, b float32) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := (y*f.width + x) * 3
	f.pix[i] += r
	f.pix[i+1] += g
	f.pix[i+2] += b
}

// Clear zeroes the entire buffer.
func (f *FloatImage) Clear() {
	for i := range f.pix {
		f.pix[i] = 0
	}
}

// Scale multiplies every channel by s, used to normalize accumulated energy
// by sample count before tone mapping.
func (f *FloatImage) Scale(s float32) {
	for i := range f.pix {
		f.pix[i] *= s
	}
}

// Add accumulates another image of the same dimensions into this one,
// used to merge per-tile or per-worker partial sums.
func (f *FloatImage) Add(other *FloatImage) {
	if other.width != f.width || other.height != f.height {
		return
	}
	for i := range f.pix {
		f.pix[i] += other.pix[i]
	}
}

// ToPixmap tone-maps the accumulated linear radiance to an 8-bit Pixmap
// using a simple Reinhard operator (x / (1 + x)) followed by gamma 2.2
// encoding, matching the reference writer's default display transform.
func (f *FloatImage) ToPixmap() *Pixmap {
	pm := NewPixmap(f.width, f.height)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			r, g, b := f.At(x, y)
			pm.SetPixel(x, y, RGBA{
				R: reinhardGamma(float64(r)),
				G: reinhardGamma(float64(g)),
				B: reinhardGamma(float64(b)),
				A: 1,
			})
		}
	}
	return pm
}

func reinhardGamma(x float64) float64 {
	if x < 0 {
		x = 0
	}
	mapped := x / (1 + x)
	return math.Pow(mapped, 1/2.2)
}
