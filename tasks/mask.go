package tasks

import "math"

// Mask is a single-channel float image: the aperture task's working
// buffer and the ghost task's magnitude output.
type Mask struct {
	Width, Height int
	Data          []float64
}

// NewMask allocates a zero-filled mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Data: make([]float64, width*height)}
}

// At returns the value at (x,y), or 0 if out of bounds.
func (m *Mask) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Data[y*m.Width+x]
}

// Add accumulates v into (x,y), a no-op if out of bounds.
func (m *Mask) Add(x, y int, v float64) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Data[y*m.Width+x] += v
}

// Set overwrites the value at (x,y), a no-op if out of bounds.
func (m *Mask) Set(x, y int, v float64) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Data[y*m.Width+x] = v
}

// BilinearAt samples the mask at normalized coordinates u,v in [0,1]^2
// using bilinear interpolation, clamping at the edges.
func (m *Mask) BilinearAt(u, v float64) float64 {
	fx := u*float64(m.Width) - 0.5
	fy := v*float64(m.Height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := m.At(x0, y0)
	c10 := m.At(x0+1, y0)
	c01 := m.At(x0, y0+1)
	c11 := m.At(x0+1, y0+1)

	top := c00 + (c10-c00)*tx
	bottom := c01 + (c11-c01)*tx
	return top + (bottom-top)*ty
}
