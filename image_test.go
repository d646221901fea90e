package flare

import (
	"math"
	"testing"
)

func TestFloatImageAccumulate(t *testing.T) {
	img := NewFloatImage(4, 4)
	img.Accumulate(1, 1, 0.5, 0.25, 0.1)
	img.Accumulate(1, 1, 0.5, 0.25, 0.1)

	r, g, b := img.At(1, 1)
	if math.Abs(float64(r)-1.0) > 1e-6 || math.Abs(float64(g)-0.5) > 1e-6 || math.Abs(float64(b)-0.2) > 1e-6 {
		t.Errorf("At(1,1) = (%v,%v,%v), want (1, 0.5, 0.2)", r, g, b)
	}
}

func TestFloatImageAccumulateOutOfBounds(t *testing.T) {
	img := NewFloatImage(2, 2)
	img.Accumulate(-1, 0, 1, 1, 1) // must not panic
	img.Accumulate(5, 5, 1, 1, 1)
	r, g, b := img.At(-1, 0)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("At() out of bounds should be zero, got (%v,%v,%v)", r, g, b)
	}
}

func TestFloatImageScale(t *testing.T) {
	img := NewFloatImage(1, 1)
	img.Accumulate(0, 0, 2, 4, 8)
	img.Scale(0.5)
	r, g, b := img.At(0, 0)
	if r != 1 || g != 2 || b != 4 {
		t.Errorf("Scale(0.5) = (%v,%v,%v), want (1,2,4)", r, g, b)
	}
}

func TestFloatImageAdd(t *testing.T) {
	a := NewFloatImage(2, 2)
	b := NewFloatImage(2, 2)
	a.Accumulate(0, 0, 1, 1, 1)
	b.Accumulate(0, 0, 2, 2, 2)
	a.Add(b)
	r, g, bl := a.At(0, 0)
	if r != 3 || g != 3 || bl != 3 {
		t.Errorf("Add() = (%v,%v,%v), want (3,3,3)", r, g, bl)
	}
}

func TestFloatImageAddMismatchedSize(t *testing.T) {
	a := NewFloatImage(2, 2)
	b := NewFloatImage(3, 3)
	a.Accumulate(0, 0, 1, 1, 1)
	a.Add(b) // must not panic, must leave a unchanged
	r, _, _ := a.At(0, 0)
	if r != 1 {
		t.Errorf("Add() with mismatched size mutated the image")
	}
}

func TestFloatImageToPixmapClampsNegative(t *testing.T) {
	img := NewFloatImage(1, 1)
	img.Accumulate(0, 0, -5, 0, 1000)
	pm := img.ToPixmap()
	c := pm.GetPixel(0, 0)
	if c.R != 0 {
		t.Errorf("negative radiance should tone-map to 0, got %v", c.R)
	}
	if c.B <= 0.9 {
		t.Errorf("very high radiance should tone-map near 1, got %v", c.B)
	}
}

func TestFloatImageToPixmapZeroIsBlack(t *testing.T) {
	img := NewFloatImage(3, 3)
	pm := img.ToPixmap()
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if c := pm.GetPixel(x, y); c.R != 0 || c.G != 0 || c.B != 0 {
				t.Errorf("zero radiance should tone-map to black, got %v", c)
			}
		}
	}
}
