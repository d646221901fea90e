package flare

import (
	"testing"
)

func TestPixmapSetGetPixel(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.Clear(Black)

	pm.SetPixel(3, 4, Red)
	got := pm.GetPixel(3, 4)
	if got.R != 1 || got.G != 0 || got.B != 0 {
		t.Errorf("GetPixel(3,4) = %v, want red", got)
	}

	// Neighboring pixels remain untouched.
	if n := pm.GetPixel(3, 5); n != Black {
		t.Errorf("GetPixel(3,5) = %v, want black", n)
	}
}

func TestPixmapOutOfBounds(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.SetPixel(-1, 0, Red) // must not panic
	pm.SetPixel(4, 0, Red)
	pm.SetPixel(0, -1, Red)
	pm.SetPixel(0, 4, Red)

	if got := pm.GetPixel(-1, 0); got != Transparent {
		t.Errorf("GetPixel out of bounds = %v, want Transparent", got)
	}
}

func TestPixmapClear(t *testing.T) {
	pm := NewPixmap(5, 5)
	pm.Clear(White)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if got := pm.GetPixel(x, y); got != White {
				t.Errorf("GetPixel(%d,%d) after Clear(White) = %v, want White", x, y, got)
			}
		}
	}
}

func TestPixmapBounds(t *testing.T) {
	pm := NewPixmap(7, 3)
	b := pm.Bounds()
	if b.Dx() != 7 || b.Dy() != 3 {
		t.Errorf("Bounds() = %v, want 7x3", b)
	}
}

func TestPixmapRoundtripImage(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.SetPixel(0, 0, Red)
	pm.SetPixel(1, 1, White)

	img := pm.ToImage()
	back := FromImage(img)

	if back.GetPixel(0, 0).R != 1 {
		t.Errorf("roundtrip lost red pixel")
	}
	if back.GetPixel(1, 1) != White {
		t.Errorf("roundtrip lost white pixel, got %v", back.GetPixel(1, 1))
	}
}
