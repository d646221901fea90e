package tasks

import (
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/flarekit/flare"
	"github.com/flarekit/flare/project"
)

func writeTestPNG(t *testing.T, w, h int, fill uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: fill})
		}
	}
	path := filepath.Join(t.TempDir(), "aperture.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApertureImageCenterIsInsideShape(t *testing.T) {
	a := project.Aperture{Shape: project.Shape{Size: 0.5, Blades: 6, Softness: 0.05}}
	m := ApertureImage(a, 64, 64, 0, flare.Vec2{}, rand.New(rand.NewSource(1)))

	v := m.At(32, 32)
	if v < 0.9 {
		t.Errorf("aperture center = %v, want close to 1 (inside the shape)", v)
	}
}

func TestApertureImageCornerIsOutsideShape(t *testing.T) {
	a := project.Aperture{Shape: project.Shape{Size: 0.5, Blades: 6, Softness: 0.05}}
	m := ApertureImage(a, 64, 64, 0, flare.Vec2{}, rand.New(rand.NewSource(1)))

	v := m.At(0, 0)
	if v > 0.1 {
		t.Errorf("aperture corner = %v, want close to 0 (outside the shape)", v)
	}
}

func TestApertureImageDeterministicGivenSeed(t *testing.T) {
	a := project.Aperture{
		Shape:     project.Shape{Size: 0.5, Blades: 6, Softness: 0.05},
		Scratches: project.Scratches{Strength: 1, Density: 0.1, Length: 0.2, Width: 0.01, Softness: 0.01},
	}
	m1 := ApertureImage(a, 32, 32, 0, flare.Vec2{}, rand.New(rand.NewSource(42)))
	m2 := ApertureImage(a, 32, 32, 0, flare.Vec2{}, rand.New(rand.NewSource(42)))

	for i := range m1.Data {
		if m1.Data[i] != m2.Data[i] {
			t.Fatalf("same-seed renders diverged at pixel %d: %v != %v", i, m1.Data[i], m2.Data[i])
		}
	}
}

func TestWithOverlayThresholdsAndScales(t *testing.T) {
	dst := NewMask(4, 4)
	overlay := NewMask(4, 4)
	for i := range overlay.Data {
		overlay.Data[i] = 0.5
	}

	WithOverlay(dst, overlay, project.ImageOverlay{Strength: 2, Size: 1, Threshold: 0.6})
	for _, v := range dst.Data {
		if v != 0 {
			t.Errorf("overlay below threshold should contribute 0, got %v", v)
		}
	}

	dst2 := NewMask(4, 4)
	WithOverlay(dst2, overlay, project.ImageOverlay{Strength: 2, Size: 1, Threshold: 0.4})
	for _, v := range dst2.Data {
		if v != 1 {
			t.Errorf("overlay above threshold scaled by strength = %v, want 1", v)
		}
	}
}

func TestLoadGrayscaleBitmapNormalizesLuminance(t *testing.T) {
	path := writeTestPNG(t, 8, 8, 128)
	m, err := LoadGrayscaleBitmap(path, 16, 16)
	if err != nil {
		t.Fatalf("LoadGrayscaleBitmap: %v", err)
	}
	if m.Width != 16 || m.Height != 16 {
		t.Fatalf("resized mask dims = %dx%d, want 16x16", m.Width, m.Height)
	}
	v := m.At(8, 8)
	if v < 0.45 || v > 0.55 {
		t.Errorf("mid-gray PNG sampled to %v, want close to 0.5", v)
	}
}

func TestLoadGrayscaleBitmapMissingFileErrors(t *testing.T) {
	if _, err := LoadGrayscaleBitmap(filepath.Join(t.TempDir(), "missing.png"), 8, 8); err == nil {
		t.Error("expected an error loading a nonexistent bitmap")
	}
}

func TestApertureImageUsesFileInPlaceOfShape(t *testing.T) {
	path := writeTestPNG(t, 8, 8, 255)
	a := project.Aperture{File: path, Shape: project.Shape{Size: 0.1, Blades: 6, Softness: 0.01}}
	m := ApertureImage(a, 16, 16, 0, flare.Vec2{}, rand.New(rand.NewSource(1)))

	v := m.At(0, 0)
	if v < 0.9 {
		t.Errorf("corner of an all-white bitmap aperture = %v, want close to 1 (shape geometry should not apply)", v)
	}
}
