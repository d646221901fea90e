package tasks

import (
	"testing"

	"github.com/flarekit/flare"
	"github.com/flarekit/flare/lens"
)

func TestAssemblePrimitiveBoundsCoverCorners(t *testing.T) {
	corners := [4]Ray{
		{Pos: flare.V3(-1, -1, 0), Reflectance: 1},
		{Pos: flare.V3(1, -1, 0), Reflectance: 1},
		{Pos: flare.V3(1, 1, 0), Reflectance: 1},
		{Pos: flare.V3(-1, 1, 0), Reflectance: 1},
	}
	cfg := RasterConfig{Width: 64, Height: 64, Fstop: 8, AntiAliasing: 1}
	prim := AssemblePrimitive(corners, []float64{550}, cfg)

	if prim.Bounds.MinX >= prim.Bounds.MaxX || prim.Bounds.MinY >= prim.Bounds.MaxY {
		t.Errorf("degenerate bounds for a unit quad: %+v", prim.Bounds)
	}
}

func TestAssemblePrimitiveZeroesWhenAnyVertexRrelExceedsOne(t *testing.T) {
	corners := [4]Ray{
		{Pos: flare.V3(-1, -1, 0), Reflectance: 1, Rrel: 0.5},
		{Pos: flare.V3(1, -1, 0), Reflectance: 1, Rrel: 1.2},
		{Pos: flare.V3(1, 1, 0), Reflectance: 1, Rrel: 0.3},
		{Pos: flare.V3(-1, 1, 0), Reflectance: 1, Rrel: 0.1},
	}
	cfg := RasterConfig{Width: 64, Height: 64, Fstop: 8, AntiAliasing: 1}
	prim := AssemblePrimitive(corners, []float64{550}, cfg)

	if prim.Reflectance != 0 {
		t.Errorf("expected zero reflectance when a corner exceeds rrel=1, got %v", prim.Reflectance)
	}
	for _, v := range prim.Intensity {
		if v != 0 {
			t.Errorf("expected all intensity slots zeroed, got %v", v)
		}
	}
}

func TestAaOffsetsCounts(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8} {
		offsets := aaOffsets(n)
		if len(offsets) != n {
			t.Errorf("aaOffsets(%d) returned %d offsets", n, len(offsets))
		}
	}
}

func TestRasterizePrimitiveDepositsEnergyInsideQuad(t *testing.T) {
	img := flare.NewFloatImage(32, 32)
	corners := [4]Ray{
		{Pos: flare.V3(-0.2, -0.2, 0), Reflectance: 1},
		{Pos: flare.V3(0.2, -0.2, 0), Reflectance: 1},
		{Pos: flare.V3(0.2, 0.2, 0), Reflectance: 1},
		{Pos: flare.V3(-0.2, 0.2, 0), Reflectance: 1},
	}
	cfg := RasterConfig{Width: 32, Height: 32, Fstop: 8, AntiAliasing: 4}
	prim := AssemblePrimitive(corners, []float64{550}, cfg)
	RasterizePrimitive(img, prim, []float64{550}, cfg)

	cx := int((prim.Bounds.MinX + prim.Bounds.MaxX) / 2)
	cy := int((prim.Bounds.MinY + prim.Bounds.MaxY) / 2)
	r, g, b := img.At(cx, cy)
	if r == 0 && g == 0 && b == 0 {
		t.Error("expected nonzero energy deposited at the quad's center")
	}
}

func TestRasterizePrimitiveSkipsZeroReflectance(t *testing.T) {
	img := flare.NewFloatImage(16, 16)
	corners := [4]Ray{
		{Pos: flare.V3(-1, -1, 0), Rrel: 2},
		{Pos: flare.V3(1, -1, 0), Rrel: 2},
		{Pos: flare.V3(1, 1, 0), Rrel: 2},
		{Pos: flare.V3(-1, 1, 0), Rrel: 2},
	}
	cfg := RasterConfig{Width: 16, Height: 16, Fstop: 8, AntiAliasing: 1}
	prim := AssemblePrimitive(corners, []float64{550}, cfg)
	RasterizePrimitive(img, prim, []float64{550}, cfg)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			r, g, b := img.At(x, y)
			if r != 0 || g != 0 || b != 0 {
				t.Fatalf("expected no energy from a culled (rrel>1) primitive at (%d,%d)", x, y)
			}
		}
	}
}

func TestRasterizeGhostDepositsSomeEnergy(t *testing.T) {
	img := flare.NewFloatImage(64, 64)
	elements := simpleElements()
	cfg := RasterConfig{Width: 64, Height: 64, Fstop: 8, AntiAliasing: 1}
	RasterizeGhost(img, elements, lens.PassThrough, []float64{550, 600}, 5, 10, cfg)

	var total float32
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			r, g, b := img.At(x, y)
			total += r + g + b
		}
	}
	if total <= 0 {
		t.Error("expected RasterizeGhost to deposit some positive energy")
	}
}

func TestExpandWavelengthsInsertsSamples(t *testing.T) {
	got := expandWavelengths([]float64{500, 560}, 2)
	want := []float64{500, 520, 540, 560}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if absF(got[i]-want[i]) > 1e-9 {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExpandWavelengthsNoopBelowTwoWavelengths(t *testing.T) {
	got := expandWavelengths([]float64{550}, 4)
	if len(got) != 1 || got[0] != 550 {
		t.Errorf("expandWavelengths with one wavelength should be unchanged, got %v", got)
	}
}

func TestRasterizeGhostSubWavelengthsPreservesTotalEnergyOrder(t *testing.T) {
	elements := simpleElements()
	cfg := RasterConfig{Width: 64, Height: 64, Fstop: 8, AntiAliasing: 1}

	imgBase := flare.NewFloatImage(64, 64)
	RasterizeGhost(imgBase, elements, lens.PassThrough, []float64{500, 600}, 5, 10, cfg)

	cfgSub := cfg
	cfgSub.SubWavelengths = 3
	imgSub := flare.NewFloatImage(64, 64)
	RasterizeGhost(imgSub, elements, lens.PassThrough, []float64{500, 600}, 5, 10, cfgSub)

	var totalBase, totalSub float32
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			r, g, b := imgBase.At(x, y)
			totalBase += r + g + b
			r, g, b = imgSub.At(x, y)
			totalSub += r + g + b
		}
	}
	if totalSub <= 0 {
		t.Fatal("expected sub-sampled raster to deposit positive energy")
	}
	ratio := float64(totalSub) / float64(totalBase)
	if ratio < 0.5 || ratio > 2 {
		t.Errorf("sub-sampling should keep total energy in the same order of magnitude, got ratio %v (base=%v sub=%v)", ratio, totalBase, totalSub)
	}
}

func TestAssemblePrimitiveSingleWavelengthIntensity(t *testing.T) {
	corners := [4]Ray{
		{Pos: flare.V3(-1, -1, 0), Reflectance: 0.5},
		{Pos: flare.V3(1, -1, 0), Reflectance: 0.5},
		{Pos: flare.V3(1, 1, 0), Reflectance: 0.5},
		{Pos: flare.V3(-1, 1, 0), Reflectance: 0.5},
	}
	cfg := RasterConfig{Width: 64, Height: 64, Fstop: 8, AntiAliasing: 1}
	prim := AssemblePrimitive(corners, []float64{550}, cfg)
	want := 0.5 / 8
	if absF(prim.Intensity[0]-want) > 1e-9 {
		t.Errorf("prim.Intensity[0] = %v, want %v", prim.Intensity[0], want)
	}
}
