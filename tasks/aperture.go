package tasks

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"math/rand"
	"os"

	"golang.org/x/image/draw"

	"github.com/flarekit/flare"
	"github.com/flarekit/flare/compute"
	"github.com/flarekit/flare/project"
)

const apertureWGSL = `
// Procedural aperture mask: shape, grating, scratches, dust, and an
// optional image overlay, additively composed into a single-channel
// read-write image.
@group(0) @binding(0) var<storage, read_write> mask: array<f32>;
@compute @workgroup_size(8, 8, 1)
fn aperture_shape(@builtin(global_invocation_id) id: vec3<u32>) {
}
`

// ApertureKernel registers the aperture-synthesis kernel against ctx.
func ApertureKernel(ctx *compute.ComputeContext) error {
	return ctx.RegisterKernel(&compute.Kernel{
		Name:       "aperture",
		EntryPoint: "aperture_shape",
		WGSL:       apertureWGSL,
		HostMirror: func(compute.KernelArgs) error { return nil },
	})
}

// ApertureImage produces the mask for an Aperture spec at the given
// resolution. If a.File names a bitmap, it is loaded and resized in
// place of the procedural shape (but the grating/scratches/dust overlays
// still apply on top, and a.Image can additionally blend in a second
// overlay image), matching a real aperture photograph standing in for
// the blade-polygon model. parallax offsets the scratches/dust sample
// coordinates by lightPos*parallax. rng drives the scratches/dust
// pseudorandom fields; the engine seeds it with a fixed value, so repeated
// renders of the same project reproduce the same dust and scratch
// placement.
func ApertureImage(a project.Aperture, width, height int, parallax float64, lightPos flare.Vec2, rng *rand.Rand) *Mask {
	center := flare.V2(float64(width)/2, float64(height)/2)
	scale := math.Min(float64(width), float64(height)) / 2

	var m *Mask
	if a.File != "" {
		if loaded, err := LoadGrayscaleBitmap(a.File, width, height); err == nil {
			m = loaded
		}
	}
	if m == nil {
		m = NewMask(width, height)
		shapePolygon(m, a.Shape, center, scale)
	}

	if a.Grating.Strength > 0 {
		grating(m, a.Grating, center, scale)
	}
	if a.Scratches.Strength > 0 {
		scratches(m, a.Scratches, center, scale, lightPos.Mul(parallax), rng)
	}
	if a.Dust.Strength > 0 {
		dust(m, a.Dust, center, scale, lightPos.Mul(parallax), rng)
	}
	if a.Image.Strength > 0 && a.Image.File != "" {
		if overlay, err := LoadGrayscaleBitmap(a.Image.File, width, height); err == nil {
			WithOverlay(m, overlay, a.Image)
		}
	}
	return m
}

// LoadGrayscaleBitmap decodes an image file (PNG or JPEG) to grayscale and
// resizes it to width x height with a bilinear filter, returning a Mask
// whose values are the source image's luminance normalized to [0, 1].
// This is how a photographed aperture shape or an image overlay enters
// the render in place of, or alongside, the procedural mask.
func LoadGrayscaleBitmap(path string, width, height int) (*Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load bitmap %q: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load bitmap %q: %w", path, err)
	}

	resized := image.NewGray(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(resized, resized.Bounds(), src, src.Bounds(), draw.Src, nil)

	m := NewMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.Set(x, y, float64(resized.GrayAt(x, y).Y)/255)
		}
	}
	return m, nil
}

// shapePolygon rasterizes a smooth n-blade polygon: radius modulated by
// roundness and blade count, with a soft edge falloff of half-width
// softness (in normalized aperture-radius units).
func shapePolygon(m *Mask, s project.Shape, center flare.Vec2, scale float64) {
	blades := s.Blades
	if blades < 3 {
		blades = 3
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := flare.V2(float64(x)+0.5, float64(y)+0.5).Sub(center).Div(scale)
			theta := p.Atan2() + s.Rotation
			r := p.Length()

			// blade envelope: radius varies with angle, rounded outward by
			// Roundness, producing a smooth polygon rather than a sharp star.
			bladeAngle := math.Mod(theta*float64(blades)/(2*math.Pi), 1)
			if bladeAngle < 0 {
				bladeAngle++
			}
			edge := s.Size * (1 - s.Roundness*math.Cos(2*math.Pi*bladeAngle))

			half := s.Softness
			if half <= 0 {
				half = 1e-6
			}
			v := smoothstep(edge+half, edge-half, r)
			m.Set(x, y, v)
		}
	}
}

// grating adds radial bands around the polygon edge.
func grating(m *Mask, g project.Grating, center flare.Vec2, scale float64) {
	density := g.Density
	if density <= 0 {
		density = 1
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := flare.V2(float64(x)+0.5, float64(y)+0.5).Sub(center).Div(scale)
			r := p.Length()
			band := math.Mod(r*density, 1)
			half := g.Width / 2
			if half <= 0 {
				half = 1e-6
			}
			v := g.Strength * rectPulse(band, 0.5, half, g.Softness)
			m.Add(x, y, v)
		}
	}
}

// scratches draws a pseudorandom field of thin line segments.
func scratches(m *Mask, s project.Scratches, center flare.Vec2, scale float64, parallax flare.Vec2, rng *rand.Rand) {
	n := int(s.Density * 200)
	for i := 0; i < n; i++ {
		cx := rng.Float64()*2 - 1 + parallax.X
		cy := rng.Float64()*2 - 1 + parallax.Y
		angle := s.Rotation + (rng.Float64()*2-1)*s.RotationVariance
		length := s.Length * (0.5 + 0.5*rng.Float64())
		drawSegment(m, center, scale, flare.V2(cx, cy), angle, length, s.Width, s.Softness, s.Strength)
	}
}

// dust draws a pseudorandom field of small soft disks.
func dust(m *Mask, d project.Dust, center flare.Vec2, scale float64, parallax flare.Vec2, rng *rand.Rand) {
	n := int(d.Density * 500)
	for i := 0; i < n; i++ {
		cx := rng.Float64()*2 - 1 + parallax.X
		cy := rng.Float64()*2 - 1 + parallax.Y
		drawDisk(m, center, scale, flare.V2(cx, cy), d.Radius, d.Softness, d.Strength)
	}
}

// WithOverlay composites a pre-decoded single-channel image (already
// wrapped as a Mask of any resolution) onto dst, scaled by size and
// thresholded per-load. Decoding the overlay file is the caller's job;
// this stays a pure, side-effect-free compositor.
func WithOverlay(dst *Mask, overlay *Mask, cfg project.ImageOverlay) {
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			u := (float64(x) + 0.5) / float64(dst.Width) / cfg.Size
			v := (float64(y) + 0.5) / float64(dst.Height) / cfg.Size
			if u < 0 || u > 1 || v < 0 || v > 1 {
				continue
			}
			sample := overlay.BilinearAt(u, v)
			if sample < cfg.Threshold {
				sample = 0
			}
			dst.Add(x, y, cfg.Strength*sample)
		}
	}
}
