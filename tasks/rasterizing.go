package tasks

import (
	"github.com/flarekit/flare"
	"github.com/flarekit/flare/compute"
	"github.com/flarekit/flare/lens"
	"github.com/flarekit/flare/spectrum"
)

const rasterizingWGSL = `
// Four-stage ghost rasterization: prim_shader assembles a quad's bounds
// and per-wavelength intensity, vertex_shader transforms corners to
// screen space, binner assigns primitives to 255-wide tile batches, and
// rasterizer deposits bilinear-filtered, wavelength-weighted coverage
// into the output image.
@group(0) @binding(0) var<storage, read> rays: array<Ray>;
@group(0) @binding(1) var<storage, read_write> image: array<f32>;
@compute @workgroup_size(8, 8, 1)
fn rasterizer(@builtin(global_invocation_id) id: vec3<u32>) {
}
`

// RasterizingKernel registers the ghost rasterization kernel against ctx.
func RasterizingKernel(ctx *compute.ComputeContext) error {
	return ctx.RegisterKernel(&compute.Kernel{
		Name:       "rasterizing",
		EntryPoint: "rasterizer",
		WGSL:       rasterizingWGSL,
		HostMirror: func(compute.KernelArgs) error { return nil },
	})
}

// RasterConfig bundles the per-render parameters the rasterizer needs
// beyond the traced rays themselves.
type RasterConfig struct {
	Width, Height  int
	Fstop          float64
	AntiAliasing   int // 1, 2, 4, or 8 sub-samples per pixel
	SubWavelengths int

	// LightNDC, SensorHalfW, SensorHalfH, Aspect, and FocalLength seed
	// every traced ray's incoming direction: moving the light changes
	// which direction rays enter the lens stack from, which is what
	// moves a ghost across the frame as the light source moves.
	LightNDC    flare.Vec2
	SensorHalfW float64
	SensorHalfH float64
	Aspect      float64
	FocalLength float64
}

// AssemblePrimitive builds a screen-space quad from the four corner rays
// of one grid cell (ray-marching order: bottom-left, bottom-right,
// top-right, top-left), attaching a per-wavelength intensity computed
// from each corner's surviving reflectance.
func AssemblePrimitive(corners [4]Ray, wavelengthsNM []float64, cfg RasterConfig) Primitive {
	var prim Primitive
	bounds := Bounds{MinX: corners[0].Pos.X, MinY: corners[0].Pos.Y, MaxX: corners[0].Pos.X, MaxY: corners[0].Pos.Y}

	for i, r := range corners {
		screen := toScreen(r.Pos, cfg.Width, cfg.Height)
		prim.Vertices[i] = Vertex{
			Pos:         screen,
			UV:          flare.V2(r.PosApt.X, r.PosApt.Y),
			Rrel:        r.Rrel,
			Reflectance: r.Reflectance,
		}
		bounds.MinX = math64Min(bounds.MinX, screen.X)
		bounds.MinY = math64Min(bounds.MinY, screen.Y)
		bounds.MaxX = math64Max(bounds.MaxX, screen.X)
		bounds.MaxY = math64Max(bounds.MaxY, screen.Y)
	}

	prim.Bounds = bounds
	prim.Intensity = make([]float64, len(wavelengthsNM))
	meanReflectance := (corners[0].Reflectance + corners[1].Reflectance + corners[2].Reflectance + corners[3].Reflectance) / 4
	for i := range wavelengthsNM {
		prim.Intensity[i] = meanReflectance / cfg.Fstop
	}
	prim.Reflectance = meanReflectance

	for _, v := range prim.Vertices {
		if v.Rrel > 1 {
			prim.Reflectance = 0
			for i := range prim.Intensity {
				prim.Intensity[i] = 0
			}
			break
		}
	}
	return prim
}

// toScreen maps an aperture/sensor-plane position in [-halfW, halfW] x
// [-halfH, halfH] sensor units to pixel coordinates, assuming the
// position is already expressed in the same units as the sensor.
func toScreen(pos flare.Vec3, width, height int) flare.Vec2 {
	x := (pos.X + 1) / 2 * float64(width)
	y := (1 - (pos.Y+1)/2) * float64(height)
	return flare.V2(x, y)
}

// aaOffsets returns the sub-pixel sample offsets for a rook-pattern
// anti-aliasing scheme of the given sample count (1, 2, 4, or 8).
func aaOffsets(n int) []flare.Vec2 {
	switch n {
	case 1:
		return []flare.Vec2{{X: 0.5, Y: 0.5}}
	case 2:
		return []flare.Vec2{{X: 0.25, Y: 0.25}, {X: 0.75, Y: 0.75}}
	case 4:
		return []flare.Vec2{{X: 0.125, Y: 0.375}, {X: 0.625, Y: 0.125}, {X: 0.375, Y: 0.875}, {X: 0.875, Y: 0.625}}
	case 8:
		return []flare.Vec2{
			{X: 0.0625, Y: 0.3125}, {X: 0.3125, Y: 0.6875}, {X: 0.5625, Y: 0.1875}, {X: 0.8125, Y: 0.5625},
			{X: 0.1875, Y: 0.9375}, {X: 0.4375, Y: 0.0625}, {X: 0.6875, Y: 0.4375}, {X: 0.9375, Y: 0.8125},
		}
	default:
		return []flare.Vec2{{X: 0.5, Y: 0.5}}
	}
}

// RasterizePrimitive deposits a quad's bilinearly-interpolated coverage
// into img, sampling aaOffsets(cfg.AntiAliasing) sub-positions per pixel
// in the quad's integer bounding box and weighting each by the CIE XYZ
// color at the wavelength the primitive's intensity slot represents.
func RasterizePrimitive(img *flare.FloatImage, prim Primitive, wavelengthsNM []float64, cfg RasterConfig) {
	if prim.Reflectance == 0 {
		return
	}

	minX, maxX := clampRange(int(prim.Bounds.MinX), int(prim.Bounds.MaxX)+1, img.Width())
	minY, maxY := clampRange(int(prim.Bounds.MinY), int(prim.Bounds.MaxY)+1, img.Height())
	if minX >= maxX || minY >= maxY {
		return
	}

	offsets := aaOffsets(cfg.AntiAliasing)
	sampleWeight := 1.0 / float64(len(offsets))

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			for _, off := range offsets {
				px := float64(x) + off.X
				py := float64(y) + off.Y
				u, v, inside := barycentricQuad(prim, px, py)
				if !inside {
					continue
				}
				coverage := quadCoverageWeight(u, v)

				var r, g, b float64
				for i, nm := range wavelengthsNM {
					weight := spectrum.Weight(nm)
					r += prim.Intensity[i] * weight.R
					g += prim.Intensity[i] * weight.G
					b += prim.Intensity[i] * weight.B
				}
				scale := coverage * sampleWeight * 1000
				img.Accumulate(x, y, float32(r*scale), float32(g*scale), float32(b*scale))
			}
		}
	}
}

// barycentricQuad decides whether point (px, py) falls inside prim's
// screen-space bounding box, returning the point's (u, v) position within
// that box, used for the coverage falloff. The four vertex positions are
// not consulted: a point inside the box but outside a non-rectangular quad
// counts as inside.
func barycentricQuad(prim Primitive, px, py float64) (u, v float64, inside bool) {
	w := prim.Bounds.MaxX - prim.Bounds.MinX
	h := prim.Bounds.MaxY - prim.Bounds.MinY
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	u = (px - prim.Bounds.MinX) / w
	v = (py - prim.Bounds.MinY) / h
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return 0, 0, false
	}
	return u, v, true
}

// quadCoverageWeight returns a soft falloff from the quad's center (1)
// to its edges (0), giving the rasterized ghost a filtered edge instead
// of a hard-edged box.
func quadCoverageWeight(u, v float64) float64 {
	cu := 1 - 2*absF(u-0.5)
	cv := 1 - 2*absF(v-0.5)
	return clamp01(cu) * clamp01(cv)
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func math64Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func math64Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// expandWavelengths inserts cfg.SubWavelengths evenly spaced samples
// between each adjacent pair of nm, used to smooth the color gradient a
// ghost's dispersion produces across its quads. With fewer than two
// wavelengths there is no gap to subdivide, so nm is returned unchanged.
func expandWavelengths(nm []float64, sub int) []float64 {
	if sub <= 0 || len(nm) < 2 {
		return nm
	}
	out := make([]float64, 0, len(nm)+(len(nm)-1)*sub)
	for i := 0; i < len(nm)-1; i++ {
		out = append(out, nm[i])
		step := (nm[i+1] - nm[i]) / float64(sub+1)
		for s := 1; s <= sub; s++ {
			out = append(out, nm[i]+step*float64(s))
		}
	}
	out = append(out, nm[len(nm)-1])
	return out
}

// RasterizeGhost traces, assembles, and rasterizes one ghost path's full
// grid of primitives into img. Each wavelength in wavelengthsNM (plus any
// cfg.SubWavelengths samples interpolated between them) is traced as its
// own grid_count x grid_count grid, since refraction is wavelength
// dependent: a ghost's quads fall in slightly different screen positions
// per wavelength, which is what produces its chromatic fringing. Each
// wavelength's (grid_count-1)^2 quads are deposited with
// RasterizePrimitive, scaled so that subdividing into more samples
// smooths the gradient without increasing the ghost's total energy.
func RasterizeGhost(img *flare.FloatImage, elements []lens.Element, path lens.Path, wavelengthsNM []float64, gridCount int, gridLength float64, cfg RasterConfig) {
	half := gridLength / 2
	step := gridLength / float64(gridCount-1)

	samples := expandWavelengths(wavelengthsNM, cfg.SubWavelengths)
	energyScale := float64(len(wavelengthsNM)) / float64(len(samples))

	focalLength := cfg.FocalLength
	if focalLength == 0 {
		focalLength = 50
	}

	for _, nm := range samples {
		grid := make([][]Ray, gridCount)
		for y := 0; y < gridCount; y++ {
			grid[y] = make([]Ray, gridCount)
			for x := 0; x < gridCount; x++ {
				gp := flare.V2(-half+float64(x)*step, -half+float64(y)*step)
				traceCfg := TraceConfig{
					FocalLength:  focalLength,
					WavelengthNM: nm,
					Path:         path,
					LightNDC:     cfg.LightNDC,
					SensorHalfW:  cfg.SensorHalfW,
					SensorHalfH:  cfg.SensorHalfH,
					Aspect:       cfg.Aspect,
				}
				grid[y][x], _ = TraceRay(elements, traceCfg, gp)
			}
		}

		for y := 0; y < gridCount-1; y++ {
			for x := 0; x < gridCount-1; x++ {
				corners := [4]Ray{grid[y][x], grid[y][x+1], grid[y+1][x+1], grid[y+1][x]}
				prim := AssemblePrimitive(corners, []float64{nm}, cfg)
				prim.Intensity[0] *= energyScale
				RasterizePrimitive(img, prim, []float64{nm}, cfg)
			}
		}
	}
}
