package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/flarekit/flare"
	"github.com/flarekit/flare/lens"
	"github.com/flarekit/flare/project"
	"github.com/flarekit/flare/spectrum"
	"github.com/flarekit/flare/tasks"
)

// Result is the engine's output for one completed or terminated render.
type Result struct {
	Generation uint64
	State      State
	Images     map[project.ElementType]*flare.FloatImage
	Err        error
}

// wavelengths returns count values evenly spaced across the visible
// spectrum, collapsing to a single value at LambdaMid if count <= 1.
func wavelengths(count int) []float64 {
	if count <= 1 {
		return []float64{spectrum.LambdaMid}
	}
	out := make([]float64, count)
	step := (spectrum.LambdaMax - spectrum.LambdaMin) / float64(count-1)
	for i := 0; i < count; i++ {
		out[i] = spectrum.LambdaMin + float64(i)*step
	}
	return out
}

// renderProject computes every element requested by proj.Elements,
// checking ctx for cancellation between ghost paths so a superseded
// render can stop promptly rather than running to completion.
func (e *Engine) renderProject(ctx context.Context, proj project.Project) Result {
	images := make(map[project.ElementType]*flare.FloatImage)

	model, elements, err := e.loadLens(proj.Flare.Lens)
	if err != nil {
		return Result{State: Failed, Err: err}
	}

	res := proj.Render.Quality.Resolution
	width, height := int(res.W), int(res.H)
	if width <= 0 || height <= 0 {
		width, height = 512, 512
	}

	wl := wavelengths(proj.Render.Quality.WavelengthCount)
	rasterCfg := tasks.RasterConfig{
		Width:        width,
		Height:       height,
		Fstop:        proj.Flare.Ghost.Fstop,
		AntiAliasing: proj.Render.Quality.AntiAliasing,
	}
	if rasterCfg.AntiAliasing == 0 {
		rasterCfg.AntiAliasing = 1
	}
	if proj.Render.Quality.WavelengthCount > 1 {
		rasterCfg.SubWavelengths = proj.Render.Quality.WavelengthSubCount
	}

	gridCount := proj.Render.Quality.GridCount
	if gridCount < 2 {
		gridCount = 2
	}
	gridLength := proj.Render.Quality.GridLength
	if gridLength == 0 {
		gridLength = 50
	}

	samples := e.lightSamples(proj)

	for _, el := range proj.Elements {
		select {
		case <-ctx.Done():
			return Result{State: Cancelled, Err: flare.ErrCancelled}
		default:
		}

		switch el {
		case project.GhostAperture:
			images[el] = e.renderApertureDebug(proj.Flare.Ghost.Aperture, proj.Flare.Light.Position, width, height)
		case project.StarburstAperture:
			images[el] = e.renderApertureDebug(proj.Flare.Starburst.Aperture, proj.Flare.Light.Position, width, height)
		case project.GhostElement:
			if proj.Render.DisableGhosts {
				continue
			}
			img, err := e.renderGhostsSampled(ctx, model, elements, proj, wl, gridCount, gridLength, rasterCfg, samples)
			if err != nil {
				if errors.Is(err, flare.ErrCancelled) {
					return Result{State: Cancelled, Err: err}
				}
				return Result{State: Failed, Err: err}
			}
			images[el] = img
		case project.StarburstElement:
			if proj.Render.DisableStarburst {
				continue
			}
			images[el] = e.renderStarburstSampled(proj, samples)
		case project.FlareElement:
			img, err := e.renderGhostsSampled(ctx, model, elements, proj, wl, gridCount, gridLength, rasterCfg, samples)
			if err != nil {
				if errors.Is(err, flare.ErrCancelled) {
					return Result{State: Cancelled, Err: err}
				}
				return Result{State: Failed, Err: err}
			}
			if !proj.Render.DisableStarburst {
				addResampled(img, e.renderStarburstSampled(proj, samples))
			}
			images[el] = img
		case project.FlareStarburst:
			images[el] = e.renderStarburstSampled(proj, samples)
		case project.DiagramElement:
			// Diagram rendering produces a vector polyline set, not a
			// raster accumulation; callers interested in the diagram use
			// RenderDiagram directly rather than through Images.
		}
	}

	return Result{State: Completed, Images: images}
}

// lightSamples resolves proj's light source into one or more point-light
// stand-ins. With no extended image configured, the light is a single
// point at Light.Position with full weight. Light.ImagePath names an
// extended source (e.g. a window or the sky) reproduced as a weighted
// bundle of point lights: SampleLightImage thresholds the decoded image
// into a resPerEdge x resPerEdge grid of candidate positions, each
// standing in for the luminance of its cell.
func (e *Engine) lightSamples(proj project.Project) []tasks.LightSample {
	light := proj.Flare.Light
	point := []tasks.LightSample{{Position: flare.V2(light.Position.X, light.Position.Y), Weight: 1}}
	if light.ImagePath == "" {
		return point
	}

	resPerEdge := light.ImageSampleRes
	if resPerEdge <= 0 {
		resPerEdge = 8
	}

	mask, err := tasks.LoadGrayscaleBitmap(light.ImagePath, resPerEdge*4, resPerEdge*4)
	if err != nil {
		return point
	}

	const extendedLightThreshold = 0.05
	samples := tasks.SampleLightImage(mask, resPerEdge, extendedLightThreshold)
	if len(samples) == 0 {
		return point
	}
	return samples
}

type loadedLens struct {
	model    lens.Model
	elements []lens.Element
}

// loadLens loads the lens prescription named by cfg, appending the
// sensor's synthetic terminal element, memoized by the engine's
// lensCache so repeated renders of the same lens configuration (the
// common case: only the light or film parameters usually change between
// submissions) skip re-reading and re-parsing the prescription file.
func (e *Engine) loadLens(cfg project.Lens) (lens.Model, []lens.Element, error) {
	b := flare.NewFingerprintBuilder()
	cfg.Write(b)
	key := b.Sum()

	v, err := e.lensCache.GetOrBuild(key, func() (any, error) {
		model, err := lens.LoadModel(cfg.PrescriptionPath)
		if err != nil {
			return nil, err
		}
		model = model.WithSensor(cfg.SensorSize.W, cfg.SensorSize.H, 0)
		return loadedLens{model: model, elements: model.Elements}, nil
	})
	if err != nil {
		return lens.Model{}, nil, err
	}

	loaded := v.(loadedLens)
	return loaded.model, loaded.elements, nil
}

// renderApertureDebug synthesizes a standalone aperture mask image for
// GHOST_APERTURE/STARBURST_APERTURE debug elements.
func (e *Engine) renderApertureDebug(ap project.Aperture, lightPos project.Point2, width, height int) *flare.FloatImage {
	rng := rand.New(rand.NewSource(1))
	mask := tasks.ApertureImage(ap, width, height, 1, flare.V2(lightPos.X, lightPos.Y), rng)

	img := flare.NewFloatImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := float32(mask.At(x, y))
			img.Accumulate(x, y, v, v, v)
		}
	}
	return img
}

// renderGhosts rasterizes every surviving ghost path into one
// accumulation image, dispatched across the engine's worker pool, for a
// light entering from lightNDC.
func (e *Engine) renderGhosts(ctx context.Context, model lens.Model, elements []lens.Element, proj project.Project, wl []float64, gridCount int, gridLength float64, cfg tasks.RasterConfig, lightNDC flare.Vec2) (*flare.FloatImage, error) {
	cfg.LightNDC = lightNDC
	cfg.FocalLength = model.FocalLength
	cfg.SensorHalfW = proj.Flare.Lens.SensorSize.W / 2
	cfg.SensorHalfH = proj.Flare.Lens.SensorSize.H / 2
	if cfg.SensorHalfH != 0 {
		cfg.Aspect = cfg.SensorHalfW / cfg.SensorHalfH
	}
	if cfg.Aspect == 0 {
		cfg.Aspect = 1
	}

	allPaths := lens.AllPaths(len(elements), model.ApertureIndex)

	cullWavelength := wl[len(wl)/2]
	surviving := tasks.PreprocessPaths(elements, allPaths, cullWavelength, 3, gridLength*0.01, proj.Render.Quality.CullPercentage)

	img := flare.NewFloatImage(cfg.Width, cfg.Height)
	if len(surviving) == 0 {
		return img, nil
	}

	partials := make([]*flare.FloatImage, len(surviving))
	work := make([]func(), len(surviving))
	for i, p := range surviving {
		i, p := i, p
		work[i] = func() {
			select {
			case <-ctx.Done():
				return
			default:
			}
			partial := flare.NewFloatImage(cfg.Width, cfg.Height)
			tasks.RasterizeGhost(partial, elements, p, wl, gridCount, gridLength, cfg)
			partials[i] = partial
		}
	}
	e.pool.ExecuteAll(work)

	select {
	case <-ctx.Done():
		return nil, flare.ErrCancelled
	default:
	}

	for _, partial := range partials {
		if partial != nil {
			img.Add(partial)
		}
	}
	return img, nil
}

// renderGhostsSampled renders the ghost accumulation once per light
// sample and sums the weighted results: an extended light source
// becomes a sum of point-source renders, a plain point light is just
// the one full-weight sample.
func (e *Engine) renderGhostsSampled(ctx context.Context, model lens.Model, elements []lens.Element, proj project.Project, wl []float64, gridCount int, gridLength float64, cfg tasks.RasterConfig, samples []tasks.LightSample) (*flare.FloatImage, error) {
	img := flare.NewFloatImage(cfg.Width, cfg.Height)
	for _, s := range samples {
		partial, err := e.renderGhosts(ctx, model, elements, proj, wl, gridCount, gridLength, cfg, s.Position)
		if err != nil {
			return nil, err
		}
		partial.Scale(float32(s.Weight))
		img.Add(partial)
	}
	return img, nil
}

// renderStarburst computes the diffraction starburst image for proj's
// starburst aperture, at the angle between lightNDC and the optical axis.
func (e *Engine) renderStarburst(proj project.Project, lightNDC flare.Vec2) *flare.FloatImage {
	sb := proj.Flare.Starburst
	resolution := int(proj.Render.Quality.Starburst.Resolution.W)
	if resolution <= 0 {
		resolution = 256
	}

	rng := rand.New(rand.NewSource(2))
	aperture := tasks.ApertureImage(sb.Aperture, resolution, resolution, 1, flare.V2(0, 0), rng)

	angle := lightNDC.Atan2()

	mask := tasks.StarburstImage(sb, aperture, resolution, angle)

	img := flare.NewFloatImage(resolution, resolution)
	for y := 0; y < resolution; y++ {
		for x := 0; x < resolution; x++ {
			v := float32(mask.At(x, y))
			img.Accumulate(x, y, v, v, v)
		}
	}
	return img
}

// renderStarburstSampled renders the starburst once per light sample and
// sums the weighted results, mirroring renderGhostsSampled.
func (e *Engine) renderStarburstSampled(proj project.Project, samples []tasks.LightSample) *flare.FloatImage {
	resolution := int(proj.Render.Quality.Starburst.Resolution.W)
	if resolution <= 0 {
		resolution = 256
	}
	img := flare.NewFloatImage(resolution, resolution)
	for _, s := range samples {
		partial := e.renderStarburst(proj, s.Position)
		partial.Scale(float32(s.Weight))
		img.Add(partial)
	}
	return img
}

// addResampled nearest-neighbor resamples src into dst's dimensions and
// accumulates it, used to composite the starburst (rendered at its own
// resolution) into the main flare accumulation buffer.
func addResampled(dst, src *flare.FloatImage) {
	dw, dh := dst.Width(), dst.Height()
	sw, sh := src.Width(), src.Height()
	if sw == 0 || sh == 0 {
		return
	}

	for y := 0; y < dh; y++ {
		sy := y * sh / dh
		for x := 0; x < dw; x++ {
			sx := x * sw / dw
			r, g, b := src.At(sx, sy)
			dst.Accumulate(x, y, r, g, b)
		}
	}
}

// RenderDiagram traces a cross-section ray fan for a project's DIAGRAM
// element and returns the per-ray polylines plus the element barrel
// profiles, independent of the raster Images map since a diagram is
// vector, not accumulated radiance.
func (e *Engine) RenderDiagram(proj project.Project) ([]tasks.DiagramRay, []tasks.ElementProfile, error) {
	model, elements, err := e.loadLens(proj.Flare.Lens)
	if err != nil {
		return nil, nil, fmt.Errorf("render diagram: %w", err)
	}

	diag := proj.Diagram
	gridCount := diag.GridCount
	if gridCount < 1 {
		gridCount = 8
	}
	gridLength := diag.GridLength
	if gridLength == 0 {
		gridLength = 50
	}

	path := lens.PassThrough
	if diag.DebugGhost >= 0 {
		all := lens.AllPaths(len(elements), model.ApertureIndex)
		if diag.DebugGhost < len(all) {
			path = all[diag.DebugGhost]
		}
	}

	cfg := tasks.TraceConfig{FocalLength: model.FocalLength, WavelengthNM: spectrum.LambdaMid, Path: path}
	fan := tasks.TraceDiagramFan(elements, cfg, gridCount, gridLength/2)

	z := 0.0
	profiles := make([]tasks.ElementProfile, len(elements))
	for i, el := range elements {
		z += el.Distance
		profiles[i] = tasks.ProfileElement(el, z, 32)
	}

	return fan, profiles, nil
}
