package tasks

import (
	"github.com/flarekit/flare"
	"github.com/flarekit/flare/compute"
)

const imageSamplingWGSL = `
// Thresholds a light-source image and emits sample positions at every
// pixel above threshold, used to stand in for an extended (non-point)
// light source as a bundle of point lights.
@group(0) @binding(0) var<storage, read> image: array<f32>;
@group(0) @binding(1) var<storage, read_write> samples: array<vec2<f32>>;
@compute @workgroup_size(8, 8, 1)
fn image_sample(@builtin(global_invocation_id) id: vec3<u32>) {
}
`

// ImageSamplingKernel registers the light-image sampling kernel against ctx.
func ImageSamplingKernel(ctx *compute.ComputeContext) error {
	return ctx.RegisterKernel(&compute.Kernel{
		Name:       "image_sampling",
		EntryPoint: "image_sample",
		WGSL:       imageSamplingWGSL,
		HostMirror: func(compute.KernelArgs) error { return nil },
	})
}

// LightSample is one point-light stand-in for part of an extended light
// source image: its normalized device position and relative weight.
type LightSample struct {
	Position flare.Vec2
	Weight   float64
}

// SampleLightImage scans image (its grayscale luminance stored in a
// Mask) for pixels at or above threshold, downsampling to a
// resPerEdge x resPerEdge grid of candidate cells and emitting one
// LightSample per cell whose peak luminance clears threshold. Positions
// are returned in [-1, 1] normalized device coordinates, y-up.
func SampleLightImage(image *Mask, resPerEdge int, threshold float64) []LightSample {
	if resPerEdge <= 0 {
		return nil
	}

	cellW := image.Width / resPerEdge
	cellH := image.Height / resPerEdge
	if cellW == 0 {
		cellW = 1
	}
	if cellH == 0 {
		cellH = 1
	}

	var samples []LightSample
	var totalWeight float64

	for gy := 0; gy*cellH < image.Height; gy++ {
		for gx := 0; gx*cellW < image.Width; gx++ {
			peak := 0.0
			for y := gy * cellH; y < (gy+1)*cellH && y < image.Height; y++ {
				for x := gx * cellW; x < (gx+1)*cellW && x < image.Width; x++ {
					if v := image.At(x, y); v > peak {
						peak = v
					}
				}
			}
			if peak < threshold {
				continue
			}

			cx := float64(gx*cellW) + float64(cellW)/2
			cy := float64(gy*cellH) + float64(cellH)/2
			ndc := flare.V2(
				cx/float64(image.Width)*2-1,
				1-cy/float64(image.Height)*2,
			)
			samples = append(samples, LightSample{Position: ndc, Weight: peak})
			totalWeight += peak
		}
	}

	if totalWeight > 0 {
		for i := range samples {
			samples[i].Weight /= totalWeight
		}
	}
	return samples
}
