package tasks

import (
	"sort"

	"github.com/flarekit/flare/compute"
	"github.com/flarekit/flare/lens"
)

const preprocessWGSL = `
// Cheap per-path brightness estimate: a coarse grid trace at the
// optical center, used to rank and cull the dimmest ghost paths before
// the full rasterization pass.
@group(0) @binding(0) var<storage, read> elements: array<LensElement>;
@group(0) @binding(1) var<storage, read_write> brightness: array<f32>;
@compute @workgroup_size(64, 1, 1)
fn preprocess_paths(@builtin(global_invocation_id) id: vec3<u32>) {
}
`

// PreprocessKernel registers the path-brightness-estimate kernel against ctx.
func PreprocessKernel(ctx *compute.ComputeContext) error {
	return ctx.RegisterKernel(&compute.Kernel{
		Name:       "preprocess",
		EntryPoint: "preprocess_paths",
		WGSL:       preprocessWGSL,
		HostMirror: func(compute.KernelArgs) error { return nil },
	})
}

// PathBrightness pairs a ghost path with its estimated brightness.
type PathBrightness struct {
	Path       lens.Path
	Brightness float64
}

// EstimateBrightness traces a coarse grid_count x grid_count grid through
// elements for one path, at a single wavelength, from the optical center,
// and returns the mean surviving reflectance as a brightness proxy. A
// path whose rays all miss the sensor or suffer total internal
// reflection scores zero.
func EstimateBrightness(elements []lens.Element, path lens.Path, wavelengthNM float64, gridCount int, gridLength float64) float64 {
	cfg := TraceConfig{
		FocalLength:  50,
		WavelengthNM: wavelengthNM,
		Path:         path,
	}
	rays := TraceGrid(elements, cfg, gridCount, gridLength)

	var sum float64
	for _, r := range rays {
		if r.Rrel <= 1 {
			sum += r.Reflectance
		}
	}
	return sum / float64(len(rays))
}

// PreprocessPaths scores every path in all by EstimateBrightness at the
// given grid resolution and wavelength, then culls the dimmest
// cullPercentage fraction, returning the surviving paths sorted from
// brightest to dimmest.
func PreprocessPaths(elements []lens.Element, all []lens.Path, wavelengthNM float64, gridCount int, gridLength, cullPercentage float64) []lens.Path {
	scored := make([]PathBrightness, len(all))
	for i, p := range all {
		scored[i] = PathBrightness{Path: p, Brightness: EstimateBrightness(elements, p, wavelengthNM, gridCount, gridLength)}
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Brightness > scored[j].Brightness
	})

	keep := len(scored) - int(float64(len(scored))*cullPercentage)
	if keep < 0 {
		keep = 0
	}
	if keep > len(scored) {
		keep = len(scored)
	}

	out := make([]lens.Path, keep)
	for i := 0; i < keep; i++ {
		out[i] = scored[i].Path
	}
	return out
}
