package tasks

import (
	"math"

	"github.com/flarekit/flare"
	"github.com/flarekit/flare/compute"
	"github.com/flarekit/flare/lens"
)

const diagramWGSL = `
// Traces a flat fan of rays through the lens cross-section, recording
// every element hit for a 2-D optical diagram rather than a rasterized
// image.
@group(0) @binding(0) var<storage, read> elements: array<LensElement>;
@group(0) @binding(1) var<storage, read_write> hits: array<Intersection>;
@compute @workgroup_size(64, 1, 1)
fn diagram_trace(@builtin(global_invocation_id) id: vec3<u32>) {
}
`

// DiagramKernel registers the diagram-tracing kernel against ctx.
func DiagramKernel(ctx *compute.ComputeContext) error {
	return ctx.RegisterKernel(&compute.Kernel{
		Name:       "diagram",
		EntryPoint: "diagram_trace",
		WGSL:       diagramWGSL,
		HostMirror: func(compute.KernelArgs) error { return nil },
	})
}

// RaySegment is one leg of a traced ray's polyline through the lens
// cross-section, from one intersection (or the source) to the next.
type RaySegment struct {
	From, To flare.Vec3
}

// DiagramRay is one traced ray's full polyline plus the path it followed.
type DiagramRay struct {
	Path     lens.Path
	Segments []RaySegment
}

// TraceDiagramRay traces a single ray for the 2-D cross-section diagram,
// returning every segment of its polyline from the source plane through
// each element hit (or miss, which truncates the polyline early).
func TraceDiagramRay(elements []lens.Element, cfg TraceConfig, gridPos flare.Vec2) DiagramRay {
	cfg.StoreHits = true
	_, hits := TraceRay(elements, cfg, gridPos)

	diag := DiagramRay{Path: cfg.Path}
	prev := flare.V3(gridPos.X, gridPos.Y, 0)
	for _, h := range hits {
		if !h.Hit {
			break
		}
		diag.Segments = append(diag.Segments, RaySegment{From: prev, To: h.Point})
		prev = h.Point
	}
	return diag
}

// TraceDiagramFan traces rayCount rays evenly spaced across
// [-halfExtent, halfExtent] on the y-axis of the source plane, for one
// path, returning one DiagramRay per ray.
func TraceDiagramFan(elements []lens.Element, cfg TraceConfig, rayCount int, halfExtent float64) []DiagramRay {
	rays := make([]DiagramRay, rayCount)
	if rayCount == 1 {
		rays[0] = TraceDiagramRay(elements, cfg, flare.V2(0, 0))
		return rays
	}

	step := 2 * halfExtent / float64(rayCount-1)
	for i := 0; i < rayCount; i++ {
		y := -halfExtent + float64(i)*step
		rays[i] = TraceDiagramRay(elements, cfg, flare.V2(0, y))
	}
	return rays
}

// ElementProfile is the 2-D cross-section silhouette of one lens
// element, sampled at radii from -el.Height to el.Height, used to draw the lens
// barrel outline behind the traced ray fans.
type ElementProfile struct {
	Points []flare.Vec3
}

// ProfileElement samples el's surface sagitta at sampleCount points from
// -el.Height to el.Height, for drawing its cross-section outline in a
// diagram. z is the element's vertex position along the optical axis.
func ProfileElement(el lens.Element, z float64, sampleCount int) ElementProfile {
	profile := ElementProfile{Points: make([]flare.Vec3, sampleCount)}
	if sampleCount == 1 {
		profile.Points[0] = flare.V3(0, 0, z)
		return profile
	}

	step := 2 * el.Height / float64(sampleCount-1)
	for i := 0; i < sampleCount; i++ {
		y := -el.Height + float64(i)*step
		profile.Points[i] = flare.V3(0, y, z+sagitta(el, y))
	}
	return profile
}

// sagitta returns the surface's axial displacement at radial distance y
// from the optical axis, for a spherical surface of the element's
// radius, or zero for a flat (radius 0) surface.
func sagitta(el lens.Element, y float64) float64 {
	if el.Radius == 0 {
		return 0
	}
	r := el.Radius
	inside := r*r - y*y
	if inside < 0 {
		inside = 0
	}
	return r - signOf(r)*math.Sqrt(inside)
}

func signOf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
