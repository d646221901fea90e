package tasks

import (
	"math"

	"github.com/flarekit/flare"
	"github.com/flarekit/flare/compute"
	"github.com/flarekit/flare/lens"
)

const raytracingWGSL = `
// Traces a (path, wavelength, ray) grid of rays through a lens element
// stack: ray-sphere/ray-plane intersection, scheduled-bounce reflection,
// Snell refraction with Sellmeier dispersion, and Fresnel-AR coating
// reflectance accumulation.
@group(0) @binding(0) var<storage, read> elements: array<LensElement>;
@group(0) @binding(1) var<storage, read_write> rays: array<Ray>;
@compute @workgroup_size(4, 4, 4)
fn trace_rays(@builtin(global_invocation_id) id: vec3<u32>) {
}
`

// RaytracingKernel registers the ray-tracing kernel against ctx.
func RaytracingKernel(ctx *compute.ComputeContext) error {
	return ctx.RegisterKernel(&compute.Kernel{
		Name:       "raytracing",
		EntryPoint: "trace_rays",
		WGSL:       raytracingWGSL,
		HostMirror: func(compute.KernelArgs) error { return nil },
	})
}

// TraceConfig bundles the inputs a single ray's walk needs beyond its
// seed position: the light direction, the sensor geometry, the
// wavelength, and the ghost path's scheduled bounces.
type TraceConfig struct {
	LightNDC       flare.Vec2
	SensorHalfW    float64
	SensorHalfH    float64
	Aspect         float64
	FocalLength    float64
	WavelengthNM   float64
	Path           lens.Path
	CoatingMinIOR  float64
	StoreHits      bool
}

// TraceRay walks one ray, seeded at gridPos on the z=0 source plane,
// through the element stack. It always completes the full walk even past
// a rrel>1 excursion, so that every ray in a batch does uniform work; the
// caller is expected to zero out a primitive's contribution once any of
// its vertices report Rrel>1.
func TraceRay(elements []lens.Element, cfg TraceConfig, gridPos flare.Vec2) (Ray, []Intersection) {
	dir := flare.V3(
		cfg.LightNDC.X*cfg.SensorHalfW,
		cfg.LightNDC.Y*cfg.SensorHalfH*cfg.Aspect,
		cfg.FocalLength,
	).Normalize()

	pos := flare.V3(gridPos.X, gridPos.Y, 0)
	ray := Ray{Pos: pos, Dir: dir, Reflectance: 1}

	var hits []Intersection
	z := 0.0
	n0 := 1.0

	for i, el := range elements {
		z += el.Distance
		hit, normal, ok := intersectElement(pos, dir, el, z)
		if !ok {
			if cfg.StoreHits {
				hits = append(hits, Intersection{})
			}
			continue
		}

		radial := hit.RadialXY()
		if el.Height > 0 {
			rrel := radial / el.Height
			if rrel > ray.Rrel {
				ray.Rrel = rrel
			}
		}

		n1 := n0
		if !math.IsNaN(el.RefractiveIndex) && el.RefractiveIndex != 0 {
			n1 = el.RefractiveIndex
		}

		incident := dir
		bounce := i == cfg.Path.Bounce1 || i == cfg.Path.Bounce2
		if bounce {
			dir = incident.Reflect(normal)
		} else {
			refracted, ok := lens.Refract(incident, normal, n0, n1)
			if ok {
				dir = refracted
			} else {
				ray.Reflectance = 0
			}
		}

		thickness := lens.CoatingThickness(cfg.WavelengthNM, n1, 0)
		r := lens.FresnelAR(n0, n1, n1, math.Abs(incident.Dot(normal)), thickness, cfg.WavelengthNM)
		if bounce {
			ray.Reflectance *= r
		} else {
			ray.Reflectance *= 1 - r
		}

		if i == 0 {
			ray.PosApt = flare.V2(hit.X, hit.Y)
		}

		if cfg.StoreHits {
			angle := math.Acos(clamp01(math.Abs(incident.Dot(normal))))
			hits = append(hits, Intersection{Point: hit, Normal: normal, Angle: angle, Hit: true})
		}

		pos = hit
		n0 = n1
	}

	ray.Pos = pos
	ray.Dir = dir
	if ray.Rrel > 1 {
		ray.Reflectance = 0
	}
	return ray, hits
}

// intersectElement intersects a ray against one lens element's surface:
// a sphere of the element's signed radius centered at (0,0,z-radius), or
// a plane at z if radius is 0.
func intersectElement(pos, dir flare.Vec3, el lens.Element, z float64) (hit, normal flare.Vec3, ok bool) {
	if el.Radius == 0 {
		if dir.Z == 0 {
			return flare.Vec3{}, flare.Vec3{}, false
		}
		t := (z - pos.Z) / dir.Z
		if t < 0 {
			return flare.Vec3{}, flare.Vec3{}, false
		}
		hit = pos.Add(dir.Mul(t))
		normal = flare.V3(0, 0, -1)
		return hit, normal, true
	}

	center := flare.V3(0, 0, z-el.Radius)
	oc := pos.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - el.Radius*el.Radius
	disc := b*b - c
	if disc < 0 {
		return flare.Vec3{}, flare.Vec3{}, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return flare.Vec3{}, flare.Vec3{}, false
	}

	hit = pos.Add(dir.Mul(t))
	normal = hit.Sub(center).Normalize()
	if el.Radius < 0 {
		normal = normal.Mul(-1)
	}
	return hit, normal, true
}

// TraceGrid traces an entire grid_count x grid_count batch of rays for
// one (path, wavelength), returning the rays in row-major grid order.
func TraceGrid(elements []lens.Element, cfg TraceConfig, gridCount int, gridLength float64) []Ray {
	rays := make([]Ray, gridCount*gridCount)
	half := gridLength / 2
	step := gridLength / float64(gridCount-1)
	if gridCount == 1 {
		step = 0
	}

	idx := 0
	for y := 0; y < gridCount; y++ {
		for x := 0; x < gridCount; x++ {
			gp := flare.V2(-half+float64(x)*step, -half+float64(y)*step)
			ray, _ := TraceRay(elements, cfg, gp)
			rays[idx] = ray
			idx++
		}
	}
	return rays
}
