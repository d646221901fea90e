package tasks

import "github.com/flarekit/flare"

// Ray is one traced sample: a GPU-resident struct mirrored host-side for
// the rasterizer's prim/vertex shaders.
type Ray struct {
	Pos         flare.Vec3
	Dir         flare.Vec3
	PosApt      flare.Vec2
	Rrel        float64
	Reflectance float64
}

// Intersection is one per-element hit recorded by TraceRay when
// TraceConfig.StoreHits is set, for diagram rendering.
type Intersection struct {
	Point  flare.Vec3
	Normal flare.Vec3
	Angle  float64
	Hit    bool
}

// Vertex is one rasterizer-ready screen-space sample.
type Vertex struct {
	Pos         flare.Vec2 // pixels
	UV          flare.Vec2 // aperture-plane position (Ray.PosApt)
	Rrel        float64
	Reflectance float64
	Intensity   float64
}

// Bounds is the screen-space axis-aligned bounding box of one (path,
// quad) primitive.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Empty reports whether the bounds were never extended by any vertex.
func (b Bounds) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Overlaps reports whether two bounds intersect.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.MinX <= o.MaxX && b.MaxX >= o.MinX && b.MinY <= o.MaxY && b.MaxY >= o.MinY
}

// LensElementGPU is the device-resident layout of one lens element,
// including the Sellmeier coefficients used to evaluate dispersion
// on-kernel without a texture lookup.
type LensElementGPU struct {
	Radius       float64
	Distance     float64
	IOR          float64
	Height       float64
	Center       float64
	IsAperture   bool
	CoatingRefNM float64
	CoatingIOR   float64
	Sellmeier    [6]float64
	HasSellmeier bool
}

// Quad is the four ray-grid indices making up one primitive, in
// row-major order: top-left, top-right, bottom-right, bottom-left.
type Quad struct {
	V0, V1, V2, V3 int
}

// Primitive is one assembled (path, quad) unit: its four vertices, its
// screen bounds, and its per-wavelength intensity.
type Primitive struct {
	Vertices    [4]Vertex
	Bounds      Bounds
	Intensity   []float64 // per wavelength sample
	Reflectance float64
}
