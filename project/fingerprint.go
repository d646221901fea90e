package project

import "github.com/flarekit/flare"

// writeShape feeds a Shape into a fingerprint builder.
func writeShape(b *flare.FingerprintBuilder, s Shape) {
	b.WriteFloat64(s.Size)
	b.WriteInt64(int64(s.Blades))
	b.WriteFloat64(s.Roundness)
	b.WriteFloat64(s.Rotation)
	b.WriteFloat64(s.Softness)
}

func writeGrating(b *flare.FingerprintBuilder, g Grating) {
	b.WriteFloat64(g.Strength)
	b.WriteFloat64(g.Density)
	b.WriteFloat64(g.Length)
	b.WriteFloat64(g.Width)
	b.WriteFloat64(g.Softness)
}

func writeScratches(b *flare.FingerprintBuilder, s Scratches) {
	b.WriteFloat64(s.Strength)
	b.WriteFloat64(s.Density)
	b.WriteFloat64(s.Length)
	b.WriteFloat64(s.Width)
	b.WriteFloat64(s.Rotation)
	b.WriteFloat64(s.RotationVariance)
	b.WriteFloat64(s.Softness)
	b.WriteFloat64(s.Parallax)
}

func writeDust(b *flare.FingerprintBuilder, d Dust) {
	b.WriteFloat64(d.Strength)
	b.WriteFloat64(d.Density)
	b.WriteFloat64(d.Radius)
	b.WriteFloat64(d.Softness)
	b.WriteFloat64(d.Parallax)
}

func writeImageOverlay(b *flare.FingerprintBuilder, img ImageOverlay) {
	b.WriteFloat64(img.Strength)
	b.WriteString(img.File)
	b.WriteFloat64(img.Size)
	b.WriteFloat64(img.Threshold)
}

// Write feeds an Aperture's full parameter set into a fingerprint
// builder. Flare.Fingerprint feeds both of its apertures through it.
func (a Aperture) Write(b *flare.FingerprintBuilder) {
	b.WriteFloat64(a.Fstop)
	b.WriteString(a.File)
	b.WriteInt64(int64(a.Blades))
	b.WriteFloat64(a.Softness)
	writeShape(b, a.Shape)
	writeGrating(b, a.Grating)
	writeScratches(b, a.Scratches)
	writeDust(b, a.Dust)
	writeImageOverlay(b, a.Image)
}

// Fingerprint returns a's fingerprint in isolation (no parallax offset).
func (a Aperture) Fingerprint() flare.Fingerprint {
	b := flare.NewFingerprintBuilder()
	a.Write(b)
	return b.Sum()
}

// Write feeds a Light value into a fingerprint builder.
func (l Light) Write(b *flare.FingerprintBuilder) {
	b.WriteFloat64(l.Intensity)
	b.WriteFloat64(l.Color[0])
	b.WriteFloat64(l.Color[1])
	b.WriteFloat64(l.Color[2])
	b.WriteFloat64(l.Position.X)
	b.WriteFloat64(l.Position.Y)
	b.WriteString(l.ImagePath)
	b.WriteInt64(int64(l.ImageSamples))
	b.WriteInt64(int64(l.ImageSampleRes))
	b.WriteBool(l.ShowSamples)
}

// Write feeds a Lens value into a fingerprint builder.
func (lens Lens) Write(b *flare.FingerprintBuilder) {
	b.WriteFloat64(lens.SensorSize.W)
	b.WriteFloat64(lens.SensorSize.H)
	b.WriteString(lens.PrescriptionPath)
	b.WriteString(lens.GlassesPath)
	b.WriteFloat64(lens.AbbeNrAdjustment)
	b.WriteFloat64(lens.MinArea)
	b.WriteFloat64(lens.CoatingMinIOR)
	for _, c := range lens.CoatingLensElements {
		b.WriteInt64(int64(c.ElementIndex))
		b.WriteFloat64(c.WavelengthNM)
	}
}

// Write feeds a Quality value into a fingerprint builder.
func (q Quality) Write(b *flare.FingerprintBuilder) {
	b.WriteFloat64(q.Resolution.W)
	b.WriteFloat64(q.Resolution.H)
	b.WriteInt64(int64(q.BinSize))
	b.WriteInt64(int64(q.AntiAliasing))
	b.WriteInt64(int64(q.WavelengthCount))
	b.WriteInt64(int64(q.WavelengthSubCount))
	b.WriteInt64(int64(q.GridCount))
	b.WriteFloat64(q.GridLength)
	b.WriteFloat64(q.CullPercentage)
}

// Fingerprint returns the fingerprint of the entire Flare sub-record.
func (f Flare) Fingerprint() flare.Fingerprint {
	b := flare.NewFingerprintBuilder()
	f.Light.Write(b)
	f.Lens.Write(b)
	f.Starburst.Aperture.Write(b)
	b.WriteFloat64(f.Starburst.Intensity)
	b.WriteFloat64(f.Starburst.LensDistance)
	b.WriteFloat64(f.Starburst.Blur)
	b.WriteFloat64(f.Starburst.Rotation)
	b.WriteFloat64(f.Starburst.RotationWeighting)
	b.WriteFloat64(f.Starburst.FadeoutStart)
	b.WriteFloat64(f.Starburst.FadeoutEnd)
	b.WriteFloat64(f.Starburst.Scale.W)
	b.WriteFloat64(f.Starburst.Scale.H)
	f.Ghost.Aperture.Write(b)
	b.WriteFloat64(f.Ghost.Fstop)
	return b.Sum()
}

// Fingerprint returns the fingerprint of a Project, combining every
// sub-record that can influence a rendered pixel. Output.Path is
// deliberately excluded: changing where a result is written does not
// change the result. The Diagram sub-record, which only shapes
// RenderDiagram's vector output, and Render.System are not included.
func (p Project) Fingerprint() flare.Fingerprint {
	b := flare.NewFingerprintBuilder()
	b.WriteString(p.Output.Colorspace)
	fl := p.Flare.Fingerprint()
	b.WriteInt64(int64(fl.Hi))
	b.WriteInt64(int64(fl.Lo))
	p.Render.Quality.Write(b)
	b.WriteFloat64(p.Render.Quality.Starburst.Resolution.W)
	b.WriteFloat64(p.Render.Quality.Starburst.Resolution.H)
	b.WriteInt64(int64(p.Render.Quality.Starburst.Samples))
	b.WriteFloat64(p.Render.Quality.Ghost.Resolution.W)
	b.WriteFloat64(p.Render.Quality.Ghost.Resolution.H)
	b.WriteBool(p.Render.DisableStarburst)
	b.WriteBool(p.Render.DisableGhosts)
	b.WriteInt64(int64(p.Render.DebugGhost))
	for _, el := range p.Elements {
		b.WriteInt64(int64(el))
	}
	return b.Sum()
}
