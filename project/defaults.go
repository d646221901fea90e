package project

// DefaultAperture returns the procedural-mask defaults shared by new
// ghost and starburst apertures.
func DefaultAperture() Aperture {
	return Aperture{
		Fstop:  8,
		Blades: 64,
		Shape:  Shape{Size: 1, Blades: 6, Softness: 0.1},
	}
}

// Default returns a Project populated with the documented defaults, the
// same values a brand new project starts from in the absence of any
// stored file. Storage.Load unmarshals JSON on top of this value so that
// keys missing from the file keep their default.
func Default() Project {
	return Project{
		Output: Output{
			Colorspace: "ACES - ACEScg",
		},
		Flare: Flare{
			Light: Light{
				Intensity: 1,
				Color:     [3]float64{1, 1, 1},
			},
			Lens: Lens{
				SensorSize: Size2{W: 36, H: 24},
				MinArea:    0.01,
			},
			Starburst: Starburst{
				Aperture:          DefaultAperture(),
				Intensity:         1,
				LensDistance:      0.1,
				RotationWeighting: 1,
				FadeoutStart:      0.75,
				FadeoutEnd:        1,
				Scale:             Size2{W: 1, H: 1},
			},
			Ghost: Ghost{
				Aperture: DefaultAperture(),
				Fstop:    8,
			},
		},
		Render: Render{
			Quality: Quality{
				Resolution:         Size2{W: 512, H: 512},
				BinSize:            64,
				AntiAliasing:       1,
				WavelengthCount:    1,
				WavelengthSubCount: 1,
				GridCount:          33,
				GridLength:         50,
				Starburst:          StarburstQuality{Resolution: Size2{W: 256, H: 256}, Samples: 100},
				Ghost:              GhostQuality{Resolution: Size2{W: 256, H: 256}},
			},
		},
		Diagram: Diagram{
			Resolution: Size2{W: 2048, H: 1024},
			GridCount:  8,
			GridLength: 50,
		},
	}
}
