package lens

import (
	"fmt"
	"math"
	"os"

	"github.com/flarekit/flare"
	"gopkg.in/yaml.v3"
)

// Element is one surface of a lens prescription: a spherical (or, with
// radius zero, planar) refractive interface at a given axial distance from
// the previous element.
type Element struct {
	Radius          float64 `yaml:"radius"`
	Distance        float64 `yaml:"distance"`
	RefractiveIndex float64 `yaml:"refractive_index"`
	AbbeNr          float64 `yaml:"abbe_nr"`
	Height          float64 `yaml:"height"`
}

// Model is a lens prescription: an ordered sequence of elements plus the
// metadata needed to trace rays through them. ApertureIndex is the index
// of the element that represents the aperture stop.
type Model struct {
	Name          string    `yaml:"name"`
	Year          int       `yaml:"year"`
	PatentNumber  string    `yaml:"patent_number"`
	Notes         string    `yaml:"notes"`
	FocalLength   float64   `yaml:"focal_length"`
	ApertureIndex int       `yaml:"aperture_index"`
	Elements      []Element `yaml:"lens_elements"`
}

// WithSensor returns a copy of the model with a synthetic terminal
// element appended: radius 0 (a plane), refractive index 1 (no further
// refraction), and mechanical height equal to the sensor's half-diagonal.
// This is an invariant of the element buffer handed to the tracer, not of
// the stored prescription — the returned model is never itself persisted.
func (m Model) WithSensor(sensorWidthMM, sensorHeightMM, sensorDistance float64) Model {
	half := sensorDiagonalHalf(sensorWidthMM, sensorHeightMM)
	out := m
	out.Elements = make([]Element, len(m.Elements)+1)
	copy(out.Elements, m.Elements)
	out.Elements[len(m.Elements)] = Element{
		Radius:          0,
		Distance:        sensorDistance,
		RefractiveIndex: 1,
		Height:          half,
	}
	return out
}

func sensorDiagonalHalf(w, h float64) float64 {
	return 0.5 * math.Sqrt(w*w+h*h)
}

// LoadModel parses a lens prescription from a YAML file. It does not
// memoize: every call reads and parses the file. The engine caches loaded
// models keyed by the fingerprint of the project's Lens settings; the
// file's modification time is not part of that key.
func LoadModel(path string) (Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("%w: %v", flare.ErrBadLensModel, err)
	}

	var m Model
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Model{}, fmt.Errorf("%w: %v", flare.ErrBadLensModel, err)
	}
	if m.ApertureIndex < 0 || m.ApertureIndex >= len(m.Elements) {
		return Model{}, fmt.Errorf("%w: aperture index %d out of range for %d elements",
			flare.ErrBadLensModel, m.ApertureIndex, len(m.Elements))
	}
	return m, nil
}
