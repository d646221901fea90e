package lens

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flarekit/flare"
	"gopkg.in/yaml.v3"
)

// refractiveIndexRecord mirrors the subset of refractiveindex.info's YAML
// schema this package understands: a list of dispersion formulas (only
// "formula 2", i.e. Sellmeier, is used) and a specs block carrying the
// catalog nd/vd numbers.
type refractiveIndexRecord struct {
	Data []struct {
		Type         string `yaml:"type"`
		Coefficients string `yaml:"coefficients"`
	} `yaml:"DATA"`
	Specs struct {
		Nd float64 `yaml:"nd"`
		Vd float64 `yaml:"vd"`
	} `yaml:"SPECS"`
}

// LoadLibrary reads every .yml/.yaml file directly inside dir (one
// manufacturer's directory) and returns the glasses it describes. Files
// missing formula-2 coefficients or an nd/vd spec are silently skipped, as
// the reference catalogs mix dispersion formulas and not every one is a
// Sellmeier fit.
func LoadLibrary(dir string) (Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Library{}, fmt.Errorf("%w: %v", flare.ErrBadGlassLibrary, err)
	}

	manufacturer := filepath.Base(dir)
	var lib Library
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yml" && ext != ".yaml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		g, err := loadGlassFile(path, manufacturer)
		if err != nil {
			if err == ErrNoGlassData {
				continue
			}
			return Library{}, err
		}
		lib.Glasses = append(lib.Glasses, g)
	}
	return lib, nil
}

func loadGlassFile(path, manufacturer string) (Glass, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Glass{}, fmt.Errorf("%w: %v", flare.ErrBadGlassLibrary, err)
	}

	var rec refractiveIndexRecord
	if err := yaml.Unmarshal(raw, &rec); err != nil {
		return Glass{}, fmt.Errorf("%w: %v", flare.ErrBadGlassLibrary, err)
	}

	var coefficients [6]float64
	found := false
	for _, item := range rec.Data {
		if item.Type != "formula 2" {
			continue
		}
		fields := strings.Fields(item.Coefficients)
		if len(fields) < 7 {
			continue
		}
		for i := range coefficients {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return Glass{}, fmt.Errorf("%w: %v", flare.ErrBadGlassLibrary, err)
			}
			coefficients[i] = v
		}
		found = true
		break
	}
	if !found || rec.Specs.Nd == 0 || rec.Specs.Vd == 0 {
		return Glass{}, ErrNoGlassData
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Glass{
		Name:         name,
		Manufacturer: manufacturer,
		Nd:           rec.Specs.Nd,
		Vd:           rec.Specs.Vd,
		Coefficients: coefficients,
	}, nil
}
