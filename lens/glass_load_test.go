package lens

import (
	"os"
	"path/filepath"
	"testing"
)

const bk7YAML = `
SPECS:
  n_is_absolute: false
  wavelength_is_vacuum: false
  nd: 1.5168
  vd: 64.17
DATA:
  - type: formula 2
    wavelength_range: 0.3 2.5
    coefficients: 0 1.03961212 0.00600069867 0.231792344 0.0200179144 1.01046945 103.560653
`

const noFormulaYAML = `
SPECS:
  nd: 1.5
  vd: 50
DATA:
  - type: tabulated n
    data: "0.3 1.5"
`

func TestLoadLibraryParsesFormula2(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "N-BK7.yml"), []byte(bk7YAML), 0o644); err != nil {
		t.Fatal(err)
	}

	lib, err := LoadLibrary(dir)
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	if len(lib.Glasses) != 1 {
		t.Fatalf("len(lib.Glasses) = %d, want 1", len(lib.Glasses))
	}

	g := lib.Glasses[0]
	if g.Name != "N-BK7" {
		t.Errorf("Name = %q, want N-BK7", g.Name)
	}
	if g.Manufacturer != filepath.Base(dir) {
		t.Errorf("Manufacturer = %q, want %q", g.Manufacturer, filepath.Base(dir))
	}
	if g.Nd != 1.5168 || g.Vd != 64.17 {
		t.Errorf("Nd/Vd = %v/%v, want 1.5168/64.17", g.Nd, g.Vd)
	}
	if g.Coefficients[0] != 1.03961212 {
		t.Errorf("Coefficients[0] = %v, want 1.03961212", g.Coefficients[0])
	}
}

func TestLoadLibrarySkipsNonFormula2(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tabulated.yml"), []byte(noFormulaYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	lib, err := LoadLibrary(dir)
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	if len(lib.Glasses) != 0 {
		t.Errorf("len(lib.Glasses) = %d, want 0", len(lib.Glasses))
	}
}

func TestLoadLibraryIgnoresNonYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "N-BK7.yml"), []byte(bk7YAML), 0o644); err != nil {
		t.Fatal(err)
	}

	lib, err := LoadLibrary(dir)
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	if len(lib.Glasses) != 1 {
		t.Errorf("len(lib.Glasses) = %d, want 1", len(lib.Glasses))
	}
}

func TestLoadLibraryMissingDir(t *testing.T) {
	if _, err := LoadLibrary("/nonexistent/dir"); err == nil {
		t.Error("LoadLibrary on a missing directory should return an error")
	}
}
