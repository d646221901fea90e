package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/flarekit/flare"
)

// Storage loads Project and Animation values from JSON files. The zero
// value is ready to use.
type Storage struct{}

// Load reads a project file. Unknown keys are ignored; missing keys keep
// the values from Default(). Any JSON syntax or type error is wrapped in
// flare.ErrBadProject.
func (Storage) Load(path string) (Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("%w: %v", flare.ErrBadProject, err)
	}

	p := Default()
	if err := json.Unmarshal(raw, &p); err != nil {
		return Project{}, fmt.Errorf("%w: %v", flare.ErrBadProject, err)
	}
	return p, nil
}

// LoadAnimation reads an animation file: the same shape as a project, but
// any leaf may be a JSON array broadcasting one value per frame.
func (Storage) LoadAnimation(path string) (Animation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Animation{}, fmt.Errorf("%w: %v", flare.ErrBadProject, err)
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		return Animation{}, fmt.Errorf("%w: %v", flare.ErrBadProject, err)
	}
	return Animation{raw: root}, nil
}
