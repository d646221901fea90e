package project

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flarekit/flare"
)

// Animation is a JSON document shaped like a Project, except that any
// scalar leaf may be given as a JSON array to provide one value per
// frame (shorter arrays repeat their last element for later frames;
// arrays that are part of a field's natural shape, such as a fixed
// three-element color or a list of lens-element coating assignments, are
// not broadcast — animating those requires a project per frame instead).
type Animation struct {
	raw map[string]json.RawMessage
}

// FrameCount returns the length of the longest scalar-broadcast array
// found anywhere in the document, i.e. the number of distinct frames the
// animation defines. An animation with no arrays at all has frame count 1.
func (a Animation) FrameCount() int {
	var tree any
	if err := remarshal(a.raw, &tree); err != nil {
		return 1
	}
	max := 1
	walkBroadcastArrays(tree, defaultTree(), func(arr []any) {
		if len(arr) > max {
			max = len(arr)
		}
	})
	return max
}

// Frame resolves the project for frame index i (0-based): every
// broadcast array leaf selects its i-th element, clamped to the array's
// last element for i beyond the array's length.
func (a Animation) Frame(i int) (Project, error) {
	var tree any
	if err := remarshal(a.raw, &tree); err != nil {
		return Project{}, fmt.Errorf("%w: %v", flare.ErrBadProject, err)
	}

	resolved := resolveFrame(tree, defaultTree(), i)
	encoded, err := json.Marshal(resolved)
	if err != nil {
		return Project{}, fmt.Errorf("%w: %v", flare.ErrBadProject, err)
	}

	p := Default()
	if err := json.Unmarshal(encoded, &p); err != nil {
		return Project{}, fmt.Errorf("%w: %v", flare.ErrBadProject, err)
	}
	return p, nil
}

func remarshal(v any, out any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, out)
}

func defaultTree() any {
	encoded, _ := json.Marshal(Default())
	var tree any
	_ = json.Unmarshal(encoded, &tree)
	return tree
}

// isBroadcastArray reports whether raw is a JSON array at a position
// whose default shape is NOT itself an array — i.e. a scalar field given
// as a per-frame list, as opposed to a fixed-shape array field like a
// 3-element color.
func isBroadcastArray(raw any, shape any) ([]any, bool) {
	arr, ok := raw.([]any)
	if !ok || shape == nil {
		return nil, false
	}
	if _, shapeIsArray := shape.([]any); shapeIsArray {
		return nil, false
	}
	return arr, true
}

// shapeField looks key up in a default-shape object the way encoding/json
// matches keys to fields: an exact match first, then a case-insensitive one.
func shapeField(shape map[string]any, key string) any {
	if v, ok := shape[key]; ok {
		return v
	}
	for k, v := range shape {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

func walkBroadcastArrays(raw, shape any, visit func([]any)) {
	shapeObj, shapeIsObj := shape.(map[string]any)
	rawObj, rawIsObj := raw.(map[string]any)
	if rawIsObj && shapeIsObj {
		for k, v := range rawObj {
			walkBroadcastArrays(v, shapeField(shapeObj, k), visit)
		}
		return
	}
	if arr, ok := isBroadcastArray(raw, shape); ok {
		visit(arr)
	}
}

func resolveFrame(raw, shape any, frame int) any {
	if arr, ok := isBroadcastArray(raw, shape); ok {
		if len(arr) == 0 {
			return shape
		}
		idx := frame
		if idx >= len(arr) {
			idx = len(arr) - 1
		}
		return arr[idx]
	}

	rawObj, rawIsObj := raw.(map[string]any)
	shapeObj, shapeIsObj := shape.(map[string]any)
	if rawIsObj && shapeIsObj {
		out := make(map[string]any, len(rawObj))
		for k, v := range rawObj {
			out[k] = resolveFrame(v, shapeField(shapeObj, k), frame)
		}
		return out
	}
	return raw
}
