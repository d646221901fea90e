package tasks

import (
	"testing"

	"github.com/flarekit/flare/lens"
)

func TestEstimateBrightnessPassThroughIsPositive(t *testing.T) {
	elements := simpleElements()
	b := EstimateBrightness(elements, lens.PassThrough, 550, 3, 5)
	if b <= 0 {
		t.Errorf("expected a positive brightness estimate for a pass-through path, got %v", b)
	}
}

func TestPreprocessPathsCullsDimmestFraction(t *testing.T) {
	elements := simpleElements()
	all := []lens.Path{lens.PassThrough, {Bounce1: 0, Bounce2: -1}}

	kept := PreprocessPaths(elements, all, 550, 3, 5, 0.5)
	if len(kept) != 1 {
		t.Fatalf("expected exactly 1 path to survive a 50%% cull of 2, got %d", len(kept))
	}
}

func TestPreprocessPathsZeroCullKeepsAll(t *testing.T) {
	elements := simpleElements()
	all := []lens.Path{lens.PassThrough, {Bounce1: 0, Bounce2: -1}}

	kept := PreprocessPaths(elements, all, 550, 3, 5, 0)
	if len(kept) != len(all) {
		t.Errorf("expected all %d paths to survive a 0%% cull, got %d", len(all), len(kept))
	}
}

func TestPreprocessPathsOrderedByBrightnessDescending(t *testing.T) {
	elements := simpleElements()
	all := []lens.Path{lens.PassThrough, {Bounce1: 0, Bounce2: -1}}

	kept := PreprocessPaths(elements, all, 550, 3, 5, 0)
	b0 := EstimateBrightness(elements, kept[0], 550, 3, 5)
	b1 := EstimateBrightness(elements, kept[1], 550, 3, 5)
	if b0 < b1 {
		t.Errorf("expected descending brightness order, got b0=%v b1=%v", b0, b1)
	}
}
