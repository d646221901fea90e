package flare

import (
	"math"
	"testing"
)

func TestFingerprintDeterministic(t *testing.T) {
	a := NewFingerprintBuilder().WriteString("lens").WriteFloat64(1.5).Sum()
	b := NewFingerprintBuilder().WriteString("lens").WriteFloat64(1.5).Sum()
	if a != b {
		t.Errorf("identical inputs produced different fingerprints: %v != %v", a, b)
	}
}

func TestFingerprintBitExact(t *testing.T) {
	const x = 1.0
	nextUp := math.Nextafter(x, math.Inf(1))

	a := NewFingerprintBuilder().WriteFloat64(x).Sum()
	b := NewFingerprintBuilder().WriteFloat64(nextUp).Sum()
	if a == b {
		t.Error("fingerprints of adjacent float64 values collided; hashing must be bit-exact")
	}
}

func TestFingerprintStringDelimiterAvoidsCollision(t *testing.T) {
	a := NewFingerprintBuilder().WriteString("ab").WriteString("c").Sum()
	b := NewFingerprintBuilder().WriteString("a").WriteString("bc").Sum()
	if a == b {
		t.Error("WriteString should delimit fields so concatenation boundaries matter")
	}
}

func TestFingerprintNotZero(t *testing.T) {
	f := NewFingerprintBuilder().WriteString("x").Sum()
	if f.IsZero() {
		t.Error("non-trivial input produced a zero fingerprint")
	}
}

func TestFingerprintStringFormat(t *testing.T) {
	f := Fingerprint{Hi: 0x1, Lo: 0x2}
	want := "00000000000000010000000000000002"
	if got := f.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
