package compute

import "testing"

func TestNewContextSoftware(t *testing.T) {
	ctx, err := NewContext("software")
	if err != nil {
		t.Fatalf("NewContext(software) = %v", err)
	}
	if ctx.DeviceName() != "software" {
		t.Errorf("DeviceName() = %q, want software", ctx.DeviceName())
	}
}

func TestNewContextDefaultFallsBackToSoftware(t *testing.T) {
	ctx, err := NewContext("")
	if err != nil {
		t.Fatalf("NewContext(\"\") = %v", err)
	}
	// In this environment no real adapter is available, so the priority
	// list must fall through to software.
	if ctx.DeviceName() != "software" {
		t.Errorf("DeviceName() = %q, want software", ctx.DeviceName())
	}
}

func TestNewContextUnknownDevice(t *testing.T) {
	_, err := NewContext("nonexistent-device")
	if err == nil {
		t.Fatal("expected error for unknown device")
	}
}

func TestRegisterAndDispatchKernel(t *testing.T) {
	ctx, err := NewContext("software")
	if err != nil {
		t.Fatal(err)
	}

	var ran bool
	k := &Kernel{
		Name:       "double",
		EntryPoint: "cs_double",
		WGSL:       "@compute @workgroup_size(1) fn cs_double() {}",
		HostMirror: func(args KernelArgs) error {
			ran = true
			buf := args.Buffers["data"].([]float32)
			for i := range buf {
				buf[i] *= 2
			}
			return nil
		},
	}
	if err := ctx.RegisterKernel(k); err != nil {
		t.Fatalf("RegisterKernel: %v", err)
	}

	data := []float32{1, 2, 3}
	err = ctx.Dispatch("double", KernelArgs{Buffers: map[string]any{"data": data}})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !ran {
		t.Error("host mirror did not run")
	}
	want := []float32{2, 4, 6}
	for i, v := range data {
		if v != want[i] {
			t.Errorf("data[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestDispatchUnknownKernel(t *testing.T) {
	ctx, err := NewContext("software")
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Dispatch("missing", KernelArgs{}); err == nil {
		t.Fatal("expected error dispatching unregistered kernel")
	}
}
