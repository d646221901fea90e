package compute

import (
	"fmt"
	"sync"

	"github.com/flarekit/flare"
)

// ComputeContext owns a Device and the kernels registered against it. The
// engine calls each task package's kernel registration function once, when
// it is created; [RegisterKernel] compiles a kernel as it is registered and
// [Dispatch] runs a registered kernel by name.
type ComputeContext struct {
	mu      sync.Mutex
	device  Device
	kernels map[string]*Kernel
}

// NewContext creates a ComputeContext bound to the named device. An empty
// name selects the best available device (a real GPU if present, otherwise
// the software fallback).
func NewContext(name string) (*ComputeContext, error) {
	d, err := newDevice(name)
	if err != nil {
		return nil, err
	}
	return &ComputeContext{
		device:  d,
		kernels: make(map[string]*Kernel),
	}, nil
}

// DeviceName returns the name of the underlying device.
func (c *ComputeContext) DeviceName() string {
	return c.device.Name()
}

// RegisterKernel adds a kernel to the context, compiling it immediately.
// Registering a kernel under a name that's already registered replaces it.
func (c *ComputeContext) RegisterKernel(k *Kernel) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.device.CompileKernel(k); err != nil {
		return err
	}
	c.kernels[k.Name] = k
	return nil
}

// Dispatch runs a registered kernel by name.
func (c *ComputeContext) Dispatch(name string, args KernelArgs) error {
	c.mu.Lock()
	k, ok := c.kernels[name]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("compute: kernel %q not registered: %w", name, flare.ErrKernelBuildFailed)
	}
	return c.device.Dispatch(k, args)
}

// Close releases the underlying device.
func (c *ComputeContext) Close() error {
	return c.device.Close()
}
