package compute

import (
	"fmt"
	"sync"

	"github.com/flarekit/flare"
)

// Device is a compute backend: something that can compile kernels and run
// dispatches, either on a real GPU or by falling back to a kernel's host
// mirror. Backends register a [DeviceFactory] under a name; tasks normally
// never construct a Device directly, instead asking for one through
// [NewContext].
type Device interface {
	// Name returns the backend identifier ("software", "wgpu", ...).
	Name() string

	// Available reports whether this device can actually be used on the
	// current machine (e.g. a GPU adapter was found). The software device
	// is always available.
	Available() bool

	// CompileKernel compiles a kernel's WGSL source for this device.
	// The software device does nothing here; host mirrors need no
	// compilation step.
	CompileKernel(k *Kernel) error

	// Dispatch runs a compiled kernel. Implementations that cannot yet
	// bind device buffers (the GPU device, currently) fall back to the
	// kernel's host mirror and log that they did so.
	Dispatch(k *Kernel, args KernelArgs) error

	// Close releases device resources.
	Close() error
}

// DeviceFactory creates a new Device instance.
type DeviceFactory func() Device

var (
	registryMu sync.RWMutex
	registry   = make(map[string]DeviceFactory)
	// priority lists devices from most to least preferred when newDevice
	// is called with an empty name. A real GPU device wins when present; the software
	// device is the universal fallback.
	priority = []string{"wgpu", "software"}
)

// RegisterDevice registers a device factory under name. Backend packages
// call this from an init() function.
func RegisterDevice(name string, factory DeviceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// AvailableDevices returns the names of all registered devices.
func AvailableDevices() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// newDevice looks up a device by name. An empty name selects the highest
// priority available device. Returns [flare.ErrDeviceUnavailable] if no
// matching device is registered or none are available.
func newDevice(name string) (Device, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if name != "" {
		factory, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("compute: device %q: %w", name, flare.ErrDeviceUnavailable)
		}
		d := factory()
		if !d.Available() {
			return nil, fmt.Errorf("compute: device %q not available on this machine: %w", name, flare.ErrDeviceUnavailable)
		}
		return d, nil
	}

	for _, candidate := range priority {
		factory, ok := registry[candidate]
		if !ok {
			continue
		}
		d := factory()
		if d.Available() {
			return d, nil
		}
	}
	return nil, fmt.Errorf("compute: %w", flare.ErrDeviceUnavailable)
}
