package compute

func init() {
	RegisterDevice("software", func() Device { return &softwareDevice{} })
}

// softwareDevice runs every kernel through its host mirror. It requires no
// adapter, driver, or shader compilation step and is always available,
// making it the fallback when no GPU is present and the reference device
// integration tests run against.
type softwareDevice struct{}

func (d *softwareDevice) Name() string { return "software" }

func (d *softwareDevice) Available() bool { return true }

func (d *softwareDevice) CompileKernel(k *Kernel) error {
	k.compiled = true
	return nil
}

func (d *softwareDevice) Dispatch(k *Kernel, args KernelArgs) error {
	return k.HostMirror(args)
}

func (d *softwareDevice) Close() error { return nil }
