// Package compute provides the device/queue/kernel abstraction the render
// engine's tasks dispatch work through.
//
// A [ComputeContext] is obtained by name via [NewContext] ("" selects the
// best available device, preferring a real GPU over the CPU fallback). The
// engine registers every task's kernels against its context once, when the
// engine is created, each kernel giving a WGSL source string (compiled to
// SPIR-V via naga when a GPU device is active) and a host-mirror Go
// function. Dispatch runs the host mirror on both devices: the GPU device
// does not bind buffers, so it executes the host mirror as well, and no
// result is compared against another.
package compute
