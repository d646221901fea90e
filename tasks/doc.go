// Package tasks implements the render engine's DAG nodes: aperture
// synthesis, ghost pre-filtering, ray tracing, ghost-path culling, the
// binned spectral rasterizer, the starburst diffraction pattern, the
// diagram cross-section view, and light-image sampling. Each task owns a
// [compute.Kernel] registered against a [compute.ComputeContext]; the
// kernel's WGSL source documents the GPU implementation, and its HostMirror
// is a no-op. The algorithms themselves are this package's exported
// functions, which the engine calls directly and the tests exercise.
package tasks
