package flare

import "errors"

// Sentinel error kinds. These are the error *kinds* named by the render
// engine's error-handling design: fatal-to-the-engine kinds that require a
// device restart, fatal-to-the-render kinds that are recoverable by fixing
// inputs, and non-fatal kinds that are logged and otherwise ignored.
//
// Tasks and the engine wrap these with fmt.Errorf("...: %w", ErrX) so that
// errors.Is still matches the kind while the message carries the specifics.
var (
	// ErrDeviceUnavailable is returned when no device matches the requested
	// name. Fatal for the engine; the caller must restart with another device.
	ErrDeviceUnavailable = errors.New("flare: no matching compute device")

	// ErrKernelBuildFailed is returned when kernel compilation fails. Fatal
	// for the engine; the caller must restart with another device or source.
	ErrKernelBuildFailed = errors.New("flare: kernel build failed")

	// ErrBadProject is returned when a Project fails to parse or validate.
	// Fatal for the current render, recoverable by fixing the input file.
	ErrBadProject = errors.New("flare: invalid project")

	// ErrBadLensModel is returned when a lens model fails to parse or its
	// aperture index is out of range.
	ErrBadLensModel = errors.New("flare: invalid lens model")

	// ErrBadGlassLibrary is returned when a glass manufacturer directory
	// fails to parse.
	ErrBadGlassLibrary = errors.New("flare: invalid glass library")

	// ErrBadApertureImage is returned when an aperture overlay image fails
	// to decode.
	ErrBadApertureImage = errors.New("flare: invalid aperture image")

	// ErrOutOfDeviceMemory is returned when a device allocation fails.
	// Typically raised by the rasterizer or binner; the caller should retry
	// with a lower resolution, bin size, or grid count.
	ErrOutOfDeviceMemory = errors.New("flare: out of device memory")

	// ErrWriteFailed is returned when writing a rendered image to disk
	// fails. Non-fatal: the render is still considered successful for
	// other elements.
	ErrWriteFailed = errors.New("flare: failed to write image")

	// ErrCancelled is returned cooperatively when a render's generation is
	// superseded before completion. Not an error in the outer API — callers
	// observe it as a terminal Cancelled status, not a returned error.
	ErrCancelled = errors.New("flare: render cancelled")
)
