// Package engine orchestrates the task pipeline (aperture synthesis,
// raytracing, preprocessing, rasterizing, starburst diffraction, and
// diagram tracing) into complete renders of a [project.Project],
// dispatched across a worker pool and debounced so that only the latest
// of a burst of requests is ever fully computed.
package engine
