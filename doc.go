// Package flare provides the shared leaf types for a physically-based
// lens-flare render engine: vectors, display-referred color, cache
// fingerprints, host-resident images, structured logging and the engine's
// error kinds.
//
// # Overview
//
// The render engine turns a lens prescription, a light direction and a
// render configuration into images of the ghosts and starburst pattern a
// real camera lens would produce. This package holds the types every other
// package in the module depends on — [Vec2], [Vec3], [RGBA], [Fingerprint],
// [FloatImage] and [Pixmap] — so that subpackages never need to import each
// other just to share a vector type.
//
// # Subpackages
//
//   - compute: device/queue/kernel-registry abstraction over a compute API
//   - memo: fingerprint-keyed memoization cache with LRU eviction
//   - lens: lens prescriptions, glass libraries, ghost-path enumeration
//   - spectrum: CIE XYZ tables and wavelength sampling
//   - project: the Project data model and its JSON storage layer
//   - tasks: the pipeline stages (aperture, ghost, raytracing, rasterizing,
//     starburst, diagram, preprocessing, image sampling)
//   - engine: the orchestrating DAG runner and its cancellation model
package flare
