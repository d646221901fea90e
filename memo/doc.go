// Package memo provides the render engine's memoization cache.
//
// A [Cache] is keyed by a [flare.Fingerprint] of a build's inputs and is
// given its own capacity when created. The engine uses one: an 8-entry
// cache of loaded lens models. The other pipeline stages (aperture mask,
// ghost image, ray intersections, rasterized tiles, starburst pattern,
// diagram) are not cached and are recomputed on every render.
package memo
