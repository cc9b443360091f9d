// Package raster implements the core CPU rasterization pipeline: clipping,
// gradient setup, edge walking, scan conversion, depth testing and shadow
// sampling.
package raster

import "errors"

// ErrInvariantViolation is returned by DrawMesh when the mesh fails its
// index-bounds invariant: the index count isn't a multiple of 3, or an
// index falls outside the vertex buffer. The renderer bounds-checks once
// at the call boundary rather than trusting per-triangle reads.
var ErrInvariantViolation = errors.New("raster: invariant violation")
