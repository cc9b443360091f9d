package math3d

import "errors"

// ErrNonFinite is returned when an operation would otherwise produce a
// non-finite result: normalizing a zero-length vector, or inverting a
// singular matrix. Callers are expected to construct non-degenerate
// inputs; this package never silently substitutes a fallback value.
var ErrNonFinite = errors.New("math3d: non-finite result")
