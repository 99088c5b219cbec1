package parking

import "errors"

// ErrNoGeometry signals that no usable stall geometry survived merging.
// It is not a user-visible failure: the analyzer consumes it to select the
// manual-count fallback branch.
var ErrNoGeometry = errors.New("no usable stall geometry found")

// ErrMissingFallbackCount is surfaced to the caller when geometry yields
// nothing AND no manual slot total was supplied. Without either signal the
// engine cannot produce any count.
var ErrMissingFallbackCount = errors.New("no stall geometry detected and no manual slot count supplied")
