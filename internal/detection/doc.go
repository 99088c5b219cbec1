// Package detection extracts classified straight line segments from
// parking lot imagery.
//
// This is the geometric half of the line extractor: the imaging package
// reduces a photograph to an edge mask, and this package runs a Hough line
// transform over that mask to recover the painted stall markings as
// Segment values tagged Vertical or Horizontal.
//
// # Algorithm Overview
//
//  1. Bright-line masking and Canny edge detection (internal/imaging)
//  2. Hough transform: edge pixels vote in (rho, theta) space
//  3. Peak extraction: local maxima above the configured vote threshold
//  4. Segment tracing: edge points near each peak line are projected onto
//     the line direction and split into runs at gaps, recovering true
//     endpoints rather than infinite lines
//  5. Classification: segments near 90° are Vertical, near 0°/180° are
//     Horizontal; diagonals are discarded
//
// # Coordinate System
//
// All coordinates use the standard image convention: origin (0,0) at the
// top-left corner, X increasing rightward, Y increasing downward. Angles
// follow atan2(dy, dx) in degrees.
//
// # Determinism
//
// For identical image bytes and configuration the output segment list is
// identical across runs: peak ordering is fully tie-broken and tracing
// consumes edge points in a fixed order. Zero segments is a valid result
// for an unmarked or poorly lit lot.
//
// # Performance Considerations
//
// The Hough transform iterates over every edge pixel for 180 angles and is
// the most expensive stage of the pipeline. Cost scales with edge density,
// which the brightness threshold keeps low for typical lot imagery.
package detection
