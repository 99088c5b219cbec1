// Package parking implements the spot-inference and occupancy-matching
// engine: it turns classified line segments and vehicle detections into a
// deduplicated set of parking stalls with a free/occupied verdict per
// stall.
//
// # Pipeline
//
// Data flows strictly downward; each stage replaces its inputs with new
// output, so nothing is shared or mutated across stages:
//
//	ExtractSegments (internal/detection)
//	      |                       detections (external detector)
//	      v                             |
//	SynthesizeFromLines          EstimateRows
//	      \___________union___________/
//	                   |
//	              MergeSpots ------ ErrNoGeometry ------> manual-count fallback
//	                   |
//	            MatchOccupancy
//	                   |
//	               Result
//
// SynthesizeFromLines pairs adjacent painted lines into stall rectangles;
// EstimateRows extrapolates stalls from vehicle layout alone, so the two
// candidate sources are independent. MergeSpots deduplicates their union
// with provenance-aware greedy suppression. MatchOccupancy assigns
// detections to stalls one-to-one.
//
// # Degraded Mode
//
// Sparse geometry is never an error by itself: no lines, no detections, or
// both simply shrink the candidate set. Only when merging yields nothing
// does the engine fall back to the caller-supplied manual slot total, and
// only the combination of no geometry and no manual total fails the
// request (ErrMissingFallbackCount).
//
// # Concurrency
//
// The pipeline is a pure synchronous function of (image, detections,
// config). An Analyzer carries only immutable configuration and may be
// shared freely across goroutines.
package parking
