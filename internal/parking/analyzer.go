package parking

import (
	"errors"
	"fmt"
	"image"

	"parkvision/internal/config"
	"parkvision/internal/detection"
	"parkvision/internal/imaging"
)

// phase tracks a single analysis through the pipeline. matched and
// fallback are the two terminal predecessors of done; fallback is entered
// only from merged, when the merge step signals no usable geometry.
type phase int

const (
	phaseInit phase = iota
	phaseLinesExtracted
	phaseCandidatesBuilt
	phaseMerged
	phaseMatched
	phaseFallback
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseInit:
		return "init"
	case phaseLinesExtracted:
		return "lines_extracted"
	case phaseCandidatesBuilt:
		return "candidates_built"
	case phaseMerged:
		return "merged"
	case phaseMatched:
		return "matched"
	case phaseFallback:
		return "fallback"
	case phaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// canTransition reports whether next is a legal successor of p.
func canTransition(p, next phase) bool {
	switch p {
	case phaseInit:
		return next == phaseLinesExtracted
	case phaseLinesExtracted:
		return next == phaseCandidatesBuilt
	case phaseCandidatesBuilt:
		return next == phaseMerged
	case phaseMerged:
		return next == phaseMatched || next == phaseFallback
	case phaseMatched, phaseFallback:
		return next == phaseDone
	default:
		return false
	}
}

// run is the per-invocation pipeline state. Each Analyze call owns one.
type run struct {
	phase phase
}

// advance moves the run to the next phase, panicking on a transition the
// pipeline can never legally make. Such a panic is a programming error in
// this package, not a data-dependent condition.
func (r *run) advance(next phase) {
	if !canTransition(r.phase, next) {
		panic(fmt.Sprintf("parking: illegal phase transition %s -> %s", r.phase, next))
	}
	r.phase = next
}

// Analyzer runs the full spot-inference and occupancy-matching pipeline.
//
// An Analyzer holds only an immutable validated configuration, so a single
// value may serve any number of concurrent Analyze calls; each call owns
// its intermediate data exclusively.
type Analyzer struct {
	cfg config.Config
}

// NewAnalyzer validates cfg and returns an Analyzer. Out-of-range
// thresholds are a fatal initialization error, never a per-request one.
func NewAnalyzer(cfg config.Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg}, nil
}

// Analyze infers parking stalls in img, decides which are occupied by the
// supplied vehicle detections, and reports slot counts.
//
// detections comes from the external object detector and is not modified;
// an empty list is valid. manualTotal is the optional caller-supplied slot
// count used only when no stall geometry can be inferred; pass 0 when
// unknown. If geometry is unusable AND manualTotal is 0, Analyze fails
// with ErrMissingFallbackCount.
//
// The result is a pure function of (img, detections, manualTotal) and the
// Analyzer's configuration: repeated calls produce identical results.
func (a *Analyzer) Analyze(img image.Image, detections []Detection, manualTotal int) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", imaging.ErrInvalidImage)
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: zero-dimension image %dx%d", imaging.ErrInvalidImage, width, height)
	}

	r := &run{phase: phaseInit}

	segments := detection.ExtractSegments(img, a.cfg)
	r.advance(phaseLinesExtracted)

	dets := DedupeDetections(detections, a.cfg.NMSIoU)

	candidates := SynthesizeFromLines(segments, width, height, a.cfg)
	candidates = append(candidates, EstimateRows(dets, width, height, a.cfg)...)
	r.advance(phaseCandidatesBuilt)

	// Merging always completes, even when it signals no geometry: the
	// fallback branch is a successor of the merge step, not a bypass of it.
	spots, err := MergeSpots(candidates, width, height, a.cfg)
	r.advance(phaseMerged)
	if errors.Is(err, ErrNoGeometry) {
		r.advance(phaseFallback)
		if manualTotal <= 0 {
			return nil, ErrMissingFallbackCount
		}
		result := fallbackResult(dets, manualTotal, a.cfg.FallbackConfidence)
		r.advance(phaseDone)
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	matched, confidence := MatchOccupancy(spots, dets, a.cfg)
	r.advance(phaseMatched)

	result := assembleResult(matched, dets, segments, confidence)
	r.advance(phaseDone)

	return result, nil
}
