package parking

import "encoding/json"

// Provenance records which synthesis method produced a candidate spot.
// It drives tie-breaking during deduplication: geometry derived from
// painted lines outranks stalls extrapolated from vehicle layout.
type Provenance int

const (
	// VerticalPair spots sit between two adjacent vertical divider lines.
	VerticalPair Provenance = iota

	// HorizontalPair spots span the band between two adjacent horizontal
	// row lines.
	HorizontalPair

	// RowEstimate spots are extrapolated from the layout of detected
	// vehicles, independent of any painted geometry.
	RowEstimate
)

// String returns the snake_case name used in serialized results.
func (p Provenance) String() string {
	switch p {
	case VerticalPair:
		return "vertical_pair"
	case HorizontalPair:
		return "horizontal_pair"
	case RowEstimate:
		return "row_estimate"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the provenance as its string name.
func (p Provenance) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// fromLines reports whether the spot geometry came from painted lines
// rather than vehicle-layout extrapolation.
func (p Provenance) fromLines() bool {
	return p == VerticalPair || p == HorizontalPair
}

// priority orders provenances for deduplication tie-breaks; higher wins.
func (p Provenance) priority() int {
	switch p {
	case VerticalPair:
		return 3
	case HorizontalPair:
		return 2
	default:
		return 1
	}
}

// CandidateSpot is an unconfirmed stall proposal. Candidates exist only
// within one pipeline invocation; the merger either promotes them to Spot
// or drops them.
type CandidateSpot struct {
	Bounds     Rect
	Provenance Provenance

	// Score in [0,1] ranks candidates for greedy deduplication. Higher
	// scores reflect more plausible stall geometry.
	Score float64
}

// Status is the occupancy verdict for a final spot.
type Status int

const (
	// Free spots received no vehicle assignment.
	Free Status = iota

	// Occupied spots are matched one-to-one with a vehicle detection.
	Occupied
)

// String returns "free" or "occupied".
func (s Status) String() string {
	if s == Occupied {
		return "occupied"
	}
	return "free"
}

// MarshalJSON serializes the status as its string name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Spot is one inferred parking stall in the final, deduplicated set.
//
// Invariants maintained by the pipeline: any two spots in a result have
// IoU below the dedup threshold, every bounds lies within the image, and
// an Occupied spot references exactly one detection that no other spot
// references.
type Spot struct {
	ID         int        `json:"id"`
	Bounds     Rect       `json:"bounds"`
	Provenance Provenance `json:"provenance"`
	Status     Status     `json:"status"`

	// DetectionIndex is the index into the result's detection list of the
	// matched vehicle, or -1 for a free spot.
	DetectionIndex int `json:"detection_index"`

	// MatchConfidence is the confidence of the occupancy verdict for an
	// occupied spot, 0 for a free one.
	MatchConfidence float64 `json:"match_confidence"`
}
