package parking

import "parkvision/internal/detection"

// Method identifies how the slot counts in a Result were produced.
type Method string

const (
	// MethodComputerVision marks results backed by inferred stall geometry.
	MethodComputerVision Method = "computer_vision"

	// MethodManualCount marks degraded results produced from a
	// caller-supplied slot total when no geometry was usable.
	MethodManualCount Method = "manual_count"
)

// Result is the structured output of one analysis. It carries everything
// an external renderer, store, or dashboard needs: aggregate counts, the
// per-spot verdicts, the pass-through detections, and the line segments
// the geometry was built from.
//
// TotalSlots always equals OccupiedSlots + FreeSlots.
type Result struct {
	TotalSlots    int     `json:"total_slots"`
	OccupiedSlots int     `json:"occupied_slots"`
	FreeSlots     int     `json:"free_slots"`
	Confidence    float64 `json:"confidence"`
	Method        Method  `json:"spot_detection_method"`

	Spots      []Spot              `json:"spots,omitempty"`
	Detections []Detection         `json:"detections,omitempty"`
	Segments   []detection.Segment `json:"lines,omitempty"`
}

// assembleResult packages matched spots into a computer-vision Result.
// Pure aggregation: no geometric decisions are made here.
func assembleResult(spots []Spot, detections []Detection, segments []detection.Segment, confidence float64) *Result {
	occupied := 0
	for _, spot := range spots {
		if spot.Status == Occupied {
			occupied++
		}
	}

	return &Result{
		TotalSlots:    len(spots),
		OccupiedSlots: occupied,
		FreeSlots:     len(spots) - occupied,
		Confidence:    confidence,
		Method:        MethodComputerVision,
		Spots:         spots,
		Detections:    detections,
		Segments:      segments,
	}
}

// fallbackResult produces the degraded manual-count Result: the caller's
// total, occupancy from the raw detection count, no per-spot detail.
func fallbackResult(detections []Detection, totalSlots int, confidence float64) *Result {
	occupied := len(detections)
	if occupied > totalSlots {
		occupied = totalSlots
	}

	return &Result{
		TotalSlots:    totalSlots,
		OccupiedSlots: occupied,
		FreeSlots:     totalSlots - occupied,
		Confidence:    confidence,
		Method:        MethodManualCount,
		Detections:    detections,
	}
}
