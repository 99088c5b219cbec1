package parking

import "sort"

// Detection is one vehicle bounding box produced by the external object
// detector. The pipeline treats detections as read-only input.
type Detection struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
	Bounds     Rect    `json:"bounds"`
}

// DedupeDetections applies greedy non-maximum suppression to the incoming
// detections: sorted by confidence descending, a detection is kept only if
// its IoU against every already-kept detection stays below iouThreshold.
//
// The input slice is not modified; the returned slice is ordered by
// confidence descending with the original order breaking ties.
func DedupeDetections(detections []Detection, iouThreshold float64) []Detection {
	if len(detections) <= 1 {
		return append([]Detection(nil), detections...)
	}

	sorted := append([]Detection(nil), detections...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	kept := make([]Detection, 0, len(sorted))
	for _, det := range sorted {
		overlaps := false
		for _, k := range kept {
			if IoU(det.Bounds, k.Bounds) > iouThreshold {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, det)
		}
	}

	return kept
}
