package parking

import (
	"sort"

	"parkvision/internal/config"
)

// MergeSpots deduplicates and filters the union of all candidate spots
// into the final stall set.
//
// Candidates are clipped to the image, then dropped when their aspect
// ratio or area fraction falls outside the configured bounds. Survivors
// are ordered by score descending (ties broken by provenance priority,
// line-derived geometry first, then by insertion order) and accepted
// greedily: a candidate is kept only if its IoU against every already-kept
// spot stays below cfg.DedupIoU. The kept set is capped at cfg.MaxSpots.
//
// An empty kept set returns ErrNoGeometry rather than an empty success, so
// the caller can take the manual-count fallback path.
func MergeSpots(candidates []CandidateSpot, width, height int, cfg config.Config) ([]Spot, error) {
	imageArea := float64(width) * float64(height)

	type ranked struct {
		CandidateSpot
		order int
	}

	filtered := make([]ranked, 0, len(candidates))
	for i, cand := range candidates {
		bounds := cand.Bounds.Clip(float64(width), float64(height))
		area := bounds.Area()
		if area <= 0 {
			continue
		}

		aspect := bounds.Aspect()
		if aspect < cfg.MinAspect || aspect > cfg.MaxAspect {
			continue
		}
		areaFrac := area / imageArea
		if areaFrac < cfg.MinAreaFrac || areaFrac > cfg.MaxAreaFrac {
			continue
		}

		cand.Bounds = bounds
		filtered = append(filtered, ranked{CandidateSpot: cand, order: i})
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Score != filtered[j].Score {
			return filtered[i].Score > filtered[j].Score
		}
		if pi, pj := filtered[i].Provenance.priority(), filtered[j].Provenance.priority(); pi != pj {
			return pi > pj
		}
		return filtered[i].order < filtered[j].order
	})

	kept := make([]Spot, 0, len(filtered))
	for _, cand := range filtered {
		if len(kept) >= cfg.MaxSpots {
			break
		}

		duplicate := false
		for _, existing := range kept {
			if IoU(cand.Bounds, existing.Bounds) >= cfg.DedupIoU {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		kept = append(kept, Spot{
			ID:             len(kept) + 1,
			Bounds:         cand.Bounds,
			Provenance:     cand.Provenance,
			Status:         Free,
			DetectionIndex: -1,
		})
	}

	if len(kept) == 0 {
		return nil, ErrNoGeometry
	}

	return kept, nil
}
