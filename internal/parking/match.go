package parking

import (
	"math"
	"sort"

	"parkvision/internal/config"
)

// Weights for the overall confidence blend: matched-detection confidence
// versus the fraction of spots whose geometry came from painted lines.
const (
	detectionConfWeight = 0.6
	geometryFracWeight  = 0.4
)

// MatchOccupancy assigns vehicle detections to final spots one-to-one and
// returns the spot list with statuses set, plus the overall confidence.
//
// Every (spot, detection) pair with IoU at least cfg.WeakMatchIoU is a
// match candidate. Pairs are taken greedily in IoU order; a pair is
// assigned when its IoU reaches cfg.MatchIoU outright, or when the
// detection center lies within cfg.CenterDistRatio of the spot diagonal
// for a weak overlap. A spot or detection participates in at most one
// assignment.
//
// Equal-IoU pairs are ordered by detection confidence descending, then by
// spot id ascending, then by detection index ascending. The rule is
// arbitrary but total, which keeps results byte-identical across runs.
//
// The returned confidence rewards both confident vehicle detections and
// well-marked lots: it blends the mean confidence of matched detections
// with the fraction of spots derived from painted-line geometry.
func MatchOccupancy(spots []Spot, detections []Detection, cfg config.Config) ([]Spot, float64) {
	out := append([]Spot(nil), spots...)

	type pair struct {
		spot  int
		det   int
		iou   float64
		ndist float64
	}

	var pairs []pair
	for si, spot := range out {
		diag := spot.Bounds.Diagonal()
		for di, det := range detections {
			iou := IoU(spot.Bounds, det.Bounds)
			if iou < cfg.WeakMatchIoU {
				continue
			}
			ndist := 1.0
			if diag > 0 {
				ndist = CenterDistance(spot.Bounds, det.Bounds) / diag
			}
			pairs = append(pairs, pair{spot: si, det: di, iou: iou, ndist: ndist})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].iou != pairs[j].iou {
			return pairs[i].iou > pairs[j].iou
		}
		ci := detections[pairs[i].det].Confidence
		cj := detections[pairs[j].det].Confidence
		if ci != cj {
			return ci > cj
		}
		if out[pairs[i].spot].ID != out[pairs[j].spot].ID {
			return out[pairs[i].spot].ID < out[pairs[j].spot].ID
		}
		return pairs[i].det < pairs[j].det
	})

	spotUsed := make([]bool, len(out))
	detUsed := make([]bool, len(detections))

	for _, p := range pairs {
		if spotUsed[p.spot] || detUsed[p.det] {
			continue
		}
		strong := p.iou >= cfg.MatchIoU
		weak := p.iou >= cfg.WeakMatchIoU && p.ndist <= cfg.CenterDistRatio
		if !strong && !weak {
			continue
		}

		out[p.spot].Status = Occupied
		out[p.spot].DetectionIndex = p.det
		out[p.spot].MatchConfidence = math.Min(1, 2*p.iou+0.3)
		spotUsed[p.spot] = true
		detUsed[p.det] = true
	}

	return out, overallConfidence(out, detections)
}

// overallConfidence blends mean matched-detection confidence with the
// fraction of spots whose provenance is painted-line geometry.
func overallConfidence(spots []Spot, detections []Detection) float64 {
	if len(spots) == 0 {
		return 0
	}

	var confSum float64
	var matched int
	var fromLines int

	for _, spot := range spots {
		if spot.Provenance.fromLines() {
			fromLines++
		}
		if spot.Status == Occupied {
			confSum += detections[spot.DetectionIndex].Confidence
			matched++
		}
	}

	meanConf := 0.0
	if matched > 0 {
		meanConf = confSum / float64(matched)
	}
	geomFrac := float64(fromLines) / float64(len(spots))

	return detectionConfWeight*meanConf + geometryFracWeight*geomFrac
}
