package parking

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"parkvision/internal/config"
)

// EstimateRows infers candidate stalls purely from the layout of detected
// vehicles, with no dependence on painted geometry.
//
// Detections are clustered into rows by vertical center using
// single-linkage grouping with a cutoff of cfg.RowTolerance times the
// median box height. Within each row the pitch (center-to-center spacing)
// is the empirical median of consecutive gaps; the row's horizontal extent
// is walked in pitch-sized steps, emitting one candidate per step sized by
// the row's median box. This covers both occupied positions and inferred
// empty bays between and around them.
//
// A row holding a single detection has no inferable pitch and contributes
// exactly one candidate centered on that detection.
func EstimateRows(detections []Detection, width, height int, cfg config.Config) []CandidateSpot {
	if len(detections) == 0 {
		return nil
	}

	heights := make([]float64, len(detections))
	for i, det := range detections {
		heights[i] = det.Bounds.Height()
	}
	cutoff := cfg.RowTolerance * median(heights)
	if cutoff <= 0 {
		return nil
	}

	var candidates []CandidateSpot
	for _, row := range clusterRows(detections, cutoff) {
		candidates = append(candidates, rowCandidates(row, width, height)...)
	}
	return candidates
}

// clusterRows groups detections into rows by vertical center. Detections
// are ordered by center y; a gap larger than cutoff between consecutive
// centers starts a new row, which is exactly single-linkage clustering in
// one dimension.
func clusterRows(detections []Detection, cutoff float64) [][]Detection {
	sorted := append([]Detection(nil), detections...)
	sort.SliceStable(sorted, func(i, j int) bool {
		_, ay := sorted[i].Bounds.Center()
		_, by := sorted[j].Bounds.Center()
		if ay != by {
			return ay < by
		}
		ax, _ := sorted[i].Bounds.Center()
		bx, _ := sorted[j].Bounds.Center()
		return ax < bx
	})

	var rows [][]Detection
	var row []Detection
	var prevY float64

	for i, det := range sorted {
		_, cy := det.Bounds.Center()
		if i > 0 && cy-prevY > cutoff {
			rows = append(rows, row)
			row = nil
		}
		row = append(row, det)
		prevY = cy
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return rows
}

// rowCandidates emits the pitch-walk candidates for one row.
func rowCandidates(row []Detection, width, height int) []CandidateSpot {
	if len(row) == 1 {
		// No pitch to infer: one candidate, centered on the vehicle.
		bounds := row[0].Bounds.Clip(float64(width), float64(height))
		if bounds.Area() <= 0 {
			return nil
		}
		return []CandidateSpot{{
			Bounds:     bounds,
			Provenance: RowEstimate,
			Score:      0.5,
		}}
	}

	sort.SliceStable(row, func(i, j int) bool {
		ax, _ := row[i].Bounds.Center()
		bx, _ := row[j].Bounds.Center()
		return ax < bx
	})

	centersX := make([]float64, len(row))
	centersY := make([]float64, len(row))
	widths := make([]float64, len(row))
	heights := make([]float64, len(row))
	for i, det := range row {
		centersX[i], centersY[i] = det.Bounds.Center()
		widths[i] = det.Bounds.Width()
		heights[i] = det.Bounds.Height()
	}

	gaps := make([]float64, len(row)-1)
	for i := 1; i < len(row); i++ {
		gaps[i-1] = centersX[i] - centersX[i-1]
	}

	pitch := median(gaps)
	slotW := median(widths)
	slotH := median(heights)
	if pitch < 1 {
		// Degenerate spacing (stacked detections); fall back to box width.
		pitch = math.Max(slotW, 1)
	}

	rowY := median(centersY)

	// Walk the row extent from first to last center, one slot per pitch.
	span := centersX[len(centersX)-1] - centersX[0]
	steps := int(math.Round(span/pitch)) + 1
	if steps < len(row) {
		steps = len(row)
	}

	candidates := make([]CandidateSpot, 0, steps)
	for i := 0; i < steps; i++ {
		cx := centersX[0] + float64(i)*pitch
		bounds := Rect{
			X1: cx - slotW/2,
			Y1: rowY - slotH/2,
			X2: cx + slotW/2,
			Y2: rowY + slotH/2,
		}.Clip(float64(width), float64(height))

		// Drop slots clipped to a sliver at the image border.
		if bounds.Width() < slotW/2 || bounds.Height() < slotH/2 {
			continue
		}

		candidates = append(candidates, CandidateSpot{
			Bounds:     bounds,
			Provenance: RowEstimate,
			Score:      0.5,
		})
	}

	return candidates
}

// median returns the empirical median of values. The input is not
// modified. For even-length input this is the lower median, which keeps
// pitch estimation stable when a row has one oversized gap.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
