package parking

import (
	"math"
	"sort"

	"parkvision/internal/config"
	"parkvision/internal/detection"
)

// SynthesizeFromLines converts classified line segments into candidate
// stall rectangles.
//
// Vertical segments are treated as stall dividers: each adjacent pair
// (sorted left to right) whose horizontal gap is a plausible stall width
// produces one candidate spanning the gap and the vertical extent both
// lines share. Horizontal segments are treated as row boundaries
// symmetrically. Fewer than two segments of an orientation simply yields
// nothing for that branch.
func SynthesizeFromLines(segments []detection.Segment, width, height int, cfg config.Config) []CandidateSpot {
	var vertical, horizontal []detection.Segment
	for _, seg := range segments {
		switch seg.Orientation {
		case detection.Vertical:
			vertical = append(vertical, seg)
		case detection.Horizontal:
			horizontal = append(horizontal, seg)
		}
	}

	candidates := verticalPairSpots(vertical, width, height, cfg)
	candidates = append(candidates, horizontalPairSpots(horizontal, width, height, cfg)...)
	return candidates
}

// verticalPairSpots builds one candidate between each adjacent pair of
// vertical divider lines with a plausible gap and sufficient shared
// vertical span.
func verticalPairSpots(lines []detection.Segment, width, height int, cfg config.Config) []CandidateSpot {
	if len(lines) < 2 {
		return nil
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].MidX() < lines[j].MidX() })

	minGap := cfg.MinSpotWidthFrac * float64(width)
	maxGap := cfg.MaxSpotWidthFrac * float64(width)
	minSpan := cfg.MinSpotHeightFrac * float64(height)

	var spots []CandidateSpot
	for i := 0; i < len(lines)-1; i++ {
		left := lines[i]
		right := lines[i+1]

		leftX := left.MidX()
		rightX := right.MidX()
		gap := rightX - leftX
		if gap < minGap || gap > maxGap {
			continue
		}

		// The stall spans only the vertical range where both dividers exist.
		lTop, lBot := spanOf(left.Start.Y, left.End.Y)
		rTop, rBot := spanOf(right.Start.Y, right.End.Y)
		yTop := math.Max(lTop, rTop)
		yBot := math.Min(lBot, rBot)
		overlap := yBot - yTop
		if overlap < minSpan {
			continue
		}

		// Inset slightly so the spot sits between the painted lines rather
		// than on top of them; revert when the inset leaves too little.
		margin := math.Min(4, gap*0.08)
		x1 := leftX + margin
		x2 := rightX - margin
		if x2-x1 < minGap {
			x1, x2 = leftX, rightX
		}

		spots = append(spots, CandidateSpot{
			Bounds:     Rect{X1: x1, Y1: yTop, X2: x2, Y2: yBot},
			Provenance: VerticalPair,
			Score: pairScore(
				gap, minGap, maxGap,
				overlap/math.Max(lBot-lTop, rBot-rTop),
				math.Min(left.Length, right.Length)/(2*minSpan),
			),
		})
	}

	return spots
}

// horizontalPairSpots builds one candidate band between each adjacent pair
// of horizontal row lines with a plausible vertical gap and enough shared
// horizontal extent.
func horizontalPairSpots(lines []detection.Segment, width, height int, cfg config.Config) []CandidateSpot {
	if len(lines) < 2 {
		return nil
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].MidY() < lines[j].MidY() })

	minGap := cfg.MinSpotHeightFrac * float64(height)
	maxGap := cfg.MaxSpotHeightFrac * float64(height)
	minSpan := cfg.MinRowOverlapFrac * float64(width)

	var spots []CandidateSpot
	for i := 0; i < len(lines)-1; i++ {
		top := lines[i]
		bottom := lines[i+1]

		topY := top.MidY()
		bottomY := bottom.MidY()
		gap := bottomY - topY
		if gap < minGap || gap > maxGap {
			continue
		}

		tLeft, tRight := spanOf(top.Start.X, top.End.X)
		bLeft, bRight := spanOf(bottom.Start.X, bottom.End.X)
		xLeft := math.Max(tLeft, bLeft)
		xRight := math.Min(tRight, bRight)
		overlap := xRight - xLeft
		if overlap < minSpan {
			continue
		}

		spots = append(spots, CandidateSpot{
			Bounds:     Rect{X1: xLeft, Y1: topY, X2: xRight, Y2: bottomY},
			Provenance: HorizontalPair,
			Score: pairScore(
				gap, minGap, maxGap,
				overlap/math.Max(tRight-tLeft, bRight-bLeft),
				math.Min(top.Length, bottom.Length)/(2*minSpan),
			),
		})
	}

	return spots
}

// pairScore blends three signals into [0,1]: how close the gap sits to the
// middle of the plausible range, how much of the longer line the shared
// span covers, and how long the shorter line is relative to a minimal
// stall edge.
func pairScore(gap, minGap, maxGap, overlapFrac, lengthRatio float64) float64 {
	mid := (minGap + maxGap) / 2
	halfRange := (maxGap - minGap) / 2
	gapScore := 1 - math.Abs(gap-mid)/halfRange

	score := 0.4*clamp01(gapScore) + 0.3*clamp01(overlapFrac) + 0.3*clamp01(lengthRatio)
	return clamp01(score)
}

func spanOf(a, b int) (float64, float64) {
	if a > b {
		a, b = b, a
	}
	return float64(a), float64(b)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
