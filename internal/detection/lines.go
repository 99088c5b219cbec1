package detection

import (
	"image"
	"math"
	"sort"

	"parkvision/internal/config"
	"parkvision/internal/imaging"
)

// maxSegments bounds the number of segments returned for one image. Lots
// with heavy texture can produce hundreds of Hough peaks; everything past
// the strongest maxSegments is noise for stall synthesis.
const maxSegments = 100

// Orientation classifies a line segment relative to the image axes.
type Orientation int

const (
	// Discarded marks diagonal segments that are neither close enough to
	// vertical nor to horizontal. They never survive past classification.
	Discarded Orientation = iota

	// Vertical segments are within the configured angle tolerance of 90°.
	Vertical

	// Horizontal segments are within the tolerance of 0°/180°.
	Horizontal
)

// String returns the lowercase name of the orientation.
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "discarded"
	}
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Segment represents a detected straight line segment.
type Segment struct {
	Start        Point       `json:"start"`
	End          Point       `json:"end"`
	Length       float64     `json:"length"`
	AngleDegrees float64     `json:"angle_degrees"`
	Orientation  Orientation `json:"-"`
}

// MidX returns the horizontal midpoint of the segment.
func (s Segment) MidX() float64 {
	return float64(s.Start.X+s.End.X) / 2
}

// MidY returns the vertical midpoint of the segment.
func (s Segment) MidY() float64 {
	return float64(s.Start.Y+s.End.Y) / 2
}

// ExtractSegments finds classified straight line segments in a parking lot
// image.
//
// The image is reduced to a bright-line mask, edge detected, and run
// through a Hough transform. Each resulting segment is classified as
// Vertical or Horizontal within cfg.AngleToleranceDeg; diagonal segments
// are dropped, as are segments shorter than cfg.MinLineLengthFrac of the
// smaller image dimension.
//
// The output is deterministic for identical input and configuration, and
// an empty result is a valid outcome, not an error.
func ExtractSegments(img image.Image, cfg config.Config) []Segment {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	mask := imaging.BrightMask(img, cfg.BrightnessThreshold)
	edges := imaging.EdgeMask(mask, cfg.EdgeLowThreshold, cfg.EdgeHighThreshold)

	minDim := width
	if height < minDim {
		minDim = height
	}
	minLength := cfg.MinLineLengthFrac * float64(minDim)

	raw := segmentsFromEdges(edges, width, height, cfg.HoughThreshold, cfg.MaxLineGap, minLength)

	segments := make([]Segment, 0, len(raw))
	for _, seg := range raw {
		seg.Orientation = classify(seg.AngleDegrees, cfg.AngleToleranceDeg)
		if seg.Orientation == Discarded {
			continue
		}
		segments = append(segments, seg)
	}

	return segments
}

// classify tags an angle (degrees, atan2 convention) as Vertical,
// Horizontal, or Discarded given the tolerance around the axes.
func classify(angleDeg, tolerance float64) Orientation {
	abs := math.Abs(angleDeg)
	switch {
	case math.Abs(abs-90) <= tolerance:
		return Vertical
	case abs <= tolerance || abs >= 180-tolerance:
		return Horizontal
	default:
		return Discarded
	}
}

// segmentsFromEdges runs a Hough transform over the edge mask and traces
// segments along each accumulator peak.
//
// Edge points within 2px of a peak's line are projected onto the line
// direction and split into runs wherever the gap between consecutive
// points exceeds maxGap; each run at least minLength long becomes one
// segment. Points consumed by a segment are cleared so overlapping peaks
// don't report the same paint stripe twice.
func segmentsFromEdges(edges [][]bool, width, height int, voteThreshold int, maxGap, minLength float64) []Segment {
	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	numAngles := 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	// Vote in Hough space
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	// Find peaks in the accumulator (local maxima above the vote threshold)
	type peak struct {
		rho   int
		theta int
		votes int
	}
	peaks := make([]peak, 0)

	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			if accumulator[rhoIdx][theta] < voteThreshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 {
						if accumulator[nr][nt] > accumulator[rhoIdx][theta] {
							isMax = false
						}
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{
					rho:   rhoIdx - maxDist,
					theta: theta,
					votes: accumulator[rhoIdx][theta],
				})
			}
		}
	}

	// Strongest peaks first; rho/theta break ties so ordering is stable
	// across runs.
	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].votes != peaks[j].votes {
			return peaks[i].votes > peaks[j].votes
		}
		if peaks[i].rho != peaks[j].rho {
			return peaks[i].rho < peaks[j].rho
		}
		return peaks[i].theta < peaks[j].theta
	})

	segments := make([]Segment, 0)

	for _, pk := range peaks {
		if len(segments) >= maxSegments {
			break
		}

		angle := float64(pk.theta) * math.Pi / 180.0
		rho := float64(pk.rho)
		cosA := math.Cos(angle)
		sinA := math.Sin(angle)

		// Collect remaining edge points on this line (within tolerance)
		type linePoint struct {
			x, y int
			t    float64
		}
		points := make([]linePoint, 0)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges[y][x] {
					continue
				}
				dist := math.Abs(float64(x)*cosA + float64(y)*sinA - rho)
				if dist < 2.0 {
					// Project onto the line direction (-sinA, cosA)
					t := -float64(x)*sinA + float64(y)*cosA
					points = append(points, linePoint{x: x, y: y, t: t})
				}
			}
		}

		if len(points) < 2 {
			continue
		}

		sort.Slice(points, func(i, j int) bool { return points[i].t < points[j].t })

		// Split into runs at gaps larger than maxGap
		runStart := 0
		flush := func(start, end int) {
			first := points[start]
			last := points[end]
			dx := float64(last.x - first.x)
			dy := float64(last.y - first.y)
			length := math.Sqrt(dx*dx + dy*dy)
			if length < minLength {
				return
			}

			for i := start; i <= end; i++ {
				edges[points[i].y][points[i].x] = false
			}

			segments = append(segments, Segment{
				Start:        Point{X: first.x, Y: first.y},
				End:          Point{X: last.x, Y: last.y},
				Length:       math.Round(length*10) / 10,
				AngleDegrees: math.Round(math.Atan2(dy, dx)*180/math.Pi*10) / 10,
			})
		}

		for i := 1; i < len(points); i++ {
			if points[i].t-points[i-1].t > maxGap {
				flush(runStart, i-1)
				runStart = i
			}
		}
		flush(runStart, len(points)-1)
	}

	return segments
}
