package parking

import "math"

// Rect is an axis-aligned bounding box in pixel coordinates.
//
// (X1, Y1) is the top-left corner and (X2, Y2) the bottom-right corner.
// Coordinates are floating point because stall rectangles are synthesized
// from line midpoints and medians, not pixel grid positions.
type Rect struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.X2 - r.X1 }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }

// Area returns the rectangle's area, or 0 for degenerate rectangles.
func (r Rect) Area() float64 {
	if r.X2 <= r.X1 || r.Y2 <= r.Y1 {
		return 0
	}
	return r.Width() * r.Height()
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Diagonal returns the corner-to-corner length of the rectangle. It is the
// normalization base for center-distance matching.
func (r Rect) Diagonal() float64 {
	w := r.Width()
	h := r.Height()
	return math.Sqrt(w*w + h*h)
}

// Aspect returns width divided by height, guarding against degenerate
// heights.
func (r Rect) Aspect() float64 {
	h := r.Height()
	if h <= 0 {
		return 0
	}
	return r.Width() / h
}

// Clip constrains the rectangle to the image bounds [0,width]x[0,height].
func (r Rect) Clip(width, height float64) Rect {
	return Rect{
		X1: math.Max(0, r.X1),
		Y1: math.Max(0, r.Y1),
		X2: math.Min(width, r.X2),
		Y2: math.Min(height, r.Y2),
	}
}

// CenterDistance returns the Euclidean distance between the centers of two
// rectangles.
func CenterDistance(a, b Rect) float64 {
	ax, ay := a.Center()
	bx, by := b.Center()
	dx := ax - bx
	dy := ay - by
	return math.Sqrt(dx*dx + dy*dy)
}

// IoU returns the intersection-over-union of two rectangles: the overlap
// area divided by the union area, in [0,1]. Non-overlapping rectangles
// score 0.
func IoU(a, b Rect) float64 {
	x1 := math.Max(a.X1, b.X1)
	y1 := math.Max(a.Y1, b.Y1)
	x2 := math.Min(a.X2, b.X2)
	y2 := math.Min(a.Y2, b.Y2)

	if x2 <= x1 || y2 <= y1 {
		return 0
	}

	intersection := (x2 - x1) * (y2 - y1)
	union := a.Area() + b.Area() - intersection
	if union <= 0 {
		return 0
	}
	return intersection / union
}
