// Package render draws analysis overlays: detected line segments, stall
// rectangles colored by occupancy, id badges, and a summary banner.
//
// Rendering is pure presentation. It consumes a finished parking.Result
// and makes no geometric decisions of its own.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/lucasb-eyer/go-colorful"

	"parkvision/internal/detection"
	"parkvision/internal/parking"
)

// Palette hex values for overlay elements.
const (
	freeHex     = "#2ecc71" // green
	occupiedHex = "#e74c3c" // red
	lineHex     = "#00ffff" // cyan, matches the debugging convention
	vehicleHex  = "#f1c40f" // yellow
)

// Overlay draws result onto a copy of img and returns the composed image.
func Overlay(img image.Image, result *parking.Result) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	lineColor := paletteColor(lineHex)
	for _, seg := range result.Segments {
		drawSegment(out, seg, lineColor)
	}

	vehicleColor := paletteColor(vehicleHex)
	for _, det := range result.Detections {
		drawRect(out, det.Bounds, vehicleColor, 1)
	}

	for _, spot := range result.Spots {
		c := paletteColor(freeHex)
		if spot.Status == parking.Occupied {
			c = paletteColor(occupiedHex)
		}
		drawRect(out, spot.Bounds, c, 2)

		cx, cy := spot.Bounds.Center()
		drawBadge(out, int(cx), int(cy), fmt.Sprintf("%d", spot.ID), c)
	}

	drawBanner(out, result)

	return out
}

// EncodePNG renders the overlay and returns it as PNG bytes.
func EncodePNG(img image.Image, result *parking.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Overlay(img, result)); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	return buf.Bytes(), nil
}

// paletteColor converts a palette hex string to an opaque RGBA color.
// Palette constants are known-good, so parse failures fall back to white
// rather than erroring.
func paletteColor(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawSegment draws a 2px line between the segment endpoints using
// Bresenham stepping.
func drawSegment(img *image.RGBA, seg detection.Segment, c color.RGBA) {
	x0, y0 := seg.Start.X, seg.Start.Y
	x1, y1 := seg.End.X, seg.End.Y

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		setIfInside(img, x0, y0, c)
		setIfInside(img, x0+1, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawRect strokes the rectangle border with the given thickness.
func drawRect(img *image.RGBA, r parking.Rect, c color.RGBA, thickness int) {
	x1, y1 := int(r.X1), int(r.Y1)
	x2, y2 := int(r.X2), int(r.Y2)

	for t := 0; t < thickness; t++ {
		for x := x1; x <= x2; x++ {
			setIfInside(img, x, y1+t, c)
			setIfInside(img, x, y2-t, c)
		}
		for y := y1; y <= y2; y++ {
			setIfInside(img, x1+t, y, c)
			setIfInside(img, x2-t, y, c)
		}
	}
}

// drawBadge draws a dark disc with the spot id centered at (cx, cy).
func drawBadge(img *image.RGBA, cx, cy int, text string, ring color.RGBA) {
	const radius = 10

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := dx*dx + dy*dy
			if d2 > radius*radius {
				continue
			}
			if d2 >= (radius-1)*(radius-1) {
				setIfInside(img, cx+dx, cy+dy, ring)
			} else {
				setIfInside(img, cx+dx, cy+dy, color.RGBA{0, 0, 0, 220})
			}
		}
	}

	labelW := len(text) * glyphAdvance
	drawText(img, cx-labelW/2, cy-glyphRows/2, text, color.RGBA{255, 255, 255, 255})
}

// drawBanner paints the summary strip along the top edge.
func drawBanner(img *image.RGBA, result *parking.Result) {
	bounds := img.Bounds()
	bannerHeight := 14
	bg := color.RGBA{0, 0, 0, 200}

	for y := bounds.Min.Y; y < bounds.Min.Y+bannerHeight && y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.Set(x, y, bg)
		}
	}

	summary := fmt.Sprintf("%d/%d", result.FreeSlots, result.TotalSlots)
	drawText(img, bounds.Min.X+4, bounds.Min.Y+4, summary, paletteColor(freeHex))
}

func setIfInside(img *image.RGBA, x, y int, c color.RGBA) {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		img.Set(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
