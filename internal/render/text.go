package render

import (
	"image"
	"image/color"
)

// Glyph metrics for the built-in 3x5 pixel font.
const (
	glyphAdvance = 4
	glyphRows    = 5
)

// glyphs is a minimal 3x5 pixel font covering the characters the overlay
// needs: spot ids and the free/total banner.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'/': {"001", "001", "010", "100", "100"},
}

// drawText draws a text label at (x, y) using the built-in pixel font.
// Characters outside the font advance without drawing.
func drawText(img *image.RGBA, x, y int, text string, fg color.RGBA) {
	bounds := img.Bounds()
	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += glyphAdvance
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				px, py := cx+col, y+row
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					img.Set(px, py, fg)
				}
			}
		}
		cx += glyphAdvance
	}
}
