package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// BrightMask isolates painted-line pixels from a parking lot image.
//
// The result feeds EdgeMask; it is a near-binary image where bright
// markings (painted stall lines) survive and the asphalt background is
// suppressed.
//
// Pipeline:
//
//  1. Grayscale conversion (luminance).
//  2. Threshold at the configured brightness level, keeping only
//     bright/white regions.
//  3. Morphological close (dilate then erode) to bridge small breaks in
//     painted lines, then open (erode then dilate) to drop speckle noise.
//  4. Light Gaussian blur to smooth the mask before edge detection.
//
// Typical brightness thresholds are 160-190 for daylight lots; lower
// values admit more of the pavement and increase false lines.
func BrightMask(img image.Image, brightness uint8) image.Image {
	gray := imaging.Grayscale(img)
	mask := segment.Threshold(gray, brightness)

	closed := effect.Erode(effect.Dilate(mask, 1), 1)
	opened := effect.Dilate(effect.Erode(closed, 1), 1)

	return blur.Gaussian(opened, 1)
}
