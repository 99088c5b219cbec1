package imaging

import (
	"image"
	"image/color"
	"testing"
)

// lotWithStripe builds a dark pavement image with a vertical bright stripe.
func lotWithStripe(width, height, stripeX, stripeW int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{40, 40, 40, 255}
			if x >= stripeX && x < stripeX+stripeW {
				c = color.RGBA{250, 250, 250, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBrightMask_StripeSurvives(t *testing.T) {
	img := lotWithStripe(60, 40, 28, 6)

	mask := BrightMask(img, 170)

	bounds := mask.Bounds()
	if bounds.Dx() != 60 || bounds.Dy() != 40 {
		t.Fatalf("Expected mask dimensions 60x40, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	// The stripe center should remain bright after thresholding and
	// morphology smooths its borders.
	r, _, _, _ := mask.At(31, 20).RGBA()
	if r>>8 < 128 {
		t.Errorf("Expected bright pixel at stripe center, got %d", r>>8)
	}

	// Pavement far from the stripe must be suppressed.
	r, _, _, _ = mask.At(5, 20).RGBA()
	if r>>8 > 64 {
		t.Errorf("Expected dark pavement pixel, got %d", r>>8)
	}
}

func TestBrightMask_DarkImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{30, 30, 30, 255})
		}
	}

	mask := BrightMask(img, 170)

	for _, pt := range []image.Point{{0, 0}, {20, 20}, {39, 39}} {
		r, _, _, _ := mask.At(pt.X, pt.Y).RGBA()
		if r>>8 > 32 {
			t.Errorf("Expected suppressed pixel at %v, got %d", pt, r>>8)
		}
	}
}

func TestEdgeMask_FlatImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			img.Set(x, y, color.RGBA{128, 128, 128, 255})
		}
	}

	edges := EdgeMask(img, 30, 120)

	if len(edges) != 30 || len(edges[0]) != 30 {
		t.Fatalf("Expected 30x30 mask, got %dx%d", len(edges), len(edges[0]))
	}
	for y := range edges {
		for x := range edges[y] {
			if edges[y][x] {
				t.Fatalf("Unexpected edge at (%d,%d) in flat image", x, y)
			}
		}
	}
}

func TestEdgeMask_StripeBorders(t *testing.T) {
	img := lotWithStripe(60, 40, 28, 8)

	edges := EdgeMask(img, 30, 120)

	count := 0
	for y := range edges {
		for x := range edges[y] {
			if edges[y][x] {
				count++
			}
		}
	}
	if count == 0 {
		t.Error("Expected edges along stripe borders, found none")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%d, %d, %d) = %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}
