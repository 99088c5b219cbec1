package detection

import (
	"image"
	"image/color"
	"reflect"
	"testing"

	"parkvision/internal/config"
)

// lotImage builds a dark asphalt background with optional painted stripes.
type stripe struct {
	x, y, w, h int
}

func lotImage(width, height int, stripes []stripe) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{45, 45, 45, 255})
		}
	}
	for _, s := range stripes {
		for y := s.y; y < s.y+s.h; y++ {
			for x := s.x; x < s.x+s.w; x++ {
				img.Set(x, y, color.RGBA{250, 250, 250, 255})
			}
		}
	}
	return img
}

func TestClassify(t *testing.T) {
	const tolerance = 25.0

	tests := []struct {
		name  string
		angle float64
		want  Orientation
	}{
		{"perfectly vertical", 90, Vertical},
		{"vertical negative", -90, Vertical},
		{"vertical upper bound", 115, Vertical},
		{"vertical lower bound", 65, Vertical},
		{"perfectly horizontal", 0, Horizontal},
		{"horizontal at 180", 180, Horizontal},
		{"horizontal negative", -180, Horizontal},
		{"horizontal upper bound", 25, Horizontal},
		{"horizontal wrap bound", 155, Horizontal},
		{"diagonal", 45, Discarded},
		{"diagonal negative", -45, Discarded},
		{"between bands", 40, Discarded},
		{"between bands high", 140, Discarded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.angle, tolerance); got != tt.want {
				t.Errorf("classify(%v, %v) = %v, want %v", tt.angle, tolerance, got, tt.want)
			}
		})
	}
}

func TestOrientationString(t *testing.T) {
	if Vertical.String() != "vertical" {
		t.Errorf("Vertical.String() = %q", Vertical.String())
	}
	if Horizontal.String() != "horizontal" {
		t.Errorf("Horizontal.String() = %q", Horizontal.String())
	}
	if Discarded.String() != "discarded" {
		t.Errorf("Discarded.String() = %q", Discarded.String())
	}
}

func TestSegmentMidpoints(t *testing.T) {
	seg := Segment{Start: Point{X: 10, Y: 20}, End: Point{X: 30, Y: 60}}
	if seg.MidX() != 20 {
		t.Errorf("MidX() = %v, want 20", seg.MidX())
	}
	if seg.MidY() != 40 {
		t.Errorf("MidY() = %v, want 40", seg.MidY())
	}
}

func TestExtractSegments_DarkImage(t *testing.T) {
	img := lotImage(200, 150, nil)

	segments := ExtractSegments(img, config.Default())

	if len(segments) != 0 {
		t.Errorf("Expected no segments in featureless image, got %d", len(segments))
	}
}

func TestExtractSegments_VerticalStripe(t *testing.T) {
	// A single painted stall line: tall enough to clear the minimum
	// length and wide enough to survive the morphological open.
	img := lotImage(200, 150, []stripe{{x: 95, y: 20, w: 6, h: 110}})

	segments := ExtractSegments(img, config.Default())

	if len(segments) == 0 {
		t.Fatal("Expected at least one segment for a painted stripe")
	}

	foundVertical := false
	for _, seg := range segments {
		if seg.Orientation == Vertical {
			foundVertical = true
			if seg.MidX() < 85 || seg.MidX() > 111 {
				t.Errorf("Vertical segment midpoint %v far from stripe at x=95..101", seg.MidX())
			}
		}
	}
	if !foundVertical {
		t.Error("Expected a vertical segment along the stripe")
	}
}

func TestExtractSegments_Deterministic(t *testing.T) {
	img := lotImage(200, 150, []stripe{
		{x: 50, y: 20, w: 6, h: 110},
		{x: 140, y: 20, w: 6, h: 110},
	})
	cfg := config.Default()

	first := ExtractSegments(img, cfg)
	second := ExtractSegments(img, cfg)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical results across runs on the same input")
	}
}

func TestExtractSegments_NoDiagonals(t *testing.T) {
	img := lotImage(200, 150, []stripe{{x: 95, y: 20, w: 6, h: 110}})

	for _, seg := range ExtractSegments(img, config.Default()) {
		if seg.Orientation == Discarded {
			t.Errorf("Discarded segment leaked into output: %+v", seg)
		}
	}
}
