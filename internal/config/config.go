// Package config holds the tunable thresholds for the parking analysis
// pipeline.
//
// A Config value is built once at startup (Default, optionally overlaid by
// FromEnv) and validated with Validate. After that it is treated as
// immutable and passed by value through every pipeline stage; nothing in
// this repository mutates a Config after initialization, so a single value
// may be shared by any number of concurrent analyses.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries every threshold used by the analysis pipeline.
//
// Width/height bounds are expressed as fractions of the image dimensions so
// the same configuration works across image resolutions.
type Config struct {
	// BrightnessThreshold is the minimum 8-bit luminance for a pixel to be
	// considered part of a painted line marking.
	BrightnessThreshold uint8

	// EdgeLowThreshold and EdgeHighThreshold are the Canny hysteresis
	// thresholds (0-255) applied to the bright-line mask.
	EdgeLowThreshold  int
	EdgeHighThreshold int

	// MinLineLengthFrac is the minimum segment length as a fraction of the
	// smaller image dimension. Shorter segments are dropped.
	MinLineLengthFrac float64

	// AngleToleranceDeg classifies segments: within this many degrees of
	// 90 is vertical, within this many degrees of 0/180 is horizontal,
	// anything else is discarded as diagonal.
	AngleToleranceDeg float64

	// HoughThreshold is the minimum accumulator vote count for a line peak.
	HoughThreshold int

	// MaxLineGap is the largest pixel gap allowed inside one segment when
	// edge points along a Hough line are split into runs.
	MaxLineGap float64

	// Plausible stall dimensions, as fractions of image width (spot width)
	// and image height (spot height).
	MinSpotWidthFrac  float64
	MaxSpotWidthFrac  float64
	MinSpotHeightFrac float64
	MaxSpotHeightFrac float64

	// MinRowOverlapFrac is the minimum shared horizontal extent, as a
	// fraction of image width, for a horizontal line pair to form a row.
	MinRowOverlapFrac float64

	// RowTolerance sets the row-clustering cutoff as a multiple of the
	// median detection box height.
	RowTolerance float64

	// DedupIoU is the IoU above which two candidate spots are considered
	// duplicates during merging.
	DedupIoU float64

	// Aspect-ratio and area-fraction bounds for surviving spots.
	MinAspect   float64
	MaxAspect   float64
	MinAreaFrac float64
	MaxAreaFrac float64

	// MaxSpots caps the size of the final spot set.
	MaxSpots int

	// MatchIoU is the IoU at which a detection occupies a spot outright.
	// WeakMatchIoU admits weaker overlaps when the detection center is
	// within CenterDistRatio of the spot diagonal.
	MatchIoU        float64
	WeakMatchIoU    float64
	CenterDistRatio float64

	// NMSIoU is the IoU threshold for deduplicating the incoming vehicle
	// detections before matching.
	NMSIoU float64

	// FallbackConfidence is the fixed confidence reported in manual-count
	// mode, reflecting the degraded guarantee.
	FallbackConfidence float64
}

// Default returns the configuration tuned against the PKLot-style test
// imagery: bright-line threshold 170, ±25° orientation tolerance, 40%
// duplicate suppression.
func Default() Config {
	return Config{
		BrightnessThreshold: 170,
		EdgeLowThreshold:    30,
		EdgeHighThreshold:   120,
		MinLineLengthFrac:   0.025,
		AngleToleranceDeg:   25,
		HoughThreshold:      40,
		MaxLineGap:          10,
		MinSpotWidthFrac:    0.03,
		MaxSpotWidthFrac:    0.25,
		MinSpotHeightFrac:   0.06,
		MaxSpotHeightFrac:   0.35,
		MinRowOverlapFrac:   0.12,
		RowTolerance:        0.75,
		DedupIoU:            0.4,
		MinAspect:           0.1,
		MaxAspect:           8.0,
		MinAreaFrac:         0.0008,
		MaxAreaFrac:         0.08,
		MaxSpots:            60,
		MatchIoU:            0.3,
		WeakMatchIoU:        0.05,
		CenterDistRatio:     0.5,
		NMSIoU:              0.3,
		FallbackConfidence:  0.25,
	}
}

// FromEnv returns Default overlaid with any PARKVISION_* environment
// overrides. Unset or malformed variables fall back to the default; range
// checking is Validate's job.
func FromEnv() Config {
	cfg := Default()

	if v, ok := envUint8("PARKVISION_BRIGHTNESS_THRESHOLD"); ok {
		cfg.BrightnessThreshold = v
	}
	if v, ok := envFloat("PARKVISION_ANGLE_TOLERANCE"); ok {
		cfg.AngleToleranceDeg = v
	}
	if v, ok := envFloat("PARKVISION_MIN_LINE_LENGTH_FRAC"); ok {
		cfg.MinLineLengthFrac = v
	}
	if v, ok := envFloat("PARKVISION_DEDUP_IOU"); ok {
		cfg.DedupIoU = v
	}
	if v, ok := envFloat("PARKVISION_MATCH_IOU"); ok {
		cfg.MatchIoU = v
	}
	if v, ok := envFloat("PARKVISION_WEAK_MATCH_IOU"); ok {
		cfg.WeakMatchIoU = v
	}
	if v, ok := envFloat("PARKVISION_ROW_TOLERANCE"); ok {
		cfg.RowTolerance = v
	}
	if v, ok := envInt("PARKVISION_MAX_SPOTS"); ok {
		cfg.MaxSpots = v
	}

	return cfg
}

func envFloat(key string) (float64, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envUint8(key string) (uint8, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(v), true
}

// Validate checks every threshold against its valid range. A non-nil error
// is fatal at startup; per-request code assumes a validated Config.
func (c Config) Validate() error {
	unit := func(name string, v float64) error {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: %s must be in [0,1], got %v", name, v)
		}
		return nil
	}

	for _, check := range []struct {
		name string
		v    float64
	}{
		{"min_line_length_frac", c.MinLineLengthFrac},
		{"min_spot_width_frac", c.MinSpotWidthFrac},
		{"max_spot_width_frac", c.MaxSpotWidthFrac},
		{"min_spot_height_frac", c.MinSpotHeightFrac},
		{"max_spot_height_frac", c.MaxSpotHeightFrac},
		{"min_row_overlap_frac", c.MinRowOverlapFrac},
		{"dedup_iou", c.DedupIoU},
		{"min_area_frac", c.MinAreaFrac},
		{"max_area_frac", c.MaxAreaFrac},
		{"match_iou", c.MatchIoU},
		{"weak_match_iou", c.WeakMatchIoU},
		{"nms_iou", c.NMSIoU},
		{"fallback_confidence", c.FallbackConfidence},
	} {
		if err := unit(check.name, check.v); err != nil {
			return err
		}
	}

	if c.EdgeLowThreshold < 0 || c.EdgeLowThreshold > 255 ||
		c.EdgeHighThreshold < 0 || c.EdgeHighThreshold > 255 {
		return fmt.Errorf("config: edge thresholds must be in [0,255], got %d/%d",
			c.EdgeLowThreshold, c.EdgeHighThreshold)
	}
	if c.EdgeLowThreshold >= c.EdgeHighThreshold {
		return fmt.Errorf("config: edge_low_threshold (%d) must be below edge_high_threshold (%d)",
			c.EdgeLowThreshold, c.EdgeHighThreshold)
	}
	if c.AngleToleranceDeg <= 0 || c.AngleToleranceDeg >= 45 {
		return fmt.Errorf("config: angle_tolerance must be in (0,45), got %v", c.AngleToleranceDeg)
	}
	if c.HoughThreshold <= 0 {
		return fmt.Errorf("config: hough_threshold must be positive, got %d", c.HoughThreshold)
	}
	if c.MaxLineGap <= 0 {
		return fmt.Errorf("config: max_line_gap must be positive, got %v", c.MaxLineGap)
	}
	if c.MinSpotWidthFrac >= c.MaxSpotWidthFrac {
		return fmt.Errorf("config: min_spot_width_frac (%v) must be below max_spot_width_frac (%v)",
			c.MinSpotWidthFrac, c.MaxSpotWidthFrac)
	}
	if c.MinSpotHeightFrac >= c.MaxSpotHeightFrac {
		return fmt.Errorf("config: min_spot_height_frac (%v) must be below max_spot_height_frac (%v)",
			c.MinSpotHeightFrac, c.MaxSpotHeightFrac)
	}
	if c.RowTolerance <= 0 {
		return fmt.Errorf("config: row_tolerance must be positive, got %v", c.RowTolerance)
	}
	if c.MinAspect <= 0 || c.MinAspect >= c.MaxAspect {
		return fmt.Errorf("config: aspect bounds invalid: min %v, max %v", c.MinAspect, c.MaxAspect)
	}
	if c.MinAreaFrac >= c.MaxAreaFrac {
		return fmt.Errorf("config: min_area_frac (%v) must be below max_area_frac (%v)",
			c.MinAreaFrac, c.MaxAreaFrac)
	}
	if c.MaxSpots <= 0 {
		return fmt.Errorf("config: max_spots must be positive, got %d", c.MaxSpots)
	}
	if c.WeakMatchIoU > c.MatchIoU {
		return fmt.Errorf("config: weak_match_iou (%v) must not exceed match_iou (%v)",
			c.WeakMatchIoU, c.MatchIoU)
	}
	if c.CenterDistRatio <= 0 || c.CenterDistRatio > 1 {
		return fmt.Errorf("config: center_dist_ratio must be in (0,1], got %v", c.CenterDistRatio)
	}

	return nil
}
