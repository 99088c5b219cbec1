package parking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeDetections(t *testing.T) {
	detections := []Detection{
		{Class: "car", Confidence: 0.7, Bounds: Rect{X1: 0, Y1: 0, X2: 100, Y2: 100}},
		{Class: "car", Confidence: 0.9, Bounds: Rect{X1: 10, Y1: 10, X2: 110, Y2: 110}},
		{Class: "car", Confidence: 0.8, Bounds: Rect{X1: 300, Y1: 0, X2: 400, Y2: 100}},
	}

	kept := DedupeDetections(detections, 0.3)

	// The two overlapping boxes collapse into the more confident one; the
	// result is ordered by confidence descending.
	require.Len(t, kept, 2)
	assert.Equal(t, 0.9, kept[0].Confidence)
	assert.Equal(t, 0.8, kept[1].Confidence)
}

func TestDedupeDetections_DisjointKept(t *testing.T) {
	detections := []Detection{
		{Class: "car", Confidence: 0.5, Bounds: Rect{X1: 0, Y1: 0, X2: 80, Y2: 60}},
		{Class: "truck", Confidence: 0.6, Bounds: Rect{X1: 200, Y1: 0, X2: 280, Y2: 60}},
	}

	kept := DedupeDetections(detections, 0.3)

	require.Len(t, kept, 2)
	assert.Equal(t, "truck", kept[0].Class)
	assert.Equal(t, "car", kept[1].Class)
}

func TestDedupeDetections_InputNotMutated(t *testing.T) {
	detections := []Detection{
		{Class: "car", Confidence: 0.5, Bounds: Rect{X1: 0, Y1: 0, X2: 80, Y2: 60}},
		{Class: "car", Confidence: 0.9, Bounds: Rect{X1: 200, Y1: 0, X2: 280, Y2: 60}},
	}
	original := append([]Detection(nil), detections...)

	DedupeDetections(detections, 0.3)

	assert.Equal(t, original, detections)
}

func TestDedupeDetections_SmallInputs(t *testing.T) {
	assert.Empty(t, DedupeDetections(nil, 0.3))

	one := []Detection{{Class: "car", Confidence: 0.5}}
	assert.Equal(t, one, DedupeDetections(one, 0.3))
}
