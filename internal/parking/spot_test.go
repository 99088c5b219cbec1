package parking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvenanceString(t *testing.T) {
	assert.Equal(t, "vertical_pair", VerticalPair.String())
	assert.Equal(t, "horizontal_pair", HorizontalPair.String())
	assert.Equal(t, "row_estimate", RowEstimate.String())
}

func TestProvenancePriority(t *testing.T) {
	assert.Greater(t, VerticalPair.priority(), HorizontalPair.priority())
	assert.Greater(t, HorizontalPair.priority(), RowEstimate.priority())
}

func TestSpotJSON(t *testing.T) {
	spot := Spot{
		ID:              3,
		Bounds:          Rect{X1: 10, Y1: 20, X2: 110, Y2: 80},
		Provenance:      VerticalPair,
		Status:          Occupied,
		DetectionIndex:  1,
		MatchConfidence: 0.85,
	}

	data, err := json.Marshal(spot)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "vertical_pair", decoded["provenance"])
	assert.Equal(t, "occupied", decoded["status"])
	assert.Equal(t, float64(3), decoded["id"])
	assert.Equal(t, float64(1), decoded["detection_index"])
}

func TestResultJSON(t *testing.T) {
	result := &Result{
		TotalSlots:    5,
		OccupiedSlots: 3,
		FreeSlots:     2,
		Confidence:    0.8,
		Method:        MethodComputerVision,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "computer_vision", decoded["spot_detection_method"])
	assert.Equal(t, float64(5), decoded["total_slots"])

	// Empty collections are omitted, not serialized as null.
	_, hasSpots := decoded["spots"]
	assert.False(t, hasSpots)
}
