package utils

import (
	"testing"

	"smartrail/models"

	"github.com/stretchr/testify/assert"
)

func TestParseDistance(t *testing.T) {
	assert.Equal(t, 742.0, ParseDistance("742"))
	assert.Equal(t, 742.5, ParseDistance("742.5"))
	assert.Equal(t, 742.0, ParseDistance("742 KM"))
	assert.Equal(t, 742.0, ParseDistance("  742km "))
	assert.Equal(t, 0.0, ParseDistance("far away"))
	assert.Equal(t, 0.0, ParseDistance(""))
}

func TestJourneyDistance(t *testing.T) {
	schedule := []models.TrainStop{
		{StationCode: "NDLS", DistanceFromSourceKm: 0},
		{StationCode: "BPL", DistanceFromSourceKm: 702},
		{StationCode: "MAS", DistanceFromSourceKm: 2180},
	}

	assert.Equal(t, 702.0, JourneyDistance(schedule, "NDLS", "BPL"))
	assert.Equal(t, 1478.0, JourneyDistance(schedule, "bpl", "mas"))

	// Reversed direction still yields the segment length
	assert.Equal(t, 702.0, JourneyDistance(schedule, "BPL", "NDLS"))

	assert.Equal(t, 0.0, JourneyDistance(schedule, "NDLS", "XXXX"))
	assert.Equal(t, 0.0, JourneyDistance(nil, "NDLS", "BPL"))
}
