package utils

import (
	"math"
	"strconv"
	"strings"

	"smartrail/models"
)

// ParseDistance parses distance values like "742", "742.5" or "742 KM".
// Returns 0 when the value is unusable.
func ParseDistance(distance string) float64 {
	distance = strings.TrimSpace(strings.ToUpper(distance))
	distance = strings.TrimSuffix(distance, "KM")
	distance = strings.TrimSpace(distance)

	val, err := strconv.ParseFloat(distance, 64)
	if err != nil {
		return 0
	}
	return val
}

// JourneyDistance derives the distance between two stops of a schedule
// from their distance-from-source markers. Returns 0 when either stop is
// missing or carries no distance data.
func JourneyDistance(schedule []models.TrainStop, source, destination string) float64 {
	src := findStopByCode(schedule, source)
	dst := findStopByCode(schedule, destination)
	if src == nil || dst == nil {
		return 0
	}
	if src.DistanceFromSourceKm < 0 || dst.DistanceFromSourceKm < 0 {
		return 0
	}
	return math.Abs(dst.DistanceFromSourceKm - src.DistanceFromSourceKm)
}

func findStopByCode(schedule []models.TrainStop, code string) *models.TrainStop {
	for i := range schedule {
		if strings.EqualFold(schedule[i].StationCode, code) {
			return &schedule[i]
		}
	}
	return nil
}
