package services

import (
	"smartrail/models"
	"smartrail/utils"

	"github.com/shopspring/decimal"
)

// Per-km base rates by class. Classes without a rate bill at 1.0.
var baseRates = map[string]decimal.Decimal{
	"1A":      decimal.NewFromFloat(4.5),
	"2A":      decimal.NewFromFloat(2.8),
	"3A":      decimal.NewFromFloat(2.0),
	"CC":      decimal.NewFromFloat(1.8),
	"SL":      decimal.NewFromFloat(0.8),
	"2S":      decimal.NewFromFloat(0.5),
	"General": decimal.NewFromFloat(0.3),
}

var defaultRate = decimal.NewFromInt(1)

// defaultFareClasses is quoted when a train has no layout to read its
// classes from.
var defaultFareClasses = []string{"SL", "3A", "2A", "1A"}

// Journeys with no derivable distance are billed at a typical long-haul
// length.
const fallbackDistanceKm = 800

const minimumFare = 50

type FareResult struct {
	TrainNumber string           `json:"trainNumber"`
	Source      string           `json:"source"`
	Destination string           `json:"destination"`
	DistanceKm  float64          `json:"distanceKm"`
	Fares       map[string]int64 `json:"fares"`
}

// FareService quotes class fares from journey distance. The figures are
// a rate-table heuristic, not live tariff data.
type FareService struct {
	store *Store
}

func NewFareService(store *Store) *FareService {
	return &FareService{store: store}
}

// Quote computes fares for every class the train carries. distanceKm may
// be 0, in which case it is derived from the train's schedule, falling
// back to the default journey length.
func (f *FareService) Quote(trainNumber, source, destination string, distanceKm float64) FareResult {
	if distanceKm <= 0 && source != "" && destination != "" {
		if train := f.store.TrainByNumber(trainNumber); train != nil {
			distanceKm = utils.JourneyDistance(train.Schedule, source, destination)
		}
	}
	if distanceKm <= 0 {
		distanceKm = fallbackDistanceKm
	}

	classes := defaultFareClasses
	if layout := f.store.LayoutByTrain(trainNumber); layout != nil {
		layoutClasses := uniqueClassCodes(layout.Coaches)
		if len(layoutClasses) > 0 {
			classes = layoutClasses
		}
	}

	fares := make(map[string]int64, len(classes))
	distance := decimal.NewFromFloat(distanceKm)
	for _, cls := range classes {
		fares[cls] = classFare(cls, distance)
	}

	result := FareResult{
		TrainNumber: trainNumber,
		Source:      source,
		Destination: destination,
		DistanceKm:  distanceKm,
		Fares:       fares,
	}
	if result.Source == "" {
		result.Source = "UNKNOWN"
	}
	if result.Destination == "" {
		result.Destination = "UNKNOWN"
	}
	return result
}

func classFare(cls string, distance decimal.Decimal) int64 {
	rate, ok := baseRates[cls]
	if !ok {
		rate = defaultRate
	}
	amount := distance.Mul(rate).Round(0).IntPart()

	// Flat base charges: everyone pays 50, AC classes 150 more, first
	// class another 100 on top.
	flat := int64(50)
	if isACClass(cls) {
		flat += 150
	}
	if cls == "1A" {
		flat += 100
	}

	fare := roundUpToFive(amount + flat)
	if fare < minimumFare {
		fare = minimumFare
	}
	return fare
}

func isACClass(cls string) bool {
	for _, r := range cls {
		if r == 'A' {
			return true
		}
	}
	return cls == "CC"
}

func roundUpToFive(n int64) int64 {
	return (n + 4) / 5 * 5
}

func uniqueClassCodes(coaches []models.Coach) []string {
	seen := make(map[string]bool)
	classes := make([]string, 0)
	for _, coach := range coaches {
		if coach.ClassCode == "" || seen[coach.ClassCode] {
			continue
		}
		seen[coach.ClassCode] = true
		classes = append(classes, coach.ClassCode)
	}
	return classes
}
