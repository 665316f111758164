package services

import (
	"smartrail/models"
)

/*
   Indian Railways coach classes and berth layouts:

   1A  (First AC)      → 4/coupe × 6 coupes = 24 berths : LB, UB per side
   2A  (AC 2-Tier)     → 6/bay × 8 bays     = 48 berths : LB, UB, LB, UB + SL, SU
   3A  (AC 3-Tier)     → 8/bay × 9 bays     = 72 berths : LB, MB, UB ×2 + SL, SU
   SL  (Sleeper)       → 8/bay × 9 bays     = 72 berths : same as 3A without AC
   CC  (AC Chair Car)  → 78 seats           : Window, Middle, Aisle rows
   2S  (Second Sitting)→ 108 seats          : bench-style
*/

// Classes that never carry reserved seats: guard van, pantry, unreserved
// general. Any declared seat count on these is ignored.
var nonBookableClasses = map[string]bool{
	"SLR":    true,
	"PANTRY": true,
	"GS":     true,
	"UR":     true,
	"GEN":    true,
}

func IsNonBookable(classCode string) bool {
	return nonBookableClasses[classCode]
}

// FallbackBerthType is assigned when a coach has a seat count but no
// usable berth pattern.
const FallbackBerthType = "SEAT"

// AisleMarker appears in coach-type row structures as a gap, not a seat.
const aisleMarker = "AISLE"

var defaultClassConfigs = map[string]models.CoachClassConfig{
	"1A": {ClassCode: "1A", Label: "First AC", TotalBerths: 24, BerthsPerBay: 4,
		BayLabels: []string{"LB", "UB", "LB", "UB"}},
	"2A": {ClassCode: "2A", Label: "AC 2-Tier", TotalBerths: 48, BerthsPerBay: 6,
		BayLabels: []string{"LB", "UB", "LB", "UB", "SL", "SU"}, HasSideBerths: true},
	"3A": {ClassCode: "3A", Label: "AC 3-Tier", TotalBerths: 72, BerthsPerBay: 8,
		BayLabels: []string{"LB", "MB", "UB", "LB", "MB", "UB", "SL", "SU"}, HasSideBerths: true},
	"SL": {ClassCode: "SL", Label: "Sleeper", TotalBerths: 72, BerthsPerBay: 8,
		BayLabels: []string{"LB", "MB", "UB", "LB", "MB", "UB", "SL", "SU"}, HasSideBerths: true},
	"CC": {ClassCode: "CC", Label: "AC Chair Car", TotalBerths: 78, BerthsPerBay: 5,
		BayLabels: []string{"W", "M", "A", "A", "W"}, IsChairStyle: true},
	"2S": {ClassCode: "2S", Label: "2nd Sitting", TotalBerths: 108, BerthsPerBay: 6,
		BayLabels: []string{"W", "M", "A", "A", "M", "W"}, IsChairStyle: true},
}

var berthFullNames = map[string]string{
	"LB": "Lower Berth",
	"MB": "Middle Berth",
	"UB": "Upper Berth",
	"SL": "Side Lower",
	"SU": "Side Upper",
	"W":  "Window",
	"M":  "Middle",
	"A":  "Aisle",
}

// BerthTemplate is the resolved berth layout of one coach, ready for the
// seat builder. A zero TotalBerths template builds an empty inventory.
type BerthTemplate struct {
	TotalBerths   int
	Pattern       []string
	BerthsPerBay  int
	HasSideBerths bool
}

// BookedLookup answers whether a given seat of a given coach is occupied.
// A nil lookup means a fresh (all-free) inventory.
type BookedLookup func(coachID string, seatNumber int) bool

// SeatLayoutService turns coach records into seat inventories and
// class-level availability. It only reads the store; nothing here mutates
// state, so one instance serves concurrent requests.
type SeatLayoutService struct {
	store *Store
}

func NewSeatLayoutService(store *Store) *SeatLayoutService {
	return &SeatLayoutService{store: store}
}

// ClassConfig returns the normalized class config for a class code.
func (s *SeatLayoutService) ClassConfig(classCode string) (models.CoachClassConfig, bool) {
	cfg, ok := s.store.ClassConfigs[classCode]
	return cfg, ok
}

// CoachConfig resolves the class config a coach is laid out with,
// preferring its explicit coach type over the class-code catalog.
func (s *SeatLayoutService) CoachConfig(coach models.Coach) (models.CoachClassConfig, bool) {
	if IsNonBookable(coach.ClassCode) {
		return models.CoachClassConfig{}, false
	}
	if coach.CoachTypeID != "" {
		if ct, ok := s.store.CoachTypes[coach.CoachTypeID]; ok {
			return normalizeCoachType(ct), true
		}
	}
	if cfg, ok := s.store.ClassConfigs[coach.ClassCode]; ok {
		return cfg, true
	}
	return models.CoachClassConfig{}, false
}

// normalizeCoachType maps a raw coach-type entry (nested row structure,
// AISLE markers) into the flat class-config form.
func normalizeCoachType(ct models.CoachType) models.CoachClassConfig {
	cfg := models.CoachClassConfig{
		ClassCode:   ct.ClassCode,
		Label:       ct.Label,
		TotalBerths: ct.TotalSeats,
	}
	if ct.Layout != nil {
		pattern := make([]string, 0)
		for _, row := range ct.Layout.RowStructure {
			for _, token := range row {
				if token != aisleMarker {
					pattern = append(pattern, token)
				}
			}
		}
		cfg.BayLabels = pattern
		cfg.BerthsPerBay = len(pattern)
		cfg.HasSideBerths = ct.Layout.HasSideBerths
	}
	return cfg
}

// Resolve maps a coach record to its berth template. Resolution order:
// non-bookable classes yield zero berths; then the coach-type catalog;
// then the class-code catalog; then a plain one-token template when the
// coach carries its own seat count. Anything else resolves to zero seats
// rather than an error.
func (s *SeatLayoutService) Resolve(coach models.Coach) BerthTemplate {
	if IsNonBookable(coach.ClassCode) {
		return BerthTemplate{}
	}

	if cfg, ok := s.CoachConfig(coach); ok {
		total := cfg.TotalBerths
		if coach.TotalSeats > 0 {
			total = coach.TotalSeats
		}
		return BerthTemplate{
			TotalBerths:   total,
			Pattern:       cfg.BayLabels,
			BerthsPerBay:  cfg.BerthsPerBay,
			HasSideBerths: cfg.HasSideBerths,
		}
	}

	// Old layout format: the coach declares totalSeats with no catalog
	// entry. Every seat gets the generic token.
	if coach.TotalSeats > 0 {
		return BerthTemplate{
			TotalBerths:  coach.TotalSeats,
			Pattern:      []string{FallbackBerthType},
			BerthsPerBay: 1,
		}
	}

	return BerthTemplate{}
}

// BuildSeats materializes the seat inventory for a resolved template,
// cycling the berth pattern across seat numbers. The last partial bay is
// filled by the same cycle, never truncated. booked may be nil.
func BuildSeats(t BerthTemplate, coachID string, booked BookedLookup) []models.Seat {
	seats := make([]models.Seat, 0, t.TotalBerths)
	if t.TotalBerths <= 0 {
		return seats
	}
	for i := 0; i < t.TotalBerths; i++ {
		berthType := FallbackBerthType
		if len(t.Pattern) > 0 {
			berthType = t.Pattern[i%len(t.Pattern)]
		}
		seat := models.Seat{
			SeatNumber: i + 1,
			BerthType:  berthType,
		}
		if booked != nil {
			seat.IsBooked = booked(coachID, seat.SeatNumber)
		}
		seats = append(seats, seat)
	}
	return seats
}

// CoachSeats returns a coach's inventory, reusing pre-populated seats
// when the layout dataset ships them and rebuilding otherwise. The
// rebuild is deliberate: inventories are cheap to derive and recomputing
// avoids stale seat state.
func (s *SeatLayoutService) CoachSeats(coach models.Coach, booked BookedLookup) []models.Seat {
	if len(coach.Seats) > 0 {
		if booked == nil {
			return coach.Seats
		}
		seats := make([]models.Seat, len(coach.Seats))
		copy(seats, coach.Seats)
		for i := range seats {
			if booked(coach.CoachID, seats[i].SeatNumber) {
				seats[i].IsBooked = true
			}
		}
		return seats
	}
	return BuildSeats(s.Resolve(coach), coach.CoachID, booked)
}

// Aggregate folds per-coach seat state into per-class availability.
// Classes that contribute no seats at all are omitted, never reported as
// zero. When a class is fully or over booked the count is the position
// the next waitlisted passenger would get.
func (s *SeatLayoutService) Aggregate(coaches []models.Coach, booked BookedLookup) map[string]models.ClassAvailability {
	type classTally struct {
		total  int
		booked int
	}
	tallies := make(map[string]*classTally)

	for _, coach := range coaches {
		cls := coach.ClassCode
		if cls == "" {
			continue
		}
		seats := s.CoachSeats(coach, booked)
		if len(seats) == 0 {
			continue
		}
		tally, ok := tallies[cls]
		if !ok {
			tally = &classTally{}
			tallies[cls] = tally
		}
		tally.total += len(seats)
		for _, seat := range seats {
			if seat.IsBooked {
				tally.booked++
			}
		}
	}

	availability := make(map[string]models.ClassAvailability, len(tallies))
	for cls, tally := range tallies {
		if tally.total == 0 {
			continue
		}
		availability[cls] = AvailabilityFor(tally.total, tally.booked)
	}
	return availability
}

// AvailabilityFor converts a class seat tally into its booking status.
// A fully or over booked class reports the next waitlist position: a
// class oversold by n puts the next passenger at WL n+1, never 0.
func AvailabilityFor(total, booked int) models.ClassAvailability {
	available := total - booked
	if available > 0 {
		return models.ClassAvailability{
			Status: models.StatusAvailable,
			Count:  available,
		}
	}
	return models.ClassAvailability{
		Status: models.StatusWaitingList,
		Count:  -available + 1,
	}
}

// Bay/position geometry. These must agree exactly with the builder's
// cycling: same modulus, same 1-based seat numbers.

// BerthLabel returns the short berth token for a seat number under a
// class config.
func BerthLabel(cfg models.CoachClassConfig, seatNumber int) string {
	if cfg.BerthsPerBay <= 0 || seatNumber < 1 {
		return FallbackBerthType
	}
	pos := (seatNumber - 1) % cfg.BerthsPerBay
	if pos >= len(cfg.BayLabels) {
		return FallbackBerthType
	}
	return cfg.BayLabels[pos]
}

// BerthFullName expands a short berth token ("SU" → "Side Upper").
// Unknown tokens pass through unchanged.
func BerthFullName(label string) string {
	if full, ok := berthFullNames[label]; ok {
		return full
	}
	return label
}

// BayIndex returns the 1-based bay (or row, for chair coaches) a seat
// belongs to.
func BayIndex(cfg models.CoachClassConfig, seatNumber int) int {
	if cfg.BerthsPerBay <= 0 || seatNumber < 1 {
		return 1
	}
	return (seatNumber + cfg.BerthsPerBay - 1) / cfg.BerthsPerBay
}

// SideBerth reports whether a seat sits in the side section of its bay.
// Side berths occupy the last two slots of the bay unit; that rule lives
// only here and in the class config's label order.
func SideBerth(cfg models.CoachClassConfig, seatNumber int) bool {
	if !cfg.HasSideBerths || cfg.BerthsPerBay <= 0 || seatNumber < 1 {
		return false
	}
	pos := (seatNumber - 1) % cfg.BerthsPerBay
	return pos >= cfg.BerthsPerBay-2
}
