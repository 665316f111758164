package services

import (
	"testing"

	"smartrail/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *SeatLayoutService {
	store := NewStore()
	store.CoachTypes["3A-72"] = models.CoachType{
		CoachTypeID: "3A-72",
		ClassCode:   "3A",
		Label:       "AC 3-Tier",
		TotalSeats:  72,
		Layout: &models.CoachTypeLayout{
			RowStructure: [][]string{
				{"LB", "MB", "UB"},
				{"LB", "MB", "UB"},
				{"AISLE"},
				{"SL", "SU"},
			},
			HasSideBerths: true,
		},
	}
	return NewSeatLayoutService(store)
}

func TestResolveNonBookable(t *testing.T) {
	svc := newTestService()

	for _, cls := range []string{"SLR", "PANTRY", "GS", "UR", "GEN"} {
		coach := models.Coach{CoachID: "X1", ClassCode: cls, TotalSeats: 90}
		tmpl := svc.Resolve(coach)
		assert.Zero(t, tmpl.TotalBerths, "class %s must resolve to zero berths", cls)

		seats := BuildSeats(tmpl, coach.CoachID, nil)
		assert.NotNil(t, seats)
		assert.Empty(t, seats, "class %s must build no seats", cls)
	}
}

func TestResolveCoachTypeCatalog(t *testing.T) {
	svc := newTestService()

	tmpl := svc.Resolve(models.Coach{CoachID: "B1", ClassCode: "3A", CoachTypeID: "3A-72"})
	assert.Equal(t, 72, tmpl.TotalBerths)
	// AISLE markers are not seats
	assert.Equal(t, []string{"LB", "MB", "UB", "LB", "MB", "UB", "SL", "SU"}, tmpl.Pattern)
	assert.Equal(t, 8, tmpl.BerthsPerBay)
	assert.True(t, tmpl.HasSideBerths)
}

func TestResolveClassCodeCatalog(t *testing.T) {
	svc := newTestService()

	tmpl := svc.Resolve(models.Coach{CoachID: "A1", ClassCode: "2A"})
	assert.Equal(t, 48, tmpl.TotalBerths)
	assert.Equal(t, []string{"LB", "UB", "LB", "UB", "SL", "SU"}, tmpl.Pattern)
	assert.True(t, tmpl.HasSideBerths)
}

func TestResolveSeatCountFallback(t *testing.T) {
	svc := newTestService()

	// No catalog entry anywhere, but the coach knows its seat count
	tmpl := svc.Resolve(models.Coach{CoachID: "D1", ClassCode: "EC", TotalSeats: 40})
	assert.Equal(t, 40, tmpl.TotalBerths)
	assert.Equal(t, []string{FallbackBerthType}, tmpl.Pattern)
	assert.Equal(t, 1, tmpl.BerthsPerBay)
}

func TestResolveMalformedCoach(t *testing.T) {
	svc := newTestService()

	tmpl := svc.Resolve(models.Coach{CoachID: "Z9"})
	assert.Zero(t, tmpl.TotalBerths)
	assert.Empty(t, BuildSeats(tmpl, "Z9", nil))
}

func TestBuildSeatsCoverageAndCycling(t *testing.T) {
	svc := newTestService()
	tmpl := svc.Resolve(models.Coach{CoachID: "B1", ClassCode: "3A"})

	seats := BuildSeats(tmpl, "B1", nil)
	require.Len(t, seats, 72)

	seen := make(map[int]bool)
	for i, seat := range seats {
		assert.Equal(t, i+1, seat.SeatNumber)
		assert.False(t, seen[seat.SeatNumber])
		seen[seat.SeatNumber] = true
		assert.Equal(t, tmpl.Pattern[i%len(tmpl.Pattern)], seat.BerthType)
		assert.False(t, seat.IsBooked)
	}
}

func TestBuildSeats3ABayScenario(t *testing.T) {
	svc := newTestService()
	cfg, ok := svc.ClassConfig("3A")
	require.True(t, ok)

	seats := BuildSeats(svc.Resolve(models.Coach{CoachID: "B1", ClassCode: "3A"}), "B1", nil)
	require.Len(t, seats, 72)

	assert.Equal(t, "LB", seats[0].BerthType)
	assert.Equal(t, 1, BayIndex(cfg, 1))
	assert.False(t, SideBerth(cfg, 1))

	assert.Equal(t, "SL", seats[6].BerthType)
	assert.Equal(t, 1, BayIndex(cfg, 7))
	assert.True(t, SideBerth(cfg, 7))

	assert.Equal(t, "LB", seats[8].BerthType)
	assert.Equal(t, 2, BayIndex(cfg, 9))

	assert.Equal(t, "SU", seats[71].BerthType)
	assert.Equal(t, 9, BayIndex(cfg, 72))
	assert.True(t, SideBerth(cfg, 72))
}

func TestBuildSeatsChairCarScenario(t *testing.T) {
	svc := newTestService()
	cfg, ok := svc.ClassConfig("CC")
	require.True(t, ok)
	require.True(t, cfg.IsChairStyle)

	seats := BuildSeats(svc.Resolve(models.Coach{CoachID: "C1", ClassCode: "CC"}), "C1", nil)
	require.Len(t, seats, 78)

	// (78-1) mod 5 = 2 → aisle seat
	assert.Equal(t, "A", seats[77].BerthType)
	assert.Equal(t, "A", BerthLabel(cfg, 78))
	assert.False(t, SideBerth(cfg, 78))
}

func TestBuildSeatsEmptyPatternFallback(t *testing.T) {
	seats := BuildSeats(BerthTemplate{TotalBerths: 5}, "D2", nil)
	require.Len(t, seats, 5)
	for _, seat := range seats {
		assert.Equal(t, FallbackBerthType, seat.BerthType)
	}
}

func TestBuildSeatsPartialBayCycles(t *testing.T) {
	// 10 seats over a 4-slot pattern: the last partial bay keeps cycling
	tmpl := BerthTemplate{
		TotalBerths:  10,
		Pattern:      []string{"LB", "UB", "SL", "SU"},
		BerthsPerBay: 4,
	}
	seats := BuildSeats(tmpl, "A9", nil)
	require.Len(t, seats, 10)
	assert.Equal(t, "LB", seats[8].BerthType)
	assert.Equal(t, "UB", seats[9].BerthType)
}

func TestBuildSeatsIdempotent(t *testing.T) {
	svc := newTestService()
	tmpl := svc.Resolve(models.Coach{CoachID: "S1", ClassCode: "SL"})

	first := BuildSeats(tmpl, "S1", nil)
	second := BuildSeats(tmpl, "S1", nil)
	assert.Equal(t, first, second)
}

func TestBuildSeatsBookedLookup(t *testing.T) {
	svc := newTestService()
	tmpl := svc.Resolve(models.Coach{CoachID: "B1", ClassCode: "3A"})

	booked := func(coachID string, seatNumber int) bool {
		return coachID == "B1" && (seatNumber == 2 || seatNumber == 41)
	}
	seats := BuildSeats(tmpl, "B1", booked)

	assert.True(t, seats[1].IsBooked)
	assert.True(t, seats[40].IsBooked)
	assert.False(t, seats[0].IsBooked)
}

func TestCoachSeatsReusesPrePopulated(t *testing.T) {
	svc := newTestService()
	coach := models.Coach{
		CoachID:   "B2",
		ClassCode: "3A",
		Seats: []models.Seat{
			{SeatNumber: 1, BerthType: "LB", IsBooked: true},
			{SeatNumber: 2, BerthType: "MB"},
		},
	}

	seats := svc.CoachSeats(coach, nil)
	require.Len(t, seats, 2)
	assert.True(t, seats[0].IsBooked)

	// Overlay marks seat 2 without touching the stored slice
	overlaid := svc.CoachSeats(coach, func(coachID string, seatNumber int) bool {
		return seatNumber == 2
	})
	assert.True(t, overlaid[1].IsBooked)
	assert.False(t, coach.Seats[1].IsBooked)
}

func TestAggregateStatusThresholds(t *testing.T) {
	cases := []struct {
		name   string
		total  int
		booked int
		want   models.ClassAvailability
	}{
		{"fully booked", 72, 72, models.ClassAvailability{Status: models.StatusWaitingList, Count: 1}},
		{"two free", 72, 70, models.ClassAvailability{Status: models.StatusAvailable, Count: 2}},
		{"oversold", 72, 80, models.ClassAvailability{Status: models.StatusWaitingList, Count: 9}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AvailabilityFor(tc.total, tc.booked))
		})
	}
}

func bookedCoach(coachID, classCode string, total, booked int) models.Coach {
	seats := make([]models.Seat, total)
	for i := range seats {
		seats[i] = models.Seat{
			SeatNumber: i + 1,
			BerthType:  "LB",
			IsBooked:   i < booked,
		}
	}
	return models.Coach{CoachID: coachID, ClassCode: classCode, Seats: seats}
}

func TestAggregateAcrossCoaches(t *testing.T) {
	svc := newTestService()

	coaches := []models.Coach{
		bookedCoach("S1", "SL", 72, 72),
		bookedCoach("S2", "SL", 72, 70),
		bookedCoach("B1", "3A", 72, 72),
	}

	availability := svc.Aggregate(coaches, nil)

	// SL: 144 total, 142 booked → 2 free
	assert.Equal(t, models.ClassAvailability{Status: models.StatusAvailable, Count: 2}, availability["SL"])
	assert.Equal(t, models.ClassAvailability{Status: models.StatusWaitingList, Count: 1}, availability["3A"])
}

func TestAggregateBuildsMissingInventories(t *testing.T) {
	svc := newTestService()

	coaches := []models.Coach{
		{CoachID: "B1", ClassCode: "3A", CoachTypeID: "3A-72"},
		{CoachID: "C1", ClassCode: "CC"},
	}

	availability := svc.Aggregate(coaches, nil)
	assert.Equal(t, models.ClassAvailability{Status: models.StatusAvailable, Count: 72}, availability["3A"])
	assert.Equal(t, models.ClassAvailability{Status: models.StatusAvailable, Count: 78}, availability["CC"])
}

func TestAggregateOmitsSeatlessClasses(t *testing.T) {
	svc := newTestService()

	coaches := []models.Coach{
		bookedCoach("S1", "SL", 72, 10),
		// A class only present via a coach that yields no seats must not
		// appear at all, not even as zero availability
		{CoachID: "E1", ClassCode: "EC"},
		{CoachID: "GS", ClassCode: "GS", TotalSeats: 90},
		{CoachID: "??"},
	}

	availability := svc.Aggregate(coaches, nil)
	require.Len(t, availability, 1)
	assert.Contains(t, availability, "SL")
	assert.NotContains(t, availability, "EC")
	assert.NotContains(t, availability, "GS")
}

func TestAggregateEmptyTrain(t *testing.T) {
	svc := newTestService()

	assert.Empty(t, svc.Aggregate(nil, nil))
	assert.Empty(t, svc.Aggregate([]models.Coach{}, nil))
}

func TestGeometryAgreesWithBuilder(t *testing.T) {
	svc := newTestService()

	for _, cls := range []string{"1A", "2A", "3A", "SL", "CC", "2S"} {
		cfg, ok := svc.ClassConfig(cls)
		require.True(t, ok, cls)

		seats := BuildSeats(svc.Resolve(models.Coach{CoachID: "T", ClassCode: cls}), "T", nil)
		require.Len(t, seats, cfg.TotalBerths, cls)

		for _, seat := range seats {
			assert.Equal(t, seat.BerthType, BerthLabel(cfg, seat.SeatNumber),
				"class %s seat %d", cls, seat.SeatNumber)
		}
	}
}

func TestGeometryCoachTypeAgreement(t *testing.T) {
	svc := newTestService()
	coach := models.Coach{CoachID: "B1", CoachTypeID: "3A-72"}

	cfg, ok := svc.CoachConfig(coach)
	require.True(t, ok)

	seats := BuildSeats(svc.Resolve(coach), "B1", nil)
	for _, seat := range seats {
		assert.Equal(t, seat.BerthType, BerthLabel(cfg, seat.SeatNumber))
	}
}

func TestSideBerthRule(t *testing.T) {
	svc := newTestService()

	cfg, _ := svc.ClassConfig("2A")
	// 6 per bay, slots 5 and 6 are SL/SU
	assert.False(t, SideBerth(cfg, 4))
	assert.True(t, SideBerth(cfg, 5))
	assert.True(t, SideBerth(cfg, 6))
	assert.False(t, SideBerth(cfg, 7))

	chair, _ := svc.ClassConfig("CC")
	for n := 1; n <= chair.TotalBerths; n++ {
		assert.False(t, SideBerth(chair, n))
	}
}

func TestBerthFullName(t *testing.T) {
	assert.Equal(t, "Side Upper", BerthFullName("SU"))
	assert.Equal(t, "Window", BerthFullName("W"))
	assert.Equal(t, "SEAT", BerthFullName("SEAT"))
}
