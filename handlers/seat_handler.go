package handlers

import (
	"net/http"

	"smartrail/models"
	"smartrail/monitoring"
	"smartrail/services"

	"github.com/gorilla/mux"
)

// SeatHandler serves seat inventories, the bay-grouped seat map for the
// TTE console, and class-level availability.
type SeatHandler struct {
	Store    *services.Store
	Seats    *services.SeatLayoutService
	Bookings *services.BookingStore
}

func NewSeatHandler(store *services.Store, seats *services.SeatLayoutService, bookings *services.BookingStore) *SeatHandler {
	return &SeatHandler{
		Store:    store,
		Seats:    seats,
		Bookings: bookings,
	}
}

// GetSeatLayout returns every coach of a train with its seats
// materialized. Coaches whose layout cannot be resolved come back with
// an empty seat list; that is a displayable state, not an error.
func (h *SeatHandler) GetSeatLayout(w http.ResponseWriter, r *http.Request) {
	trainNumber := mux.Vars(r)["trainNumber"]

	layout := h.Store.LayoutByTrain(trainNumber)
	if layout == nil {
		sendErrorResponse(w, "Layout not available", http.StatusNotFound)
		return
	}

	booked := h.Bookings.BookedLookup(r.Context(), trainNumber)

	coaches := make([]models.Coach, len(layout.Coaches))
	for i, coach := range layout.Coaches {
		coach.Seats = h.Seats.CoachSeats(coach, booked)
		coaches[i] = coach
	}

	writeJSON(w, http.StatusOK, models.SeatLayout{
		TrainNumber: layout.TrainNumber,
		TrainName:   layout.TrainName,
		Coaches:     coaches,
	})
}

// GetAvailability returns per-class {status, count} for a train. A train
// without layout data yields an empty availability map, not a 404.
func (h *SeatHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	trainNumber := mux.Vars(r)["trainNumber"]
	monitoring.AvailabilityQueries.Inc()

	layout := h.Store.LayoutByTrain(trainNumber)
	if layout == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"trainNumber":  trainNumber,
			"availability": map[string]models.ClassAvailability{},
		})
		return
	}

	booked := h.Bookings.BookedLookup(r.Context(), trainNumber)
	availability := h.Seats.Aggregate(layout.Coaches, booked)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"trainNumber":  trainNumber,
		"availability": availability,
	})
}

type seatMapSeat struct {
	SeatNumber int    `json:"seatNumber"`
	BerthType  string `json:"berthType"`
	BerthName  string `json:"berthName"`
	IsSide     bool   `json:"isSide"`
	IsBooked   bool   `json:"isBooked"`
}

type seatMapBay struct {
	Bay   int           `json:"bay"`
	Seats []seatMapSeat `json:"seats"`
}

// GetSeatMap returns a single coach's seats grouped into visual bays
// (rows, for chair coaches), with side-berth flags for quota rules.
func (h *SeatHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainNumber := vars["trainNumber"]
	coachID := vars["coachId"]

	layout := h.Store.LayoutByTrain(trainNumber)
	if layout == nil {
		sendErrorResponse(w, "Layout not available", http.StatusNotFound)
		return
	}

	var coach *models.Coach
	for i := range layout.Coaches {
		if layout.Coaches[i].CoachID == coachID {
			coach = &layout.Coaches[i]
			break
		}
	}
	if coach == nil {
		sendErrorResponse(w, "Coach not found", http.StatusNotFound)
		return
	}

	cfg, hasConfig := h.Seats.CoachConfig(*coach)
	if !hasConfig {
		// Degraded layouts still render: derive the bay shape from the
		// resolved template (one seat per bay for the generic fallback).
		tmpl := h.Seats.Resolve(*coach)
		cfg = models.CoachClassConfig{
			ClassCode:     coach.ClassCode,
			BerthsPerBay:  tmpl.BerthsPerBay,
			BayLabels:     tmpl.Pattern,
			HasSideBerths: tmpl.HasSideBerths,
		}
	}

	booked := h.Bookings.BookedLookup(r.Context(), trainNumber)
	seats := h.Seats.CoachSeats(*coach, booked)

	bays := make([]seatMapBay, 0)
	bayIndex := make(map[int]int)
	for _, seat := range seats {
		bay := services.BayIndex(cfg, seat.SeatNumber)
		idx, ok := bayIndex[bay]
		if !ok {
			bays = append(bays, seatMapBay{Bay: bay})
			idx = len(bays) - 1
			bayIndex[bay] = idx
		}
		bays[idx].Seats = append(bays[idx].Seats, seatMapSeat{
			SeatNumber: seat.SeatNumber,
			BerthType:  seat.BerthType,
			BerthName:  services.BerthFullName(seat.BerthType),
			IsSide:     services.SideBerth(cfg, seat.SeatNumber),
			IsBooked:   seat.IsBooked,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"trainNumber":  trainNumber,
		"coachId":      coach.CoachID,
		"classCode":    coach.ClassCode,
		"label":        cfg.Label,
		"isChairStyle": cfg.IsChairStyle,
		"berthsPerBay": cfg.BerthsPerBay,
		"totalSeats":   len(seats),
		"bays":         bays,
	})
}
