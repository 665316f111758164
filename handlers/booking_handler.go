package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"smartrail/services"

	"github.com/gorilla/mux"
)

// BookingHandler exposes the reservation store: PNR status for
// passengers, coach charts and verification actions for the TTE console.
type BookingHandler struct {
	Bookings *services.BookingStore
}

func NewBookingHandler(bookings *services.BookingStore) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

// GetBookingStatus returns the booking behind a PNR.
func (h *BookingHandler) GetBookingStatus(w http.ResponseWriter, r *http.Request) {
	pnr := mux.Vars(r)["pnr"]

	passenger, err := h.Bookings.PassengerByPNR(r.Context(), pnr)
	if errors.Is(err, services.ErrNotFound) {
		sendErrorResponse(w, "PNR not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("GetBookingStatus: %v", err)
		sendErrorResponse(w, "Booking lookup failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, passenger)
}

// GetCoachPassengers returns the passenger chart of one coach.
func (h *BookingHandler) GetCoachPassengers(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainNumber := vars["trainNumber"]
	coachID := vars["coachId"]

	passengers, err := h.Bookings.PassengersByCoach(r.Context(), trainNumber, coachID)
	if err != nil {
		log.Printf("GetCoachPassengers: %v", err)
		sendErrorResponse(w, "Passenger chart unavailable", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"trainNumber": trainNumber,
		"coachId":     coachID,
		"passengers":  passengers,
		"count":       len(passengers),
	})
}

// VerifyPassenger records a ticket check.
func (h *BookingHandler) VerifyPassenger(w http.ResponseWriter, r *http.Request) {
	h.updatePassenger(w, r, h.Bookings.MarkVerified, "verified")
}

// MarkNoShow flags a passenger who did not board.
func (h *BookingHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	h.updatePassenger(w, r, h.Bookings.MarkNoShow, "no-show")
}

func (h *BookingHandler) updatePassenger(w http.ResponseWriter, r *http.Request,
	update func(ctx context.Context, id int64) error, action string) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		sendErrorResponse(w, "Invalid passenger id", http.StatusBadRequest)
		return
	}

	err = update(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		sendErrorResponse(w, "Passenger not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("updatePassenger(%s): %v", action, err)
		sendErrorResponse(w, "Update failed", http.StatusInternalServerError)
		return
	}

	log.Printf("Passenger %d marked %s", id, action)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id,
		"action":  action,
	})
}
