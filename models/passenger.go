package models

import "time"

// Passenger is a booking record in the reservation store. Status follows
// the chart vocabulary: Confirmed, RAC, Waitlist, No-Show, Cancelled.
// Confirmed and RAC occupy a berth.
type Passenger struct {
	ID          int64     `json:"id"`
	PNR         string    `json:"pnr"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	Mobile      string    `json:"mobile,omitempty"`
	TrainNumber string    `json:"trainNumber"`
	CoachID     string    `json:"coachId"`
	SeatNo      int       `json:"seatNo"`
	Boarding    string    `json:"boarding"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	TicketClass string    `json:"ticketClass,omitempty"`
	Verified    bool      `json:"verified"`
	VerifiedAt  time.Time `json:"verifiedAt,omitempty"`
	Fare        float64   `json:"fare,omitempty"`
}

const (
	PassengerConfirmed = "Confirmed"
	PassengerRAC       = "RAC"
	PassengerWaitlist  = "Waitlist"
	PassengerNoShow    = "No-Show"
	PassengerCancelled = "Cancelled"
)
