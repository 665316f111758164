package models

// Seat is one berth/seat inside a coach. SeatNumber and BerthType are
// fixed once generated; IsBooked is flipped by the booking subsystem.
type Seat struct {
	SeatNumber int    `json:"seatNumber"`
	BerthType  string `json:"berthType"`
	IsBooked   bool   `json:"isBooked"`
}

// Coach is a coach instance on a specific train. Seats may be
// pre-populated in the layout dataset or generated on demand from the
// coach type / class code.
type Coach struct {
	CoachID     string `json:"coachId"`
	ClassCode   string `json:"classCode,omitempty"`
	CoachTypeID string `json:"coachTypeId,omitempty"`
	TotalSeats  int    `json:"totalSeats,omitempty"`
	Position    int    `json:"position,omitempty"`
	Seats       []Seat `json:"seats,omitempty"`
}

// SeatLayout is one record of data/smartRailTrainsLayout.json.
type SeatLayout struct {
	TrainNumber string  `json:"trainNumber"`
	TrainName   string  `json:"trainName,omitempty"`
	Coaches     []Coach `json:"coaches"`
}

// CoachType is a raw entry of data/coachTypes.json, keyed by a type ID
// like "SL-72". Its nested rowStructure may contain AISLE markers that
// are not seats.
type CoachType struct {
	CoachTypeID string           `json:"coachTypeId" validate:"required"`
	ClassCode   string           `json:"classCode"`
	Label       string           `json:"label"`
	TotalSeats  int              `json:"totalSeats" validate:"gt=0"`
	Layout      *CoachTypeLayout `json:"layout,omitempty"`
}

type CoachTypeLayout struct {
	RowStructure  [][]string `json:"rowStructure"`
	HasSideBerths bool       `json:"hasSideBerths,omitempty"`
}

// CoachClassConfig is the single normalized form both catalogs map into.
// BayLabels always has length BerthsPerBay; when HasSideBerths is set the
// last two labels of the bay unit are the side berths.
type CoachClassConfig struct {
	ClassCode     string   `json:"classCode"`
	Label         string   `json:"label"`
	TotalBerths   int      `json:"totalBerths"`
	BerthsPerBay  int      `json:"berthsPerBay"`
	BayLabels     []string `json:"bayLabels"`
	HasSideBerths bool     `json:"hasSideBerths"`
	IsChairStyle  bool     `json:"isChairStyle"`
}

// ClassAvailability is the per-class booking decision figure:
// status AVAILABLE with the free-seat count, or WAITING LIST with the
// next waitlist position.
type ClassAvailability struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

const (
	StatusAvailable   = "AVAILABLE"
	StatusWaitingList = "WAITING LIST"
)
