package models

// Train is one record of the local trains database
// (data/full_trains_database.json).
type Train struct {
	TrainNumber string      `json:"trainNumber"`
	TrainName   string      `json:"trainName"`
	Source      string      `json:"source"`
	Destination string      `json:"destination"`
	RunningDays []string    `json:"runningDays,omitempty"`
	Schedule    []TrainStop `json:"schedule,omitempty"`
}

type TrainStop struct {
	StationCode          string  `json:"stationCode"`
	StationName          string  `json:"stationName"`
	ArrivalTime          string  `json:"arrivalTime,omitempty"`
	DepartureTime        string  `json:"departureTime,omitempty"`
	Day                  int     `json:"day,omitempty"`
	DistanceFromSourceKm float64 `json:"distanceFromSourceKm"`
	Platform             string  `json:"platform,omitempty"`
	HaltMinutes          int     `json:"haltMinutes,omitempty"`
}

// TrainSummary is the shape returned by the search and between-stations
// endpoints, without the full schedule attached.
type TrainSummary struct {
	TrainNumber string     `json:"trainNumber"`
	TrainName   string     `json:"trainName"`
	Source      string     `json:"trainSource"`
	Destination string     `json:"trainDestination"`
	FromStation *TrainStop `json:"fromStation,omitempty"`
	ToStation   *TrainStop `json:"toStation,omitempty"`
	RunningDays []string   `json:"runningDays"`
}
