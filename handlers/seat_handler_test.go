package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartrail/models"
	"smartrail/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *services.Store {
	store := services.NewStore()
	store.Trains = []models.Train{
		{
			TrainNumber: "12622",
			TrainName:   "Tamil Nadu SF Express",
			Source:      "NDLS",
			Destination: "MAS",
			Schedule: []models.TrainStop{
				{StationCode: "NDLS", StationName: "New Delhi", DepartureTime: "22:30"},
				{StationCode: "MAS", StationName: "Chennai Central", ArrivalTime: "07:10", DistanceFromSourceKm: 2180},
			},
		},
	}
	store.SeatLayouts = []models.SeatLayout{
		{
			TrainNumber: "12622",
			TrainName:   "Tamil Nadu SF Express",
			Coaches: []models.Coach{
				{CoachID: "B1", ClassCode: "3A", Position: 1},
				{CoachID: "S1", ClassCode: "SL", Position: 2,
					Seats: []models.Seat{
						{SeatNumber: 1, BerthType: "LB", IsBooked: true},
						{SeatNumber: 2, BerthType: "MB"},
					}},
				{CoachID: "GS1", ClassCode: "GS", TotalSeats: 90, Position: 3},
			},
		},
	}
	return store
}

func newSeatHandler(store *services.Store) *SeatHandler {
	return NewSeatHandler(store, services.NewSeatLayoutService(store), services.NewBookingStore(nil))
}

func seatRouter(h *SeatHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/trains/{trainNumber}/seats", h.GetSeatLayout).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/trains/{trainNumber}/availability", h.GetAvailability).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/trains/{trainNumber}/coaches/{coachId}/seatmap", h.GetSeatMap).Methods(http.MethodGet)
	return r
}

func TestGetSeatLayout(t *testing.T) {
	router := seatRouter(newSeatHandler(testStore()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trains/12622/seats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.SeatLayout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Coaches, 3)

	// 3A coach generated from the class catalog
	assert.Len(t, resp.Coaches[0].Seats, 72)
	assert.Equal(t, "LB", resp.Coaches[0].Seats[0].BerthType)

	// Pre-populated sleeper coach kept as stored
	require.Len(t, resp.Coaches[1].Seats, 2)
	assert.True(t, resp.Coaches[1].Seats[0].IsBooked)

	// Unreserved coach renders with no seats
	assert.Empty(t, resp.Coaches[2].Seats)
}

func TestGetSeatLayoutNotFound(t *testing.T) {
	router := seatRouter(newSeatHandler(testStore()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trains/99999/seats", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Layout not available")
}

func TestGetAvailability(t *testing.T) {
	router := seatRouter(newSeatHandler(testStore()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trains/12622/availability", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TrainNumber  string                              `json:"trainNumber"`
		Availability map[string]models.ClassAvailability `json:"availability"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "12622", resp.TrainNumber)
	assert.Equal(t, models.ClassAvailability{Status: models.StatusAvailable, Count: 72}, resp.Availability["3A"])
	// 2 sleeper seats, 1 booked
	assert.Equal(t, models.ClassAvailability{Status: models.StatusAvailable, Count: 1}, resp.Availability["SL"])
	assert.NotContains(t, resp.Availability, "GS")
}

func TestGetAvailabilityUnknownTrain(t *testing.T) {
	router := seatRouter(newSeatHandler(testStore()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trains/99999/availability", nil))

	// Unknown trains answer with an empty map, not an error
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Availability map[string]models.ClassAvailability `json:"availability"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Availability)
	assert.Empty(t, resp.Availability)
}

func TestGetSeatMap(t *testing.T) {
	router := seatRouter(newSeatHandler(testStore()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trains/12622/coaches/B1/seatmap", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		CoachID      string `json:"coachId"`
		ClassCode    string `json:"classCode"`
		BerthsPerBay int    `json:"berthsPerBay"`
		TotalSeats   int    `json:"totalSeats"`
		Bays         []struct {
			Bay   int `json:"bay"`
			Seats []struct {
				SeatNumber int    `json:"seatNumber"`
				BerthType  string `json:"berthType"`
				BerthName  string `json:"berthName"`
				IsSide     bool   `json:"isSide"`
			} `json:"seats"`
		} `json:"bays"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "B1", resp.CoachID)
	assert.Equal(t, "3A", resp.ClassCode)
	assert.Equal(t, 8, resp.BerthsPerBay)
	assert.Equal(t, 72, resp.TotalSeats)
	require.Len(t, resp.Bays, 9)

	first := resp.Bays[0]
	require.Len(t, first.Seats, 8)
	assert.Equal(t, "Lower Berth", first.Seats[0].BerthName)
	assert.False(t, first.Seats[0].IsSide)
	assert.Equal(t, "SL", first.Seats[6].BerthType)
	assert.True(t, first.Seats[6].IsSide)
}

func TestGetSeatMapCoachNotFound(t *testing.T) {
	router := seatRouter(newSeatHandler(testStore()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trains/12622/coaches/Z9/seatmap", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Coach not found")
}
