package handlers

import (
	"net/http"
	"time"

	"smartrail/services"

	"github.com/gorilla/mux"
)

type StationHandler struct {
	Store *services.Store
}

func NewStationHandler(store *services.Store) *StationHandler {
	return &StationHandler{Store: store}
}

const stationSearchLimit = 20

// SearchStations handles station autocomplete requests.
func (h *StationHandler) SearchStations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(query) < 2 {
		sendErrorResponse(w, "Query must be at least 2 characters", http.StatusBadRequest)
		return
	}

	results := h.Store.SearchStations(query, stationSearchLimit)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": results,
		"count":       len(results),
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

// GetStationDetails returns one station plus the trains calling there.
func (h *StationHandler) GetStationDetails(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["stationCode"]

	station, ok := h.Store.StationByCode(code)
	if !ok {
		sendErrorResponse(w, "Station not found", http.StatusNotFound)
		return
	}

	trains := make([]map[string]interface{}, 0)
	for _, train := range h.Store.Trains {
		if stop, idx := services.FindStop(train.Schedule, station.Code); idx != -1 {
			trains = append(trains, map[string]interface{}{
				"trainNumber": train.TrainNumber,
				"trainName":   train.TrainName,
				"arrival":     stop.ArrivalTime,
				"departure":   stop.DepartureTime,
				"platform":    stop.Platform,
				"day":         stop.Day,
			})
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"station":   station,
		"trains":    trains,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
