package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"

	"smartrail/config"
	"smartrail/models"
	"smartrail/services"
	"smartrail/utils"

	"github.com/gorilla/mux"
	"github.com/patrickmn/go-cache"
)

// TrainHandler serves train data endpoints: local datasets first, cached
// RailRadar responses second, a live API call last.
type TrainHandler struct {
	Store     *services.Store
	RailRadar *services.RailRadarClient
	Fares     *services.FareService
}

func NewTrainHandler(store *services.Store, railRadar *services.RailRadarClient, fares *services.FareService) *TrainHandler {
	return &TrainHandler{
		Store:     store,
		RailRadar: railRadar,
		Fares:     fares,
	}
}

// GetTrainDetails returns one train, local-first with API fallback.
func (h *TrainHandler) GetTrainDetails(w http.ResponseWriter, r *http.Request) {
	trainNumber := mux.Vars(r)["trainNumber"]

	if train := h.Store.TrainByNumber(trainNumber); train != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"source":  "local",
			"data":    train,
		})
		return
	}

	data, source, err := h.RailRadar.FetchCached(r.Context(), "train:"+trainNumber, "/trains/"+trainNumber)
	if err != nil {
		log.Printf("GetTrainDetails: %v", err)
		sendErrorResponse(w, "Train data unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"source":  source,
		"data":    data,
	})
}

// GetTrainSchedule returns a train's stop list, local-first.
func (h *TrainHandler) GetTrainSchedule(w http.ResponseWriter, r *http.Request) {
	trainNumber := mux.Vars(r)["trainNumber"]

	if train := h.Store.TrainByNumber(trainNumber); train != nil && len(train.Schedule) > 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"source":  "local",
			"data":    train.Schedule,
		})
		return
	}

	data, source, err := h.RailRadar.FetchCached(r.Context(), "schedule:"+trainNumber, "/trains/"+trainNumber+"/schedule")
	if err != nil {
		log.Printf("GetTrainSchedule: %v", err)
		sendErrorResponse(w, "Schedule unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"source":  source,
		"data":    data,
	})
}

// SearchTrains matches local trains by name or number.
func (h *TrainHandler) SearchTrains(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		sendErrorResponse(w, "Query parameter 'q' is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.Store.SearchTrains(query))
}

// apiTrain is the subset of a RailRadar between-stations entry the merge
// cares about.
type apiTrain struct {
	TrainNumber     string   `json:"trainNumber"`
	TrainName       string   `json:"trainName"`
	FromStationCode string   `json:"fromStationCode"`
	ToStationCode   string   `json:"toStationCode"`
	Source          string   `json:"source"`
	Destination     string   `json:"destination"`
	DepartureTime   string   `json:"departureTime"`
	ArrivalTime     string   `json:"arrivalTime"`
	RunningDays     []string `json:"runningDays"`
}

// GetTrainsBetween merges local matches with (cached) live API results,
// sorted chronologically by departure.
func (h *TrainHandler) GetTrainsBetween(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source == "" {
		source = r.URL.Query().Get("from")
	}
	destination := r.URL.Query().Get("destination")
	if destination == "" {
		destination = r.URL.Query().Get("to")
	}
	date := r.URL.Query().Get("date")

	if source == "" || destination == "" {
		sendErrorResponse(w, "Require source and destination", http.StatusBadRequest)
		return
	}

	merged := h.Store.TrainsBetween(source, destination)
	existing := make(map[string]bool, len(merged))
	for _, t := range merged {
		existing[t.TrainNumber] = true
	}

	for _, t := range h.fetchAPITrains(r, source, destination, date) {
		if t.TrainNumber == "" || existing[t.TrainNumber] {
			continue
		}
		existing[t.TrainNumber] = true

		name := t.TrainName
		if name == "" {
			name = "Express"
		}
		src := t.FromStationCode
		if src == "" {
			src = t.Source
		}
		if src == "" {
			src = "Unknown"
		}
		dst := t.ToStationCode
		if dst == "" {
			dst = t.Destination
		}
		if dst == "" {
			dst = "Unknown"
		}
		departure := t.DepartureTime
		if departure == "" {
			departure = "00:00"
		}
		arrival := t.ArrivalTime
		if arrival == "" {
			arrival = "00:00"
		}

		merged = append(merged, models.TrainSummary{
			TrainNumber: t.TrainNumber,
			TrainName:   name,
			Source:      src,
			Destination: dst,
			FromStation: &models.TrainStop{StationCode: source, DepartureTime: departure},
			ToStation:   &models.TrainStop{StationCode: destination, ArrivalTime: arrival},
			RunningDays: t.RunningDays,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return departureKey(merged[i]) < departureKey(merged[j])
	})

	writeJSON(w, http.StatusOK, merged)
}

func departureKey(t models.TrainSummary) string {
	if t.FromStation == nil {
		return "23:59"
	}
	if t.FromStation.DepartureTime != "" {
		return t.FromStation.DepartureTime
	}
	if t.FromStation.ArrivalTime != "" {
		return t.FromStation.ArrivalTime
	}
	return "23:59"
}

// fetchAPITrains returns the live leg of a between-stations search,
// cache-aside over the search cache. API failures only shrink the result.
func (h *TrainHandler) fetchAPITrains(r *http.Request, source, destination, date string) []apiTrain {
	cacheKey := "trainsBetween:" + source + ":" + destination + ":" + date

	if config.SearchCache != nil {
		if cached, found := config.SearchCache.Get(cacheKey); found {
			log.Printf("[CACHE HIT] %s", cacheKey)
			return cached.([]apiTrain)
		}
	}

	path := "/trainsBetweenStations?fromStationCode=" + source +
		"&toStationCode=" + destination + "&dateOfJourney=" + date
	raw, err := h.RailRadar.Fetch(r.Context(), path)
	if err != nil {
		log.Printf("GetTrainsBetween: RailRadar error: %v", err)
		return nil
	}

	trains := parseAPITrains(raw)
	if config.SearchCache != nil && trains != nil {
		config.SearchCache.Set(cacheKey, trains, cache.DefaultExpiration)
	}
	return trains
}

// parseAPITrains accepts either a bare array or an envelope {data: [...]}.
func parseAPITrains(raw json.RawMessage) []apiTrain {
	var direct []apiTrain
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct
	}
	var envelope struct {
		Data []apiTrain `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		return envelope.Data
	}
	return nil
}

// GetFare quotes per-class fares for a journey.
func (h *TrainHandler) GetFare(w http.ResponseWriter, r *http.Request) {
	trainNumber := mux.Vars(r)["trainNumber"]
	source := r.URL.Query().Get("source")
	destination := r.URL.Query().Get("destination")
	distanceKm := utils.ParseDistance(r.URL.Query().Get("distanceKm"))

	writeJSON(w, http.StatusOK, h.Fares.Quote(trainNumber, source, destination, distanceKm))
}
