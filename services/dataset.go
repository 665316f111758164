package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"smartrail/models"

	"github.com/go-playground/validator/v10"
)

const (
	trainsFile     = "full_trains_database.json"
	seatLayoutFile = "smartRailTrainsLayout.json"
	coachTypesFile = "coachTypes.json"
)

// Station code aliases kept for frontend autocomplete compatibility.
var stationAliases = map[string]string{
	"tvla":       "trvl",
	"thiruvalla": "trvl",
	"chengannur": "cngr",
}

// Store holds the statically loaded train, layout and coach-type tables.
// It is read-only after Load and safe for concurrent readers.
type Store struct {
	Trains       []models.Train
	SeatLayouts  []models.SeatLayout
	CoachTypes   map[string]models.CoachType
	ClassConfigs map[string]models.CoachClassConfig
	Stations     map[string]models.Station

	validate *validator.Validate
}

// NewStore returns a Store seeded with the built-in class-code catalog.
// Call Load to read the JSON datasets on top of it.
func NewStore() *Store {
	st := &Store{
		CoachTypes:   make(map[string]models.CoachType),
		ClassConfigs: make(map[string]models.CoachClassConfig),
		Stations:     make(map[string]models.Station),
		validate:     validator.New(),
	}
	for code, cfg := range defaultClassConfigs {
		st.ClassConfigs[code] = cfg
	}
	return st
}

// Load reads the three dataset files from dir. A missing file is logged
// and skipped; the server still starts with whatever data is present.
func (st *Store) Load(dir string) error {
	trainsPath := filepath.Join(dir, trainsFile)
	if err := readJSONFile(trainsPath, &st.Trains); err != nil {
		log.Printf("[DataLoader] Warning: %v", err)
	} else {
		log.Printf("[DataLoader] Loaded %d trains", len(st.Trains))
	}
	st.extractStations()

	layoutPath := filepath.Join(dir, seatLayoutFile)
	if err := readJSONFile(layoutPath, &st.SeatLayouts); err != nil {
		log.Printf("[DataLoader] Warning: %v", err)
	} else {
		log.Printf("[DataLoader] Loaded %d seat layouts", len(st.SeatLayouts))
	}

	typesPath := filepath.Join(dir, coachTypesFile)
	var coachTypes []models.CoachType
	if err := readJSONFile(typesPath, &coachTypes); err != nil {
		log.Printf("[DataLoader] Warning: %v", err)
	}
	loaded := 0
	for _, ct := range coachTypes {
		if err := st.validate.Struct(ct); err != nil {
			log.Printf("[DataLoader] Skipping coach type %q: %v", ct.CoachTypeID, err)
			continue
		}
		st.CoachTypes[ct.CoachTypeID] = ct
		loaded++
	}
	if loaded > 0 {
		log.Printf("[DataLoader] Loaded %d coach types", loaded)
	}

	if len(st.Trains) == 0 && len(st.SeatLayouts) == 0 {
		return fmt.Errorf("no datasets found under %s", dir)
	}
	return nil
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// extractStations builds the unique station table out of every train
// schedule, plus the manual alias overrides.
func (st *Store) extractStations() {
	for _, train := range st.Trains {
		for _, stop := range train.Schedule {
			if stop.StationCode == "" {
				continue
			}
			if _, ok := st.Stations[stop.StationCode]; !ok {
				st.Stations[stop.StationCode] = models.Station{
					Code: stop.StationCode,
					Name: stop.StationName,
				}
			}
		}
	}
	// Manual override so autocomplete finds Thiruvalla under its old code
	st.Stations["TVLA"] = models.Station{Code: "TRVL", Name: "Thiruvalla (TVLA)"}
	if len(st.Stations) > 0 {
		log.Printf("[DataLoader] Extracted %d unique stations", len(st.Stations))
	}
}

func (st *Store) TrainByNumber(trainNumber string) *models.Train {
	for i := range st.Trains {
		if st.Trains[i].TrainNumber == trainNumber {
			return &st.Trains[i]
		}
	}
	return nil
}

func (st *Store) LayoutByTrain(trainNumber string) *models.SeatLayout {
	for i := range st.SeatLayouts {
		if st.SeatLayouts[i].TrainNumber == trainNumber {
			return &st.SeatLayouts[i]
		}
	}
	return nil
}

func (st *Store) StationByCode(code string) (models.Station, bool) {
	s, ok := st.Stations[strings.ToUpper(code)]
	return s, ok
}

// SearchStations matches code or name, capped at limit results.
func (st *Store) SearchStations(query string, limit int) []models.Station {
	q := strings.ToLower(query)
	results := make([]models.Station, 0)
	for _, station := range st.Stations {
		if strings.Contains(strings.ToLower(station.Code), q) ||
			strings.Contains(strings.ToLower(station.Name), q) {
			results = append(results, station)
			if len(results) >= limit {
				break
			}
		}
	}
	return results
}

// MatchStation reports whether a schedule stop matches a user-supplied
// station code or name. Short queries must match the code exactly.
func MatchStation(stop models.TrainStop, codeOrName string) bool {
	query := strings.ToLower(codeOrName)
	if alias, ok := stationAliases[query]; ok {
		query = alias
	}
	code := strings.ToLower(stop.StationCode)
	if len(query) <= 4 {
		return code == query
	}
	return code == query || strings.Contains(strings.ToLower(stop.StationName), query)
}

// FindStop returns the first schedule stop matching codeOrName, with its
// index, or index -1.
func FindStop(schedule []models.TrainStop, codeOrName string) (*models.TrainStop, int) {
	for i := range schedule {
		if MatchStation(schedule[i], codeOrName) {
			return &schedule[i], i
		}
	}
	return nil, -1
}

// SearchTrains matches by number or name. The frontend sends queries like
// "Tamil Nadu Exp (12622)" or a bare number, so a trailing parenthesised
// number wins as an exact match.
func (st *Store) SearchTrains(query string) []models.TrainSummary {
	extracted := extractTrainNumber(query)
	lower := strings.ToLower(query)

	results := make([]models.TrainSummary, 0)
	for _, train := range st.Trains {
		match := false
		switch {
		case extracted != "" && train.TrainNumber == extracted:
			match = true
		case strings.Contains(strings.ToLower(train.TrainNumber), lower):
			match = true
		case strings.Contains(strings.ToLower(train.TrainName), lower):
			match = true
		case strings.Contains(query, train.TrainNumber):
			match = true
		}
		if match {
			results = append(results, models.TrainSummary{
				TrainNumber: train.TrainNumber,
				TrainName:   train.TrainName,
				Source:      train.Source,
				Destination: train.Destination,
				RunningDays: train.RunningDays,
			})
		}
	}
	return results
}

func extractTrainNumber(query string) string {
	query = strings.TrimSpace(query)
	if end := strings.LastIndex(query, ")"); end == len(query)-1 {
		if start := strings.LastIndex(query, "("); start >= 0 {
			candidate := query[start+1 : end]
			if candidate != "" && isDigits(candidate) {
				return candidate
			}
		}
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, query)
	return digits
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// TrainsBetween lists local trains serving source before destination.
func (st *Store) TrainsBetween(source, destination string) []models.TrainSummary {
	results := make([]models.TrainSummary, 0)
	for _, train := range st.Trains {
		if len(train.Schedule) == 0 {
			continue
		}
		fromStop, fromIdx := FindStop(train.Schedule, source)
		toStop, toIdx := FindStop(train.Schedule, destination)
		if fromIdx == -1 || toIdx == -1 || fromIdx >= toIdx {
			continue
		}
		results = append(results, models.TrainSummary{
			TrainNumber: train.TrainNumber,
			TrainName:   train.TrainName,
			Source:      train.Source,
			Destination: train.Destination,
			FromStation: fromStop,
			ToStation:   toStop,
			RunningDays: train.RunningDays,
		})
	}
	return results
}
