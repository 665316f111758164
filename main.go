package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartrail/config"
	"smartrail/handlers"
	"smartrail/middleware"
	"smartrail/monitoring"
	"smartrail/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	startTime := time.Now()
	log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

	cfg := config.Load()
	config.InitCache()

	// Load the static datasets the reservation views are served from
	store := services.NewStore()
	if err := store.Load(cfg.DataDir); err != nil {
		log.Printf("Warning: %v", err)
	}

	// Booking state lives in Postgres when configured; seat generation
	// falls back to dataset-declared state without it
	db, err := config.InitPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	mongoClient, mongoDB, err := config.InitMongo(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	if mongoClient != nil {
		defer mongoClient.Disconnect(context.Background())
	}

	// Services
	seatService := services.NewSeatLayoutService(store)
	fareService := services.NewFareService(store)
	bookingStore := services.NewBookingStore(db)
	complaintStore := services.NewComplaintStore(mongoDB)
	railRadar := services.NewRailRadarClient(cfg.RailRadarBaseURL, cfg.RailRadarAPIKey, config.APICache)

	// Handlers
	trainHandler := handlers.NewTrainHandler(store, railRadar, fareService)
	seatHandler := handlers.NewSeatHandler(store, seatService, bookingStore)
	stationHandler := handlers.NewStationHandler(store)
	bookingHandler := handlers.NewBookingHandler(bookingStore)
	complaintHandler := handlers.NewComplaintHandler(complaintStore)
	authHandler := handlers.NewAuthHandler(cfg)

	r := mux.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Requested-With",
			"Origin",
		},
		MaxAge: 86400,
	})

	r.Use(corsHandler.Handler)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Handle("/metrics", monitoring.Handler()).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api, cfg, trainHandler, seatHandler, stationHandler,
		bookingHandler, complaintHandler, authHandler)
	log.Println("Routes registered successfully")

	api.HandleFunc("/health/detailed", detailedHealthCheck(store, db, mongoClient != nil)).Methods("GET")

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + cfg.Port,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			serverErrors <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("Shutdown signal received")
	case err := <-serverErrors:
		log.Printf("Server error received: %v", err)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	} else {
		log.Println("Server shutdown completed successfully")
	}
}

func registerRoutes(api *mux.Router, cfg *config.Config,
	trains *handlers.TrainHandler, seats *handlers.SeatHandler,
	stations *handlers.StationHandler, bookings *handlers.BookingHandler,
	complaints *handlers.ComplaintHandler, auth *handlers.AuthHandler) {

	// Train routes
	api.HandleFunc("/trains/search", trains.SearchTrains).Methods("GET")
	api.HandleFunc("/trains/between-stations", trains.GetTrainsBetween).Methods("GET")
	api.HandleFunc("/trains/{trainNumber}", trains.GetTrainDetails).Methods("GET")
	api.HandleFunc("/trains/{trainNumber}/schedule", trains.GetTrainSchedule).Methods("GET")
	api.HandleFunc("/trains/{trainNumber}/fare", trains.GetFare).Methods("GET")

	// Seat routes
	api.HandleFunc("/trains/{trainNumber}/seat-layout", seats.GetSeatLayout).Methods("GET")
	api.HandleFunc("/trains/{trainNumber}/seat-map/{coachId}", seats.GetSeatMap).Methods("GET")
	api.HandleFunc("/trains/{trainNumber}/availability", seats.GetAvailability).Methods("GET")

	// Station routes
	api.HandleFunc("/stations/search", stations.SearchStations).Methods("GET")
	api.HandleFunc("/stations/{stationCode}", stations.GetStationDetails).Methods("GET")

	// Booking routes (PNR status is public, chart actions are TTE-only)
	api.HandleFunc("/bookings/{pnr}", bookings.GetBookingStatus).Methods("GET")

	authRequired := middleware.AuthMiddleware(cfg.JWTSecret)
	tte := api.PathPrefix("").Subrouter()
	tte.Use(authRequired)
	tte.HandleFunc("/trains/{trainNumber}/coaches/{coachId}/passengers", bookings.GetCoachPassengers).Methods("GET")
	tte.HandleFunc("/passengers/{id}/verify", bookings.VerifyPassenger).Methods("POST")
	tte.HandleFunc("/passengers/{id}/no-show", bookings.MarkNoShow).Methods("POST")

	// Complaint routes
	api.HandleFunc("/complaints", complaints.CreateComplaint).Methods("POST")
	api.HandleFunc("/complaints", complaints.ListComplaints).Methods("GET")

	// Auth
	api.HandleFunc("/auth/login", auth.Login).Methods("POST")

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
}

type healthResponse struct {
	Status   string `json:"status"`
	Datasets struct {
		Trains      int `json:"trains"`
		SeatLayouts int `json:"seat_layouts"`
		CoachTypes  int `json:"coach_types"`
		Stations    int `json:"stations"`
	} `json:"datasets"`
	BookingDB   string `json:"booking_db"`
	ComplaintDB string `json:"complaint_db"`
	Error       string `json:"error,omitempty"`
}

func detailedHealthCheck(store *services.Store, db *sql.DB, mongoUp bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := healthResponse{Status: "ok"}
		response.Datasets.Trains = len(store.Trains)
		response.Datasets.SeatLayouts = len(store.SeatLayouts)
		response.Datasets.CoachTypes = len(store.CoachTypes)
		response.Datasets.Stations = len(store.Stations)

		if db == nil {
			response.BookingDB = "not_configured"
		} else if err := db.Ping(); err != nil {
			response.Status = "degraded"
			response.BookingDB = "connection_error"
			response.Error = err.Error()
		} else {
			response.BookingDB = "connected"
		}

		if !mongoUp {
			response.ComplaintDB = "not_configured"
		} else {
			response.ComplaintDB = "connected"
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
