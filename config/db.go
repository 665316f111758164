package config

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	maxRetries = 5
	retryDelay = 5 * time.Second
)

// InitPostgres opens the booking-state database. Returns nil without
// error when no DB_HOST is configured: the backend then serves seat
// state from the datasets alone.
func InitPostgres(cfg *Config) (*sql.DB, error) {
	connStr := cfg.PostgresConnString()
	if connStr == "" {
		log.Println("No booking database configured, running dataset-only")
		return nil, nil
	}

	var db *sql.DB
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(5)
			db.SetConnMaxLifetime(30 * time.Minute)
			log.Println("PostgreSQL connection established")
			return db, nil
		}
		log.Printf("PostgreSQL connection attempt %d/%d failed: %v", attempt, maxRetries, err)
		if attempt < maxRetries {
			time.Sleep(retryDelay)
		}
	}
	return nil, err
}

// InitMongo connects the complaint store. Returns nil without error when
// MONGO_URI is unset.
func InitMongo(cfg *Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.MongoURI == "" {
		log.Println("No MongoDB configured, complaint endpoints disabled")
		return nil, nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, err
	}

	log.Println("MongoDB connection established")
	return client, client.Database(cfg.MongoDBName), nil
}
