package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	DataDir     string

	AllowedOrigins []string

	RailRadarBaseURL string
	RailRadarAPIKey  string

	MongoURI    string
	MongoDBName string

	JWTSecret   string
	TTEID       string
	TTEPassword string
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	return &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
		DataDir:     getEnvWithDefault("DATA_DIR", "data"),

		AllowedOrigins: splitList(getEnvWithDefault("ALLOWED_ORIGINS",
			"http://localhost:5173,http://localhost:5174,http://localhost:3000")),

		RailRadarBaseURL: getEnvWithDefault("RAILRADAR_API_BASE", "https://railradar.in/api/v1"),
		RailRadarAPIKey:  os.Getenv("RAILRADAR_API_KEY"),

		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDBName: getEnvWithDefault("MONGO_DB_NAME", "smartrail"),

		JWTSecret:   getEnvWithDefault("JWT_SECRET", "smartrail-dev-secret"),
		TTEID:       getEnvWithDefault("TTE_ID", "TTE-4521"),
		TTEPassword: getEnvWithDefault("TTE_PASSWORD", "smartrail"),
	}
}

// PostgresConnString builds the booking-store connection string. Empty
// when no DB_HOST is configured, which disables the store.
func (c *Config) PostgresConnString() string {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	port := getEnvWithDefault("DB_PORT", "5432")
	user := getEnvWithDefault("DB_USER", "postgres")
	password := getEnvWithDefault("DB_PASSWORD", "postgres")
	dbname := getEnvWithDefault("DB_NAME", "smartrail")
	sslmode := getEnvWithDefault("DB_SSLMODE", "disable")

	return "host=" + host + " port=" + port + " user=" + user +
		" password=" + password + " dbname=" + dbname + " sslmode=" + sslmode
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
