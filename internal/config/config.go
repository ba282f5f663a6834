package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppEnv   string
	HTTPAddr string

	// Backend flight/airport/chat API
	BackendURL     string
	RequestTimeout time.Duration

	// Polling
	AirportPollInterval time.Duration
	FlightPollInterval  time.Duration

	// View sessions
	ViewTTL        time.Duration
	ViewTokenTTL   time.Duration
	ViewSecret     string
	TrackCacheTTL  time.Duration
	WeatherTTL     time.Duration
	AllowedOrigins []string

	// Background jobs
	ViewReapInterval    time.Duration
	WeatherSyncInterval time.Duration

	// Rate limiting (per client IP)
	RateLimitPerSecond float64
	RateLimitBurst     int

	// Redis (optional shared cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Postgres (optional history store)
	PGHost     string
	PGPort     string
	PGUser     string
	PGDB       string
	PGPassword string
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	// Missing .env is normal outside local development.
	_ = godotenv.Load()

	return Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		BackendURL:          strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8000"), "/"),
		RequestTimeout:      getEnvDuration("BACKEND_TIMEOUT", 10*time.Second),
		AirportPollInterval: getEnvDuration("AIRPORT_POLL_INTERVAL", 5*time.Minute),
		FlightPollInterval:  getEnvDuration("FLIGHT_POLL_INTERVAL", 15*time.Second),
		ViewTTL:             getEnvDuration("VIEW_IDLE_TTL", 30*time.Minute),
		ViewTokenTTL:        getEnvDuration("VIEW_TOKEN_TTL", 12*time.Hour),
		ViewSecret:          getEnv("VIEW_TOKEN_SECRET", "dev-secret-change-me"),
		TrackCacheTTL:       getEnvDuration("TRACK_CACHE_TTL", 10*time.Minute),
		WeatherTTL:          getEnvDuration("WEATHER_TTL", 2*time.Hour),
		ViewReapInterval:    getEnvDuration("VIEW_REAP_INTERVAL", time.Minute),
		WeatherSyncInterval: getEnvDuration("WEATHER_SYNC_INTERVAL", 30*time.Second),
		AllowedOrigins:      splitList(getEnv("CORS_ORIGINS", "https://*,http://localhost:8081,http://localhost:5173")),
		RateLimitPerSecond:  getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 20),
		RedisHost:           os.Getenv("REDIS_HOST"),
		RedisPort:           getEnv("REDIS_PORT", "6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		PGHost:              os.Getenv("PG_HOST"),
		PGPort:              getEnv("PG_PORT", "5432"),
		PGUser:              os.Getenv("PG_USER"),
		PGDB:                os.Getenv("PG_DB"),
		PGPassword:          os.Getenv("PG_PASSWORD"),
	}
}

// HistoryEnabled reports whether a Postgres history store is configured.
func (c Config) HistoryEnabled() bool {
	return c.PGHost != "" && c.PGDB != ""
}

// PostgresDSN builds the connection string shared by sqlx and GORM.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
