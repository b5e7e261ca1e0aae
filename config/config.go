package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr      string
	DatabasePath    string
	EventStoreURL   string // when set, events come from the remote service
	EventStoreToken string
	JWTSecret       string
	Timezone        *time.Location
	RefreshInterval time.Duration
	LogLevel        string
}

func Load() (*Config, error) {
	// A missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/fgadmin.db"
	}

	tzName := os.Getenv("TIMEZONE")
	if tzName == "" {
		tzName = "Asia/Kuala_Lumpur"
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	refreshInterval := 5 * time.Minute
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		refreshInterval, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		ListenAddr:      listenAddr,
		DatabasePath:    dbPath,
		EventStoreURL:   os.Getenv("EVENT_STORE_URL"),
		EventStoreToken: os.Getenv("EVENT_STORE_TOKEN"),
		JWTSecret:       secret,
		Timezone:        tz,
		RefreshInterval: refreshInterval,
		LogLevel:        logLevel,
	}, nil
}
