package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv reads variables from .env files into the process environment.
// Variables that are already set win; missing files are not an error.
func LoadEnv(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8080"
	}
	return port
}

type Sessions struct {
	Limit         int
	TTL           time.Duration
	SweepInterval time.Duration
}

func NewSessions() (*Sessions, error) {
	s := &Sessions{
		Limit:         10000,
		TTL:           time.Hour,
		SweepInterval: time.Minute,
	}

	if limitStr, ok := os.LookupEnv("SESSION_LIMIT"); ok {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, fmt.Errorf("unable to convert SESSION_LIMIT to int: %w", err)
		}
		s.Limit = limit
	}

	if ttlStr, ok := os.LookupEnv("SESSION_TTL"); ok {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("unable to parse SESSION_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be positive")
		}
		s.TTL = ttl
		if ttl < s.SweepInterval {
			s.SweepInterval = ttl
		}
	}

	return s, nil
}
