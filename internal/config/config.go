package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads a .env file into the process environment when present.
// Variables already set in the environment win.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt parses key as an integer. Malformed values are logged and replaced by fallback.
func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// GetDuration parses key with time.ParseDuration ("5s", "750ms").
// Malformed values are logged and replaced by fallback.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: %s=%q is not a duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}
