package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	// All variables
	GO_ENV       string
	DB_DRIVER    string // "postgres" (default) or "memory"
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	PORT         int
	// HTTP
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
	RATE_LIMIT_WINDOW   int // seconds
	// Redis Configuration
	REDIS_URL string
	// Cron
	CRON_ENABLED         bool
	AUDIT_RETENTION_DAYS int
	// DigitalOcean Spaces (published timetable archive)
	DO_SPACES_KEY      string
	DO_SPACES_SECRET   string
	DO_SPACES_BUCKET   string
	DO_SPACES_REGION   string
	DO_SPACES_ENDPOINT string
	DO_SPACES_CDN_URL  string
	// Scheduling policy
	SCHEDULE_DEPARTMENTS           string
	SCHEDULE_TIME_SLOTS            string
	SCHEDULE_EXCLUDED_WEEKDAYS     string
	SCHEDULE_DAILY_TYPE_LIMIT      int
	SCHEDULE_MAX_EXAMS_PER_DAY     int
	SCHEDULE_MAX_EXAMS_PER_WINDOW  int
	SCHEDULE_LOAD_WINDOW_DAYS      int
	SCHEDULE_RESOLVE_HORIZON_DAYS  int
	SCHEDULE_REQUIRE_KNOWN_SUBJECT bool
	SCHEDULE_LOCK_TIMEOUT_SECONDS  int
}

func Get() (*EnviornmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	// Database defaults
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	envVariables := &EnviornmentVariable{
		GO_ENV:       os.Getenv("GO_ENV"),
		DB_DRIVER:    getEnv("DB_DRIVER", "postgres"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      dbHost,
		DB_PORT:      dbPort,
		DB_SSL_MODE:  getEnv("DB_SSL_MODE", "disable"),
		PORT:         port,
		// HTTP
		ALLOWED_ORIGINS: getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// DigitalOcean Spaces
		DO_SPACES_KEY:      os.Getenv("DO_SPACES_KEY"),
		DO_SPACES_SECRET:   os.Getenv("DO_SPACES_SECRET"),
		DO_SPACES_BUCKET:   os.Getenv("DO_SPACES_BUCKET"),
		DO_SPACES_REGION:   getEnv("DO_SPACES_REGION", "blr1"),
		DO_SPACES_ENDPOINT: getEnv("DO_SPACES_ENDPOINT", "blr1.digitaloceanspaces.com"),
		DO_SPACES_CDN_URL:  os.Getenv("DO_SPACES_CDN_URL"),
		// Scheduling policy
		SCHEDULE_DEPARTMENTS:       getEnv("SCHEDULE_DEPARTMENTS", "CSE,AE,CE,ECE,EEE,ME,ISE,AI&DS,AI&ML"),
		SCHEDULE_TIME_SLOTS:        getEnv("SCHEDULE_TIME_SLOTS", "Morning=09:30-11:00,Afternoon=13:30-15:00"),
		SCHEDULE_EXCLUDED_WEEKDAYS: getEnv("SCHEDULE_EXCLUDED_WEEKDAYS", "sunday"),
	}

	ints := []struct {
		key      string
		fallback int
		dest     *int
	}{
		{"RATE_LIMIT_REQUESTS", 100, &envVariables.RATE_LIMIT_REQUESTS},
		{"RATE_LIMIT_WINDOW", 60, &envVariables.RATE_LIMIT_WINDOW},
		{"AUDIT_RETENTION_DAYS", 90, &envVariables.AUDIT_RETENTION_DAYS},
		{"SCHEDULE_DAILY_TYPE_LIMIT", 2, &envVariables.SCHEDULE_DAILY_TYPE_LIMIT},
		{"SCHEDULE_MAX_EXAMS_PER_DAY", 0, &envVariables.SCHEDULE_MAX_EXAMS_PER_DAY},
		{"SCHEDULE_MAX_EXAMS_PER_WINDOW", 0, &envVariables.SCHEDULE_MAX_EXAMS_PER_WINDOW},
		{"SCHEDULE_LOAD_WINDOW_DAYS", 7, &envVariables.SCHEDULE_LOAD_WINDOW_DAYS},
		{"SCHEDULE_RESOLVE_HORIZON_DAYS", 14, &envVariables.SCHEDULE_RESOLVE_HORIZON_DAYS},
		{"SCHEDULE_LOCK_TIMEOUT_SECONDS", 5, &envVariables.SCHEDULE_LOCK_TIMEOUT_SECONDS},
	}
	for _, item := range ints {
		value, err := getEnvInt(item.key, item.fallback)
		if err != nil {
			return nil, err
		}
		if value < 0 {
			return nil, fmt.Errorf("invalid value for %s: must not be negative", item.key)
		}
		*item.dest = value
	}

	bools := []struct {
		key      string
		fallback bool
		dest     *bool
	}{
		{"CRON_ENABLED", true, &envVariables.CRON_ENABLED},
		{"SCHEDULE_REQUIRE_KNOWN_SUBJECT", false, &envVariables.SCHEDULE_REQUIRE_KNOWN_SUBJECT},
	}
	for _, item := range bools {
		value, err := getEnvBool(item.key, item.fallback)
		if err != nil {
			return nil, err
		}
		*item.dest = value
	}

	return envVariables, nil
}

// SpacesEnabled reports whether published timetables should be archived to Spaces.
func (e *EnviornmentVariable) SpacesEnabled() bool {
	return e.DO_SPACES_BUCKET != "" && e.DO_SPACES_KEY != "" && e.DO_SPACES_SECRET != ""
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid bool for %s: %w", key, err)
	}
	return parsed, nil
}
