package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	SheetBackendGoogle = "google"
	SheetBackendXLSX   = "xlsx"

	HistoryBackendNone      = "none"
	HistoryBackendSQLite    = "sqlite"
	HistoryBackendDatastore = "datastore"
)

type envConfig struct {
	APP_PORT      string
	LOG_FILE_PATH string
	LOG_LEVEL     string

	SPREADSHEET_ID     string
	READ_RANGE         string
	DEFAULT_SHEET_NAME string
	MODEL_PATH         string
	PROBABILITY_COLUMN string
	SHEET_BACKEND      string
	REQUIRE_TRIGGER    bool

	SECRETS_FILE_PATH string
	GCP_SECRETS_KEY   string
	GCP_PROJECT_ID    string

	HISTORY_BACKEND     string
	HISTORY_SQLITE_PATH string
}

// DefaultEnvConfig is populated by LoadEnvConfig and read by the rest of the app.
var DefaultEnvConfig = defaults()

func defaults() envConfig {
	return envConfig{
		APP_PORT:            "8080",
		LOG_LEVEL:           "info",
		READ_RANGE:          "Página1!A:G",
		DEFAULT_SHEET_NAME:  "Página1",
		MODEL_PATH:          "./resultados_parciais/modelo_logistico.yaml",
		PROBABILITY_COLUMN:  "Probabilidade",
		SHEET_BACKEND:       SheetBackendGoogle,
		REQUIRE_TRIGGER:     true,
		SECRETS_FILE_PATH:   ".secrets.env",
		GCP_SECRETS_KEY:     "gcp_service_account",
		HISTORY_BACKEND:     HistoryBackendNone,
		HISTORY_SQLITE_PATH: "runs.db",
	}
}

// LoadEnvConfig reads an optional .env file and the process environment into DefaultEnvConfig.
func LoadEnvConfig() error {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg := defaults()
	cfg.APP_PORT = getEnv("APP_PORT", cfg.APP_PORT)
	cfg.LOG_FILE_PATH = getEnv("LOG_FILE_PATH", cfg.LOG_FILE_PATH)
	cfg.LOG_LEVEL = getEnv("LOG_LEVEL", cfg.LOG_LEVEL)
	cfg.SPREADSHEET_ID = getEnv("SPREADSHEET_ID", cfg.SPREADSHEET_ID)
	cfg.READ_RANGE = getEnv("READ_RANGE", cfg.READ_RANGE)
	cfg.DEFAULT_SHEET_NAME = getEnv("DEFAULT_SHEET_NAME", cfg.DEFAULT_SHEET_NAME)
	cfg.MODEL_PATH = getEnv("MODEL_PATH", cfg.MODEL_PATH)
	cfg.PROBABILITY_COLUMN = getEnv("PROBABILITY_COLUMN", cfg.PROBABILITY_COLUMN)
	cfg.SHEET_BACKEND = strings.ToLower(getEnv("SHEET_BACKEND", cfg.SHEET_BACKEND))
	cfg.SECRETS_FILE_PATH = getEnv("SECRETS_FILE_PATH", cfg.SECRETS_FILE_PATH)
	cfg.GCP_SECRETS_KEY = getEnv("GCP_SECRETS_KEY", cfg.GCP_SECRETS_KEY)
	cfg.GCP_PROJECT_ID = getEnv("GCP_PROJECT_ID", cfg.GCP_PROJECT_ID)
	cfg.HISTORY_BACKEND = strings.ToLower(getEnv("HISTORY_BACKEND", cfg.HISTORY_BACKEND))
	cfg.HISTORY_SQLITE_PATH = getEnv("HISTORY_SQLITE_PATH", cfg.HISTORY_SQLITE_PATH)

	requireTrigger, err := getEnvBool("REQUIRE_TRIGGER", cfg.REQUIRE_TRIGGER)
	if err != nil {
		return err
	}
	cfg.REQUIRE_TRIGGER = requireTrigger

	if err := cfg.validate(); err != nil {
		return err
	}

	DefaultEnvConfig = cfg
	return nil
}

func (c envConfig) validate() error {
	if _, err := strconv.Atoi(c.APP_PORT); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.APP_PORT, err)
	}
	if _, err := zerolog.ParseLevel(c.LOG_LEVEL); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LOG_LEVEL, err)
	}
	switch c.SHEET_BACKEND {
	case SheetBackendGoogle, SheetBackendXLSX:
	default:
		return fmt.Errorf("invalid SHEET_BACKEND %q", c.SHEET_BACKEND)
	}
	switch c.HISTORY_BACKEND {
	case HistoryBackendNone, HistoryBackendSQLite:
	case HistoryBackendDatastore:
		if c.GCP_PROJECT_ID == "" {
			return fmt.Errorf("HISTORY_BACKEND=datastore requires GCP_PROJECT_ID")
		}
	default:
		return fmt.Errorf("invalid HISTORY_BACKEND %q", c.HISTORY_BACKEND)
	}
	if strings.TrimSpace(c.PROBABILITY_COLUMN) == "" {
		return fmt.Errorf("PROBABILITY_COLUMN cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}
