package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Balance feed: a published CSV export or the Sheets API.
	FeedURL      string
	FeedCharset  string
	FetchTimeout time.Duration

	SheetsSpreadsheetID   string
	SheetsRange           string
	SheetsCredentialsFile string

	// MapSVG is a file path or http(s) URL of the parcel map.
	MapSVG string

	ColorCacheSize int

	// Snapshot publishing, enabled when brokers are set.
	KafkaBrokers []string
	KafkaTopic   string
}

// SheetsEnabled reports whether the balance feed is read through the Sheets API.
func (c *Config) SheetsEnabled() bool {
	return c.SheetsSpreadsheetID != ""
}

// KafkaEnabled reports whether dataset snapshots are published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "15s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	colorCacheSize, err := parseColorCacheSize()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		FeedURL:      os.Getenv("FEED_URL"),
		FeedCharset:  strings.ToLower(sharedcfg.EnvOrDefault("FEED_CHARSET", "utf-8")),
		FetchTimeout: fetchTimeout,

		SheetsSpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
		SheetsRange:           sharedcfg.EnvOrDefault("SHEETS_RANGE", "Sheet1!A1:Z1000"),
		SheetsCredentialsFile: sharedcfg.EnvOrDefault("SHEETS_CREDENTIALS_FILE", "credentials.json"),

		MapSVG:         sharedcfg.EnvOrDefault("MAP_SVG", "map.svg"),
		ColorCacheSize: colorCacheSize,

		KafkaTopic: sharedcfg.EnvOrDefault("KAFKA_TOPIC", "parcel-balances"),
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(v)
	}

	if cfg.FeedURL == "" && !cfg.SheetsEnabled() {
		return nil, errors.New("FEED_URL or SHEETS_SPREADSHEET_ID is required")
	}
	if !supportedCharset(cfg.FeedCharset) {
		return nil, errors.New("unsupported FEED_CHARSET")
	}
	if cfg.MapSVG == "" {
		return nil, errors.New("MAP_SVG is required")
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parseColorCacheSize() (int, error) {
	s := os.Getenv("COLOR_CACHE_SIZE")
	if s == "" {
		return 1024, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid COLOR_CACHE_SIZE")
	}
	return n, nil
}

func supportedCharset(name string) bool {
	switch name {
	case "utf-8", "utf8", "windows-1251", "cp1251", "koi8-r":
		return true
	default:
		return false
	}
}
