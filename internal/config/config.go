// Package config loads the deployment configuration: environment
// variables (optionally from a .env file), tuning constants and the
// keyword tables the parser classifies with.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Tuning constants shared by the bot and the dashboard.
const (
	// CacheTTL is how long the dashboard serves a cached ledger snapshot
	// before re-reading the sheet.
	CacheTTL = 60 * time.Second

	// DefaultTransactionLimit caps /api/transactions responses.
	DefaultTransactionLimit = 50

	// DefaultTrendDays is the window for /api/trends.
	DefaultTrendDays = 7

	// DefaultComparisonMonths is the window for /api/monthly-comparison.
	DefaultComparisonMonths = 3

	// SheetsRetryAttempts / SheetsRetryDelay control the ledger's retry
	// behavior against the Sheets API.
	SheetsRetryAttempts = 3
	SheetsRetryDelay    = 2 * time.Second
)

// Config is the process-wide configuration for both binaries.
type Config struct {
	TelegramToken   string
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	GCSBucket       string
	Port            string
	Timezone        *time.Location
	Keywords        Keywords
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present. Missing optional values
// fall back to defaults; the caller decides which fields are mandatory
// for its binary (the bot needs a token, the dashboard does not).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		SheetName:       envOr("SHEET_NAME", "Sheet1"),
		CredentialsFile: envOr("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		GCSBucket:       os.Getenv("GCS_BUCKET"),
		Port:            envOr("PORT", "8001"),
		Timezone:        loadTimezone(),
	}

	keywords, err := loadKeywordsFromEnv()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Keywords = keywords

	return cfg, nil
}

// loadTimezone reads TZ_OFFSET_HOURS (default 7, WIB). Every timestamp
// the parser synthesizes carries this zone.
func loadTimezone() *time.Location {
	offset := 7
	if v := os.Getenv("TZ_OFFSET_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	name := fmt.Sprintf("UTC+%d", offset)
	if offset == 7 {
		name = "WIB"
	}
	return time.FixedZone(name, offset*60*60)
}

func loadKeywordsFromEnv() (Keywords, error) {
	path := os.Getenv("KEYWORDS_FILE")
	if path == "" {
		return DefaultKeywords(), nil
	}
	return LoadKeywords(path)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
