package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr         string
	CORSOrigin   string
	SyncInterval time.Duration
	// Google Sheets upstream
	SheetsAPIKey  string
	SpreadsheetID string
	SheetRange    string
	SheetsRPS     float64
	SheetsBurst   int
	// Meilisearch - empty URL disables the external index
	MeiliURL       string
	MeiliMasterKey string
}

func Load() Config {
	return Config{
		Addr:          getenv("API_ADDR", ":3001"),
		CORSOrigin:    getenv("PORTAL_CORS_ORIGIN", "*"),
		SyncInterval:  time.Duration(getenvInt("PORTAL_SYNC_INTERVAL_SECONDS", 300)) * time.Second,
		SheetsAPIKey:  getenv("GOOGLE_SHEETS_API_KEY", ""),
		SpreadsheetID: getenv("GOOGLE_SHEETS_SPREADSHEET_ID", ""),
		SheetRange:    getenv("GOOGLE_SHEETS_RANGE", "Lista!A1:AE1000"),
		SheetsRPS:     getenvFloat("GOOGLE_SHEETS_RPS", 1.0),
		SheetsBurst:   getenvInt("GOOGLE_SHEETS_BURST", 2),
		// Meilisearch - disabled unless a URL is configured
		MeiliURL:       getenv("MEILI_URL", ""),
		MeiliMasterKey: getenv("MEILI_MASTER_KEY", ""),
	}
}

// Port returns the numeric listening port, for the /api/test payload.
func (c Config) Port() int {
	addr := c.Addr
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			port, err := strconv.Atoi(addr[i+1:])
			if err != nil {
				return 0
			}
			return port
		}
	}
	return 0
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
