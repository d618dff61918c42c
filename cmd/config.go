package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	btctax "github.com/grantathon/btc-tax"
)

// legacyFallbackDate is the acquisition date assumed for holdings predating
// the recorded history when no explicit date is configured. The genesis
// block date is the earliest defensible floor.
const legacyFallbackDate = "2009-01-03"

// Config holds the data source settings, read from the environment with the
// -env file loaded first.
type Config struct {
	BuysCSV     string
	MiningCSV   string
	SellsCSV    string
	PaymentsCSV string

	// CurrentBalance is the wallet balance used to detect holdings that the
	// recorded history does not explain. Zero disables legacy lot synthesis.
	CurrentBalance btctax.Quantity
	LegacyDate     time.Time

	OutputDir string
	CacheDir  string
}

// LoadConfig reads the configuration from the environment. The env file is
// optional: when missing, the process environment alone is used.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load env file %s: %w", *envFile, err)
	}

	cfg := &Config{
		BuysCSV:     os.Getenv("BTCTAX_BUYS_CSV"),
		MiningCSV:   os.Getenv("BTCTAX_MINING_CSV"),
		SellsCSV:    os.Getenv("BTCTAX_SELLS_CSV"),
		PaymentsCSV: os.Getenv("BTCTAX_PAYMENTS_CSV"),
		OutputDir:   getEnv("BTCTAX_OUTPUT_DIR", "reports"),
		CacheDir:    os.Getenv("BTCTAX_CACHE_DIR"),
	}

	if s := os.Getenv("BTCTAX_CURRENT_BALANCE"); s != "" {
		balance, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid BTCTAX_CURRENT_BALANCE %q: %w", s, err)
		}
		cfg.CurrentBalance = btctax.Q(balance)
	}

	legacy := getEnv("BTCTAX_LEGACY_DATE", legacyFallbackDate)
	t, err := time.Parse("2006-01-02", legacy)
	if err != nil {
		return nil, fmt.Errorf("invalid BTCTAX_LEGACY_DATE %q: %w", legacy, err)
	}
	cfg.LegacyDate = t.UTC()

	return cfg, nil
}

// getEnv returns the value of the named variable, or def when unset or empty.
func getEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
