package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// Spreadsheet store
	GoogleSpreadsheetID string
	FamiliesTab         string
	FamilyTabPrefix     string

	// Family-local date math
	FamilyTimezone string

	// Secret store (production credentials)
	SecretID     string
	SecretRegion string

	// OAuth fallback (local development)
	GoogleOAuthClientFile string
	GoogleOAuthTokenFile  string
	GoogleOAuthClientJSON string
	GoogleOAuthTokenJSON  string

	// SQLite backend
	SQLiteDBPath string

	// AMQP (event replay to the spreadsheet)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8081"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		FamiliesTab:         getEnv("FAMILIES_TAB", "Families"),
		FamilyTabPrefix:     getEnv("FAMILY_TAB_PREFIX", "fam-"),

		FamilyTimezone: getEnv("FAMILY_TIMEZONE", "America/New_York"),

		SecretID:     getEnv("SECRET_ID", ""),
		SecretRegion: getEnv("SECRET_REGION", "us-east-1"),

		GoogleOAuthClientFile: getEnv("GOOGLE_OAUTH_CLIENT_FILE", ""),
		GoogleOAuthTokenFile:  getEnv("GOOGLE_OAUTH_TOKEN_FILE", ""),
		GoogleOAuthClientJSON: getEnv("GOOGLE_OAUTH_CLIENT_JSON", ""),
		GoogleOAuthTokenJSON:  getEnv("GOOGLE_OAUTH_TOKEN_JSON", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/kidpoints.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "kidpoints"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sync_events"),
	}
}

// Validate checks the configuration before any I/O happens, collecting
// every problem into one error.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sheets", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory sheets sqlite]", c.DataBackend))
	}

	if _, err := time.LoadLocation(c.FamilyTimezone); err != nil {
		errs = append(errs, fmt.Sprintf("invalid family timezone '%s': %v", c.FamilyTimezone, err))
	}

	if c.FamilyTabPrefix == "" {
		errs = append(errs, "family tab prefix cannot be empty")
	}

	if c.DataBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, "GOOGLE_SPREADSHEET_ID is required when using sheets backend")
		}
		hasSecret := c.SecretID != ""
		hasOAuth := (c.GoogleOAuthClientFile != "" || c.GoogleOAuthClientJSON != "") &&
			(c.GoogleOAuthTokenFile != "" || c.GoogleOAuthTokenJSON != "")
		if !hasSecret && !hasOAuth {
			errs = append(errs, "either SECRET_ID or a GOOGLE_OAUTH client+token pair must be provided for sheets backend")
		}
		if hasSecret && c.SecretRegion == "" {
			errs = append(errs, "SECRET_REGION cannot be empty when SECRET_ID is provided")
		}
		if c.GoogleOAuthClientFile != "" {
			if _, err := os.Stat(c.GoogleOAuthClientFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("OAuth client file does not exist: %s", c.GoogleOAuthClientFile))
			}
		}
		if c.GoogleOAuthTokenFile != "" {
			if _, err := os.Stat(c.GoogleOAuthTokenFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("OAuth token file does not exist: %s", c.GoogleOAuthTokenFile))
			}
		}
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Location resolves the fixed family timezone. Validate must have passed.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.FamilyTimezone)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
