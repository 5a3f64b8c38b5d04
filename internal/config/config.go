// Package config loads inventar settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/erazemk/inventar/internal/slot"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config holds the settings for one CLI invocation.
// Command-line flags override the values read by Load.
type Config struct {
	Backend string
	DB      string
	Slot    string
	Format  string
	Log     string
	Verbose bool
	QRSize  int
}

// Load reads configuration from environment variables. A .env file, if
// present, is loaded into the environment by main before Load runs.
func Load() *Config {
	backend := getEnv("INVENTAR_BACKEND", BackendSQLite)
	return &Config{
		Backend: backend,
		DB:      getEnv("INVENTAR_DB", DefaultDB(backend)),
		Slot:    getEnv("INVENTAR_SLOT", slot.DefaultKey),
		Format:  getEnv("INVENTAR_FORMAT", FormatTable),
		Log:     getEnv("INVENTAR_LOG", ""),
		Verbose: getEnvBool("INVENTAR_VERBOSE", false),
		QRSize:  getEnvInt("INVENTAR_QR_SIZE", 256),
	}
}

// DefaultDB returns the default storage path for a backend.
func DefaultDB(backend string) string {
	if backend == BackendFile {
		return "inventar.json"
	}
	return "inventar.sqlite3"
}

// Validate checks that enumerated settings hold known values.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("unknown backend %q (use %s or %s)", c.Backend, BackendSQLite, BackendFile)
	}
	switch c.Format {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (use %s or %s)", c.Format, FormatTable, FormatJSON)
	}
	if c.DB == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Slot == "" {
		return fmt.Errorf("slot key must not be empty")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
