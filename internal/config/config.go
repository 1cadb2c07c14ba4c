// Package config provides configuration loading and validation.
package config

import (
	"os"
	"strconv"
	"strings"
)

// placeholderMarker appears in unedited connection strings copied from the
// example env file. A DATABASE_URL containing it is treated the same as an
// absent one: the server falls back to the in-memory engine.
const placeholderMarker = "<db_password>"

// Config holds the environment-supplied settings shared by the server and the
// CLI. Absent values select documented fallback behavior instead of failing
// startup.
type Config struct {
	Port        int    // Server listen port (PORT, default 4000)
	DatabaseURL string // Postgres connection string (DATABASE_URL, optional)
	GeminiKey   string // AI credential (GEMINI_API_KEY, optional)
	APIBaseURL  string // Remote API base for the client gateway (RESUMAI_API_URL)
	DataDir     string // Local fallback store directory (RESUMAI_DATA_DIR)
}

// Load reads configuration from the environment.
func Load() *Config {
	port := 4000
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			port = p
		}
	}

	apiBase := os.Getenv("RESUMAI_API_URL")
	if apiBase == "" {
		apiBase = "http://localhost:4000"
	}

	dataDir := os.Getenv("RESUMAI_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			dataDir = home + "/.resumai"
		} else {
			dataDir = ".resumai"
		}
	}

	return &Config{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		APIBaseURL:  apiBase,
		DataDir:     dataDir,
	}
}

// HasDatabase reports whether a usable database connection string is
// configured. Placeholder values from example env files do not count.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != "" && !strings.Contains(c.DatabaseURL, placeholderMarker)
}
