package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment
// variables.
type Config struct {
	HomeDir       string
	CsvDateFormat string
	Environment   string
}

const defaultCsvDateFormat = "2006-01-02"

// Load reads configuration from environment variables. A .env file is loaded
// if present to simplify local development.
func Load() Config {
	loadDotEnv()

	return Config{
		HomeDir:       getString("ACB_HOME", defaultHomeDir()),
		CsvDateFormat: getString("ACB_CSV_DATE_FORMAT", defaultCsvDateFormat),
		Environment:   getString("ENVIRONMENT", "local"),
	}
}

// PortfolioFile is the path of the whole-document portfolio store.
func (c Config) PortfolioFile() string {
	return filepath.Join(c.HomeDir, "portfolios.json")
}

func defaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".acbtracker"
	}
	return filepath.Join(home, ".acbtracker")
}

func loadDotEnv() {
	candidates := []string{".env"}
	if exePath, err := os.Executable(); err == nil {
		candidates = append([]string{filepath.Join(filepath.Dir(exePath), ".env")}, candidates...)
	}
	for _, path := range candidates {
		if err := godotenv.Load(path); err == nil {
			return
		}
	}
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
