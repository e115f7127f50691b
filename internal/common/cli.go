package common

import (
	"log/slog"
	"os"

	"github.com/jmfield/postings-atlas/models"
	"github.com/urfave/cli/v2"
)

// NewLogger builds the JSON logger all actions share. --quiet drops
// everything below Error.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads the YAML config file and applies CLI flag overrides.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("input") {
		config.InputPath = c.String("input")
	}
	if c.IsSet("output-dir") {
		config.OutputDir = c.String("output-dir")
	}
	if c.IsSet("cache-db") {
		config.CacheDB = c.String("cache-db")
	}
	if c.IsSet("english-only") {
		config.EnglishOnly = c.Bool("english-only")
	}
	if c.IsSet("max-lookups") {
		config.Geocoder.MaxLookups = c.Int("max-lookups")
	}
	return config, nil
}
