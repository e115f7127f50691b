package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for a batch run. Values come from a
// YAML file; CLI flags override individual fields after load.
type Config struct {
	InputPath string `yaml:"input_path"`
	OutputDir string `yaml:"output_dir"`
	CacheDB   string `yaml:"cache_db"`

	// Salary brackets for the term-frequency corpora. Postings strictly
	// between the two thresholds belong to neither corpus.
	HighSalaryThreshold float64 `yaml:"high_salary_threshold"`
	LowSalaryThreshold  float64 `yaml:"low_salary_threshold"`

	// Hand-curated second-phase stopword lists, one per bracket.
	HighBracketStopwords []string `yaml:"high_bracket_stopwords,omitempty"`
	LowBracketStopwords  []string `yaml:"low_bracket_stopwords,omitempty"`

	// EnglishOnly drops non-English qualification text before counting.
	EnglishOnly bool `yaml:"english_only"`

	TopAgencies int `yaml:"top_agencies"`

	Geocoder GeocoderConfig `yaml:"geocoder"`
}

// Duration wraps time.Duration so YAML values like "1s" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// GeocoderConfig configures the external geocoding collaborator.
type GeocoderConfig struct {
	BaseURL     string   `yaml:"base_url"`
	UserAgent   string   `yaml:"user_agent"`
	MinInterval Duration `yaml:"min_interval"`
	MaxLookups  int      `yaml:"max_lookups"`
}

// DefaultConfig returns a Config with the fixed policy defaults.
func DefaultConfig() *Config {
	return &Config{
		InputPath:           "data/nyc-jobs.csv",
		OutputDir:           "output",
		CacheDB:             "postings-atlas.db",
		HighSalaryThreshold: 100000,
		LowSalaryThreshold:  50000,
		TopAgencies:         10,
		Geocoder: GeocoderConfig{
			BaseURL:     "https://nominatim.openstreetmap.org",
			UserAgent:   "postings-atlas/0.1",
			MinInterval: Duration(time.Second),
		},
	}
}

// LoadConfig reads a YAML config file, applying defaults for absent fields.
// A missing file is not an error; defaults are returned.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects configurations the pipelines cannot run with.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input_path is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.HighSalaryThreshold < c.LowSalaryThreshold {
		return fmt.Errorf("high_salary_threshold must not be below low_salary_threshold")
	}
	if c.TopAgencies <= 0 {
		return fmt.Errorf("top_agencies must be positive")
	}
	return nil
}
