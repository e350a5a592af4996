package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all pipeline settings. Values come from an optional TOML file,
// then environment variables (a .env file is honored), with the environment
// taking precedence.
type Config struct {
	// Taxonomy reference source.
	TaxonomyURL     string
	TaxonomyTimeout time.Duration

	// Report output.
	OutputDir     string
	OverallReport string
	YearlyReport  string

	// Diagnostics.
	PreviewLines int    // merged-row lines shown when US filtering empties the stream
	MetricsAddr  string // optional /healthz + /metrics listener; empty disables it

	LogLevel  string
	LogFormat string
}

// fileConfig mirrors the TOML layout.
type fileConfig struct {
	Taxonomy struct {
		URL     string `toml:"url"`
		Timeout string `toml:"timeout"`
	} `toml:"taxonomy"`
	Output struct {
		Dir     string `toml:"dir"`
		Overall string `toml:"overall"`
		Yearly  string `toml:"yearly"`
	} `toml:"output"`
	Diagnostics struct {
		PreviewLines *int   `toml:"preview_lines"`
		MetricsAddr  string `toml:"metrics_addr"`
	} `toml:"diagnostics"`
	Logging struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"logging"`
}

// DefaultTaxonomyURL is the eBird taxonomy CSV download.
const DefaultTaxonomyURL = "https://api.ebird.org/v2/ref/taxonomy/ebird?fmt=csv"

// Load builds the configuration. path names an optional TOML file; an empty
// path skips file loading. A .env file in the working directory is applied
// to the environment first, if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	cfg := &Config{
		TaxonomyURL:     DefaultTaxonomyURL,
		TaxonomyTimeout: 10 * time.Second,
		OutputDir:       ".",
		OverallReport:   "rare_species_overall.csv",
		YearlyReport:    "rare_species_yearly.csv",
		PreviewLines:    10,
		LogLevel:        "info",
		LogFormat:       "text",
	}

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIfPresent(&cfg.TaxonomyURL, fc.Taxonomy.URL)
	setIfPresent(&cfg.OutputDir, fc.Output.Dir)
	setIfPresent(&cfg.OverallReport, fc.Output.Overall)
	setIfPresent(&cfg.YearlyReport, fc.Output.Yearly)
	setIfPresent(&cfg.MetricsAddr, fc.Diagnostics.MetricsAddr)
	setIfPresent(&cfg.LogLevel, fc.Logging.Level)
	setIfPresent(&cfg.LogFormat, fc.Logging.Format)

	if fc.Taxonomy.Timeout != "" {
		d, err := time.ParseDuration(fc.Taxonomy.Timeout)
		if err != nil {
			return fmt.Errorf("config file taxonomy.timeout: %w", err)
		}
		cfg.TaxonomyTimeout = d
	}
	if fc.Diagnostics.PreviewLines != nil {
		cfg.PreviewLines = *fc.Diagnostics.PreviewLines
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setIfPresent(&cfg.TaxonomyURL, os.Getenv("TAXONOMY_URL"))
	setIfPresent(&cfg.OutputDir, os.Getenv("OUTPUT_DIR"))
	setIfPresent(&cfg.OverallReport, os.Getenv("OVERALL_REPORT"))
	setIfPresent(&cfg.YearlyReport, os.Getenv("YEARLY_REPORT"))
	setIfPresent(&cfg.MetricsAddr, os.Getenv("METRICS_ADDR"))
	setIfPresent(&cfg.LogLevel, os.Getenv("LOG_LEVEL"))
	setIfPresent(&cfg.LogFormat, os.Getenv("LOG_FORMAT"))

	if v := os.Getenv("TAXONOMY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.New("invalid TAXONOMY_TIMEOUT")
		}
		cfg.TaxonomyTimeout = d
	}
	if v := os.Getenv("PREVIEW_LINES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("invalid PREVIEW_LINES")
		}
		cfg.PreviewLines = n
	}
	return nil
}

func setIfPresent(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func (c *Config) validate() error {
	if c.TaxonomyURL == "" {
		return errors.New("taxonomy URL is required")
	}
	if c.TaxonomyTimeout <= 0 {
		return errors.New("taxonomy timeout must be positive")
	}
	if c.OverallReport == "" || c.YearlyReport == "" {
		return errors.New("report filenames are required")
	}
	if c.PreviewLines < 0 {
		return errors.New("preview lines must not be negative")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q (want text or json)", c.LogFormat)
	}
	return nil
}
