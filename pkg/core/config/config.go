// Package config loads the screening service settings from a YAML file,
// with sane defaults for every field so the tools run without one.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"eumr_screening/pkg/core/eumr"
	"eumr_screening/pkg/core/universe"
)

// thresholdYAML mirrors one regime's floors in the config file, in EUR.
type thresholdYAML struct {
	WorldwideRevenue float64 `yaml:"worldwide_revenue"`
	EuRevenue        float64 `yaml:"eu_revenue"`
}

// Config is the full service configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	// EurUsdRate is the fixed EUR/USD conversion rate. Not live-fetched;
	// review it when the market moves materially.
	EurUsdRate float64 `yaml:"eur_usd_rate"`

	DirectoryFile string `yaml:"directory_file"`
	SegmentFile   string `yaml:"segment_file"`

	// FetchTimeoutSeconds bounds each external data fetch.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`

	StoreEnabled bool   `yaml:"store_enabled"`
	DatabaseURL  string `yaml:"database_url"` // empty -> DATABASE_URL env

	Universe struct {
		DowURL    string `yaml:"dow_url"`
		NasdaqURL string `yaml:"nasdaq_url"`
		SP500URL  string `yaml:"sp500_url"`
	} `yaml:"universe"`

	// Thresholds override the statutory floors; leave zero for the
	// defaults. Overrides exist for sensitivity analysis, not compliance.
	Thresholds struct {
		Primary     thresholdYAML `yaml:"primary"`
		Alternative thresholdYAML `yaml:"alternative"`
	} `yaml:"thresholds"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		ListenAddr:          ":8080",
		EurUsdRate:          eumr.DefaultEurUsdRate,
		DirectoryFile:       "config/companies_data.json",
		SegmentFile:         "config/geo_segments.hjson",
		FetchTimeoutSeconds: 10,
	}
	return cfg
}

// Load reads path and overlays it on the defaults. A missing file is not an
// error; a present-but-invalid one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.EurUsdRate <= 0 {
		return nil, fmt.Errorf("config %s: eur_usd_rate must be positive", path)
	}
	return cfg, nil
}

// FetchTimeout returns the per-fetch bound as a duration.
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// UniverseSources maps the config onto universe client sources.
func (c *Config) UniverseSources() universe.Sources {
	return universe.Sources{
		DowURL:    c.Universe.DowURL,
		NasdaqURL: c.Universe.NasdaqURL,
		SP500URL:  c.Universe.SP500URL,
	}
}

// EvaluatorOptions maps the config onto evaluator options. Unset threshold
// regimes keep their statutory defaults.
func (c *Config) EvaluatorOptions() eumr.Options {
	thresholds := eumr.DefaultThresholds()
	if t := c.Thresholds.Primary; t.WorldwideRevenue > 0 && t.EuRevenue > 0 {
		thresholds.Primary = eumr.ThresholdRegime{WorldwideRevenue: t.WorldwideRevenue, EuRevenue: t.EuRevenue}
	}
	if t := c.Thresholds.Alternative; t.WorldwideRevenue > 0 && t.EuRevenue > 0 {
		thresholds.Alternative = eumr.ThresholdRegime{WorldwideRevenue: t.WorldwideRevenue, EuRevenue: t.EuRevenue}
	}
	return eumr.Options{
		EurUsdRate:   c.EurUsdRate,
		Thresholds:   thresholds,
		FetchTimeout: c.FetchTimeout(),
	}
}
