package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/optjournal"
	"github.com/etnz/optjournal/store"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when no configuration file is given. It may not exist.
const DefaultConfigFile = "oj.yaml"

// Config is the oj configuration, read from a YAML file and overridden by
// OJ_* environment variables.
type Config struct {
	Account  string `yaml:"account"`
	Currency string `yaml:"currency"`
	Store    struct {
		Driver string `yaml:"driver"`
		Path   string `yaml:"path"`
	} `yaml:"store"`
	Matching struct {
		Mode string `yaml:"mode"`
	} `yaml:"matching"`
	Rounding string `yaml:"rounding"`
	Broker   struct {
		// JSONPath expressions locating the totals in a statement summary.
		Realized     string `yaml:"realized"`
		MarkToMarket string `yaml:"mark_to_market"`
	} `yaml:"broker"`
	Review struct {
		Model string `yaml:"model"`
	} `yaml:"review"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// LoadConfig reads the configuration at path, applies the environment
// overrides and the defaults, and validates the result. A missing default
// file is not an error.
func LoadConfig(path string) (*Config, error) {
	c := &Config{}
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	c.loadEnvOverrides()
	c.setDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// loadEnvOverrides overrides config with environment variables
func (c *Config) loadEnvOverrides() {
	if v := os.Getenv("OJ_ACCOUNT"); v != "" {
		c.Account = v
	}
	if v := os.Getenv("OJ_STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("OJ_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("OJ_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) setDefaults() {
	if c.Account == "" {
		c.Account = "default"
	}
	if c.Currency == "" {
		c.Currency = optjournal.DefaultCurrency
	}
	if c.Store.Driver == "" {
		c.Store.Driver = store.JSONLDriver
	}
	if c.Store.Path == "" {
		c.Store.Path = "journal"
		if c.Store.Driver == store.SQLiteDriver {
			c.Store.Path = "journal.db"
		}
	}
	if c.Review.Model == "" {
		c.Review.Model = "gemini-2.5-pro"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	var errs []error
	if c.Store.Driver != store.JSONLDriver && c.Store.Driver != store.SQLiteDriver {
		errs = append(errs, fmt.Errorf("store.driver must be %q or %q, got %q", store.JSONLDriver, store.SQLiteDriver, c.Store.Driver))
	}
	if _, err := optjournal.ParseMatchMode(c.Matching.Mode); err != nil {
		errs = append(errs, fmt.Errorf("matching.mode: %w", err))
	}
	if _, err := optjournal.ParseRoundingMode(c.Rounding); err != nil {
		errs = append(errs, fmt.Errorf("rounding: %w", err))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Calculator returns the calculator configured with the rounding mode.
func (c *Config) Calculator() optjournal.Calculator {
	mode, _ := optjournal.ParseRoundingMode(c.Rounding)
	return optjournal.Calculator{Rounding: mode}
}

// BrokerPaths returns the JSONPath expressions of the statement totals.
func (c *Config) BrokerPaths() optjournal.BrokerPaths {
	return optjournal.BrokerPaths{Realized: c.Broker.Realized, MarkToMarket: c.Broker.MarkToMarket}
}
