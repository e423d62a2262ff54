// Package config loads finsum settings from a YAML file, a .env file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum"
)

// DefaultFile is read when no config path is given and the file exists.
const DefaultFile = "finsum.yaml"

// Backends.
const (
	BackendXLSX    = "xlsx"
	BackendGSheets = "gsheets"
)

// Environment variables, applied over the file.
const (
	EnvBackend       = "FINSUM_BACKEND"
	EnvSheet         = "FINSUM_SHEET"
	EnvDeadRegionEnd = "FINSUM_DEAD_REGION_END"
	EnvCredentials   = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvSpreadsheetID = "FINSUM_SPREADSHEET_ID"
)

// Config is the merged configuration.
type Config struct {
	// Backend is "xlsx" or "gsheets". Empty means xlsx.
	Backend string `yaml:"backend"`
	// Sheet overrides the ledger sheet name.
	Sheet string `yaml:"sheet"`
	// Scope is "ledger" or "full". Empty means full.
	Scope string `yaml:"scope"`
	// DeadRegionEnd overrides the last scanned row below the total row.
	DeadRegionEnd int `yaml:"dead_region_end"`
	// PruneSheets controls whether restore deletes sheets outside the allowed set.
	PruneSheets *bool `yaml:"prune_sheets"`
	// Google holds the Google Sheets settings.
	Google Google `yaml:"google"`
}

// Google configures the Google Sheets backend.
type Google struct {
	// Credentials is the service account key file.
	Credentials string `yaml:"credentials"`
	// SpreadsheetID is used when no target argument is given.
	SpreadsheetID string `yaml:"spreadsheet_id"`
}

// Load reads .env (when present), then the config file, then applies environment overrides.
// An empty path reads DefaultFile if it exists.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if cfg, err = Parse(data); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes a YAML config. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Backend = v
	}
	if v, ok := lookup(EnvSheet); ok && v != "" {
		c.Sheet = v
	}
	if v, ok := lookup(EnvDeadRegionEnd); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDeadRegionEnd, err)
		}
		c.DeadRegionEnd = n
	}
	if v, ok := lookup(EnvCredentials); ok && v != "" {
		c.Google.Credentials = v
	}
	if v, ok := lookup(EnvSpreadsheetID); ok && v != "" {
		c.Google.SpreadsheetID = v
	}
	return nil
}

// Validate checks enumerated and numeric settings.
func (c Config) Validate() error {
	switch c.Backend {
	case "", BackendXLSX, BackendGSheets:
	default:
		return fmt.Errorf("invalid backend: %s (must be %s or %s)", c.Backend, BackendXLSX, BackendGSheets)
	}
	switch finsum.Scope(c.Scope) {
	case "", finsum.ScopeLedger, finsum.ScopeFull:
	default:
		return fmt.Errorf("invalid scope: %s (must be %s or %s)", c.Scope, finsum.ScopeLedger, finsum.ScopeFull)
	}
	if c.DeadRegionEnd < 0 {
		return fmt.Errorf("invalid dead_region_end: %d", c.DeadRegionEnd)
	}
	return nil
}

// BackendName returns the configured backend, xlsx by default.
func (c Config) BackendName() string {
	if c.Backend == "" {
		return BackendXLSX
	}
	return c.Backend
}

// Options converts the configuration to engine options.
func (c Config) Options(logger *slog.Logger) finsum.Options {
	opts := finsum.DefaultOptions()
	if c.Scope != "" {
		opts.Scope = finsum.Scope(c.Scope)
	}
	opts.Sheet = c.Sheet
	opts.DeadRegionEnd = c.DeadRegionEnd
	opts.PruneSheets = c.PruneSheets
	opts.Logger = logger
	return opts
}
