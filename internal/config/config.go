package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-nmr/nmr/field"
	"github.com/cwbudde/algo-nmr/nmr/isotope"
)

// Config holds application configuration.
type Config struct {
	// Field is the default magnetic field, e.g. "9.4T" or "400MHz".
	Field string `json:"field,omitempty"`

	// Nucleus is the default observed nucleus, e.g. "13C".
	Nucleus string `json:"nucleus,omitempty"`

	// LogLevel is one of panic, fatal, error, warn, info, debug, trace.
	LogLevel string `json:"log_level,omitempty"`

	// LogFormat is "text" or "json".
	LogFormat string `json:"log_format,omitempty"`

	// LogFile, when set, receives a rotated copy of the log.
	LogFile string `json:"log_file,omitempty"`

	// LibraryDir holds the spectrum library database.
	LibraryDir string `json:"library_dir,omitempty"`

	// IsotopeFile replaces the bundled isotope table.
	IsotopeFile string `json:"isotope_file,omitempty"`
}

// Environment variables read by ApplyEnv.
const (
	EnvField       = "SIMPYSON_FIELD"
	EnvNucleus     = "SIMPYSON_NUCLEUS"
	EnvLogLevel    = "SIMPYSON_LOG_LEVEL"
	EnvLogFormat   = "SIMPYSON_LOG_FORMAT"
	EnvLogFile     = "SIMPYSON_LOG_FILE"
	EnvLibraryDir  = "SIMPYSON_LIBRARY_DIR"
	EnvIsotopeFile = "SIMPYSON_ISOTOPE_FILE"
)

// DefaultDir returns ~/.simpyson, or ".simpyson" if the home directory is
// unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".simpyson"
	}
	return filepath.Join(home, ".simpyson")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  "text",
		LibraryDir: DefaultDir(),
	}
}

// Load loads configuration from path on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs; non-empty overlay values win.
func Merge(base, overlay *Config) *Config {
	pick := func(o, b string) string {
		if strings.TrimSpace(o) != "" {
			return o
		}
		return b
	}
	return &Config{
		Field:       pick(overlay.Field, base.Field),
		Nucleus:     pick(overlay.Nucleus, base.Nucleus),
		LogLevel:    pick(overlay.LogLevel, base.LogLevel),
		LogFormat:   pick(overlay.LogFormat, base.LogFormat),
		LogFile:     pick(overlay.LogFile, base.LogFile),
		LibraryDir:  pick(overlay.LibraryDir, base.LibraryDir),
		IsotopeFile: pick(overlay.IsotopeFile, base.IsotopeFile),
	}
}

// ApplyEnv returns cfg overridden by the SIMPYSON_* variables found by
// lookup, typically os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) *Config {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	return Merge(cfg, &Config{
		Field:       get(EnvField),
		Nucleus:     get(EnvNucleus),
		LogLevel:    get(EnvLogLevel),
		LogFormat:   get(EnvLogFormat),
		LogFile:     get(EnvLogFile),
		LibraryDir:  get(EnvLibraryDir),
		IsotopeFile: get(EnvIsotopeFile),
	})
}

// Validate checks the field, nucleus and log format values.
func (c *Config) Validate() error {
	var errs []error
	if c.Field != "" {
		if _, err := field.Parse(c.Field); err != nil {
			errs = append(errs, fmt.Errorf("config: field: %w", err))
		}
	}
	if c.Nucleus != "" {
		if _, _, err := isotope.ParseNucleus(c.Nucleus); err != nil {
			errs = append(errs, fmt.Errorf("config: nucleus: %w", err))
		}
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: log format %q must be text or json", c.LogFormat))
	}
	return errors.Join(errs...)
}
