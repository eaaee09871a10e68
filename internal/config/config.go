// Package config loads runtime settings from the process environment,
// optionally seeded from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrInvalidValue is returned when an environment variable cannot be parsed.
var ErrInvalidValue = errors.New("config: invalid value")

// Store backends.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Trace exporters.
const (
	TraceNone   = "none"
	TraceStdout = "stdout"
)

// Config is the resolved runtime configuration.
type Config struct {
	DataDir       string
	RelativesFile string
	ModesFile     string
	Store         string
	DatabaseURL   string
	HTTPAddr      string
	Workers       int
	MaxNodes      int
	Trace         string
	LogLevel      string
	LogFormat     string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:       "./data",
		RelativesFile: "relatives.json",
		ModesFile:     "transport_modes.json",
		Store:         StoreFile,
		HTTPAddr:      ":8080",
		Workers:       0,
		MaxNodes:      12,
		Trace:         TraceNone,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// RelativesPath joins DataDir and RelativesFile unless the latter is absolute.
func (c Config) RelativesPath() string { return c.join(c.RelativesFile) }

// ModesPath joins DataDir and ModesFile unless the latter is absolute.
func (c Config) ModesPath() string { return c.join(c.ModesFile) }

func (c Config) join(name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(c.DataDir, name)
}

// Load reads .env (a missing file is fine) and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	return FromLookup(os.LookupEnv)
}

// FromLookup resolves a Config through lookup, which has the signature of
// os.LookupEnv. Unset variables keep their defaults.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("TARJAN_DATA_DIR", &c.DataDir)
	str("TARJAN_RELATIVES_FILE", &c.RelativesFile)
	str("TARJAN_MODES_FILE", &c.ModesFile)
	str("TARJAN_STORE", &c.Store)
	str("TARJAN_DATABASE_URL", &c.DatabaseURL)
	str("TARJAN_HTTP_ADDR", &c.HTTPAddr)
	str("TARJAN_TRACE", &c.Trace)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)

	var err error
	if c.Workers, err = intVar(lookup, "TARJAN_WORKERS", c.Workers, 0, 1024); err != nil {
		return Config{}, err
	}
	if c.MaxNodes, err = intVar(lookup, "TARJAN_MAX_NODES", c.MaxNodes, 1, 20); err != nil {
		return Config{}, err
	}

	c.Store = strings.ToLower(c.Store)
	switch c.Store {
	case StoreFile:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return Config{}, fmt.Errorf("TARJAN_DATABASE_URL is required for the postgres store: %w", ErrInvalidValue)
		}
	default:
		return Config{}, fmt.Errorf("TARJAN_STORE=%q: %w", c.Store, ErrInvalidValue)
	}

	c.Trace = strings.ToLower(c.Trace)
	if c.Trace != TraceNone && c.Trace != TraceStdout {
		return Config{}, fmt.Errorf("TARJAN_TRACE=%q: %w", c.Trace, ErrInvalidValue)
	}

	return c, nil
}

func intVar(lookup func(string) (string, bool), key string, def, lo, hi int) (int, error) {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w: %w", key, v, ErrInvalidValue, err)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%s=%d outside [%d,%d]: %w", key, n, lo, hi, ErrInvalidValue)
	}

	return n, nil
}
