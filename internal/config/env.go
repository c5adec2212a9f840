package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment keys read by the CLI and the HTTP server
const (
	EnvPort             = "ZUSIM_PORT"
	EnvAnalyticsFile    = "ZUSIM_ANALYTICS_FILE"
	EnvAnalyticsDSN     = "ZUSIM_ANALYTICS_DSN"
	EnvPresentationMode = "ZUSIM_PRESENTATION_MODE"

	DefaultPort = 8080
)

// Source looks up process settings by key
type Source interface {
	Get(key string) (string, bool)
}

// EnvSource reads the process environment
type EnvSource struct{}

func (EnvSource) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapSource serves settings from memory
type MapSource map[string]string

func (m MapSource) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// LoadEnv primes the process environment from the given .env files. Missing
// files are skipped; variables already set are not overridden.
func LoadEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// Settings are the process-level options shared by serve and the CLI
type Settings struct {
	Port             int
	AnalyticsFile    string
	AnalyticsDSN     string
	PresentationMode bool
}

// LoadSettings reads Settings from src, applying defaults for unset keys
func LoadSettings(src Source) (Settings, error) {
	s := Settings{Port: DefaultPort}

	if v, ok := src.Get(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Settings{}, &ValidationError{Field: EnvPort, Reason: fmt.Sprintf("invalid port %q", v)}
		}
		s.Port = port
	}
	if v, ok := src.Get(EnvAnalyticsFile); ok {
		s.AnalyticsFile = v
	}
	if v, ok := src.Get(EnvAnalyticsDSN); ok {
		s.AnalyticsDSN = v
	}
	if v, ok := src.Get(EnvPresentationMode); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Settings{}, &ValidationError{Field: EnvPresentationMode, Reason: fmt.Sprintf("invalid boolean %q", v)}
		}
		s.PresentationMode = b
	}
	return s, nil
}
