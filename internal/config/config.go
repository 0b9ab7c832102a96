package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
)

// Placeholder keys shipped in the example .env; they count as "no
// credential" and put the service in demo mode.
var placeholderKeys = map[string]bool{
	"your_openweather_api_key_here":   true,
	"demo_mode_replace_with_real_key": true,
}

// AppConfig is the full runtime configuration.
type AppConfig struct {
	// WeatherAPIKey is the OpenWeatherMap credential. Empty or placeholder
	// values enable demo mode.
	WeatherAPIKey string

	Port        string
	HTTPTimeout time.Duration

	// PrefsDBPath is the SQLite preference database; empty means the
	// in-memory store.
	PrefsDBPath string

	// Base URL overrides, primarily for tests.
	DataBaseURL string
	GeoBaseURL  string
}

// HasValidKey reports whether a real provider credential is configured.
func (c *AppConfig) HasValidKey() bool {
	return c.WeatherAPIKey != "" && !placeholderKeys[c.WeatherAPIKey]
}

// fileConfig is the optional JSON config file shape; set fields override
// the environment.
type fileConfig struct {
	WeatherAPIKey string `mapstructure:"weather_api_key"`
	Port          string `mapstructure:"port"`
	HTTPTimeout   string `mapstructure:"http_timeout"`
	PrefsDBPath   string `mapstructure:"prefs_db"`
}

// Load reads configuration from the environment (and .env, when present)
// with sensible defaults. If path is non-empty, values from the JSON config
// file there override the environment.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		WeatherAPIKey: os.Getenv("WEATHER_API_KEY"),
		Port:          getenvDefault("PORT", "5000"),
		PrefsDBPath:   os.Getenv("PREFS_DB"),
		DataBaseURL:   os.Getenv("OWM_DATA_URL"),
		GeoBaseURL:    os.Getenv("OWM_GEO_URL"),
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyFile merges a JSON config file over the loaded configuration.
func (c *AppConfig) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	var fc fileConfig
	if err := mapstructure.Decode(fields, &fc); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}

	if fc.WeatherAPIKey != "" {
		c.WeatherAPIKey = fc.WeatherAPIKey
	}
	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.PrefsDBPath != "" {
		c.PrefsDBPath = fc.PrefsDBPath
	}
	if fc.HTTPTimeout != "" {
		timeout, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("invalid http_timeout in config file: %w", err)
		}
		c.HTTPTimeout = timeout
	}

	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
