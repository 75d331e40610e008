// Package config handles loading and parsing application configuration.
// It supports these sources (later ones win):
//  1. An optional .env file in the working directory
//  2. A YAML file, from the --config flag or CONFIG_PATH
//  3. Environment variables named by the env:"..." tags
//
// Both binaries share one Config. The console client only needs Env,
// Locale, LogFile and API; the reference server only needs Env,
// StoragePath and HTTPServer.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// ErrNoConfigPath is returned when neither the flag nor CONFIG_PATH name
// a file and the caller requires one.
var ErrNoConfigPath = errors.New("config path is not set: use --config flag or CONFIG_PATH env var")

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"prod"`

	// Locale selects the message catalog: "id" or "en".
	Locale string `yaml:"locale" env:"LOCALE" env-default:"id"`

	// LogFile redirects client logs away from the terminal when set.
	LogFile string `yaml:"log_file" env:"LOG_FILE"`

	// StoragePath is the filesystem path to the SQLite .db file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"storage/mahasiswa.db"`

	API `yaml:"api"`

	HTTPServer `yaml:"http_server"`
}

// API holds the settings of the remote student-record API.
type API struct {
	// BaseURL is the scheme and host of the API, e.g. "http://localhost:8082".
	// The client refuses to start when it is blank.
	BaseURL string `yaml:"base_url" env:"API_BASE_URL"`

	// Timeout bounds every request, connection included.
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"30s"`
}

// HTTPServer holds settings specific to the reference HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
}

// Path resolves the config file path: the explicit value first, then
// CONFIG_PATH. An empty result means "no file".
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("CONFIG_PATH")
}

// Load reads the configuration. With an empty path only the environment
// (and .env) is consulted, so the client can run from API_BASE_URL alone.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read env: %w", err)
		}
		return &cfg, nil
	}

	// Verify the file exists before trying to read it, for a clearer
	// message than the one from the YAML decoder.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config.Load: config file does not exist: %s", path)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: cannot read config: %w", err)
	}

	return &cfg, nil
}

// MustLoad reads, validates, and returns the config from a required file.
// Functions prefixed with "Must" are allowed to exit on failure: if this
// returns, the config is usable.
func MustLoad(path string) *Config {
	if path == "" {
		log.Fatal(ErrNoConfigPath)
	}

	cfg, err := Load(path)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}
