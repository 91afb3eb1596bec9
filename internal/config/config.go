package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

const defaultDotEnvPath = ".env"

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Env             string        `env:"APP_ENV" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	DefaultCurrency string        `env:"DEFAULT_CURRENCY" envDefault:"ZAR"`
	Locale          string        `env:"LOCALE" envDefault:"en-ZA"`
	APIKeys         []string      `env:"API_KEYS" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// IsDev reports whether the application runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "dev"
}

// Warnings lists settings that are valid but probably unintended.
func (c Config) Warnings() []string {
	var warnings []string
	if len(c.APIKeys) == 0 && !c.IsDev() {
		warnings = append(warnings, "API_KEYS is not set; the API is unauthenticated")
	}
	return warnings
}

// Load reads the local .env file, if any, and then environment variables.
func Load() (Config, error) {
	return LoadFrom(defaultDotEnvPath)
}

// LoadFrom is Load with an explicit dotenv path. Variables already present in
// the environment are never overwritten by the file.
func LoadFrom(dotEnvPath string) (Config, error) {
	if err := godotenv.Load(dotEnvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv %s: %w", dotEnvPath, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
