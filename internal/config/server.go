package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP server settings read from the environment.
type ServerConfig struct {
	Addr             string        `env:"SIMULATOR_ADDR" envDefault:":4000"`
	StrictValidation bool          `env:"SIMULATOR_STRICT_VALIDATION" envDefault:"false"`
	AllowedOrigin    string        `env:"SIMULATOR_ALLOWED_ORIGIN" envDefault:"*"`
	ShutdownTimeout  time.Duration `env:"SIMULATOR_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	WriteTimeout     time.Duration `env:"SIMULATOR_WRITE_TIMEOUT" envDefault:"30s"`
	MaxYears         int           `env:"SIMULATOR_MAX_YEARS" envDefault:"200"`
	MRDTable         string        `env:"SIMULATOR_MRD_TABLE" envDefault:"uniform-2002"`
}

// LoadServerConfig loads dotenv files (when present) and parses the environment.
// Variables already set in the environment take precedence over dotenv values.
func LoadServerConfig(dotenvFiles ...string) (ServerConfig, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ServerConfig{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
