// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every knob the server reads from the environment. A .env file
// is loaded by cmd/server before parsing, so local development only needs the
// file, not exported variables.
type Config struct {
	Port             int    `env:"PORT" envDefault:"3000"`
	MongoURI         string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase    string `env:"MONGO_DB" envDefault:"carkit"`
	JWTSecret        string `env:"JWT_SECRET,required,notEmpty"`
	JWTRefreshSecret string `env:"JWT_REFRESH_SECRET,required,notEmpty"`
	GoogleClientID   string `env:"GOOGLE_CLIENT_ID"`
	AppleJWKSURL     string `env:"APPLE_JWKS_URL" envDefault:"https://appleid.apple.com/auth/keys"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
