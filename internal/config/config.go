// Package config loads server configuration from config.yaml and the
// environment. Environment variables override YAML values.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port           string   `yaml:"port" env:"PORT" env-default:"8001"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://127.0.0.1:3000"`
	UploadDir      string   `yaml:"upload_dir" env:"UPLOAD_DIR" env-default:"./uploads"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES" env-default:"104857600"` // 100MB
	SampleSeed     int64    `yaml:"sample_seed" env:"SAMPLE_SEED" env-default:"42"`
	LogLevel       string   `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads config.yaml when present and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = "config.yaml"
	}
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}
	return cfg, nil
}
