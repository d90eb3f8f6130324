// Package config loads CLI settings from a YAML file and NFASIM_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no file is given explicitly.
const DefaultFile = "nfasim.yaml"

// Config holds the settings shared by every command.
// Precedence: defaults, then the YAML file, then the environment. Flags are applied by the caller.
type Config struct {
	// Dir is the Loam repository holding definition documents.
	Dir string `yaml:"dir" env:"NFASIM_DIR"`
	// RedisURL switches the definition source to a Redis store when set.
	RedisURL  string        `yaml:"redis_url" env:"NFASIM_REDIS_URL"`
	RedisTTL  time.Duration `yaml:"redis_ttl" env:"NFASIM_REDIS_TTL"`
	Addr      string        `yaml:"addr" env:"NFASIM_ADDR"`
	LogLevel  string        `yaml:"log_level" env:"NFASIM_LOG_LEVEL"`
	LogFormat string        `yaml:"log_format" env:"NFASIM_LOG_FORMAT"`
	Watch     bool          `yaml:"watch" env:"NFASIM_WATCH"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Dir:       ".",
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds the configuration. An empty path means DefaultFile, which may be absent.
// An explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
