package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration, read from an optional YAML file and
// overridden by PRAXIS_* environment variables. Flags handled in cmd take
// precedence over both.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{Address: "", Port: 3000},
	}
}

// Load reads the config file at path (skipped when path is empty) and applies
// environment overrides on top of the defaults.
func Load(path string) (cfg Config, err error) {
	cfg = defaults()

	if path != "" {
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			err = fmt.Errorf("failed to read config file: %w", readErr)
			return
		}
		if err = yaml.Unmarshal(raw, &cfg); err != nil {
			err = fmt.Errorf("failed to parse config file: %w", err)
			return
		}
	}

	if addr := os.Getenv("PRAXIS_ADDRESS"); addr != "" {
		cfg.Server.Address = addr
	}
	if rawPort := os.Getenv("PRAXIS_PORT"); rawPort != "" {
		port, parseErr := strconv.Atoi(rawPort)
		if parseErr != nil {
			err = fmt.Errorf("PRAXIS_PORT must be an integer: %w", parseErr)
			return
		}
		cfg.Server.Port = port
	}
	if dbURL := os.Getenv("PRAXIS_DB_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	return
}
