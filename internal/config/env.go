package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables that override file configuration.
const (
	EnvPort = "MALIAO_PORT"
	EnvBaud = "MALIAO_BAUD"
	EnvFPS  = "MALIAO_FPS"
	EnvMock = "MALIAO_MOCK"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ApplyEnv overrides link and timing settings from the environment.
func ApplyEnv(cfg *Config) error {
	cfg.Link.Port = GetEnv(EnvPort, cfg.Link.Port)

	if v := GetEnv(EnvBaud, ""); v != "" {
		baud, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvBaud, v, err)
		}
		cfg.Link.Baud = baud
	}
	if v := GetEnv(EnvFPS, ""); v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvFPS, v, err)
		}
		cfg.Game.FPS = fps
	}
	if v := GetEnv(EnvMock, ""); v != "" {
		mock, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvMock, v, err)
		}
		cfg.Link.Mock = mock
	}
	return nil
}
