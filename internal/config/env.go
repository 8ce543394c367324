package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerEnv holds serve settings that may come from the environment.
// Command-line flags take precedence over these values.
type ServerEnv struct {
	Address     string        `env:"DESSERT_SSH_ADDR" envDefault:":23235"`
	HostKeyPath string        `env:"DESSERT_HOST_KEY"`
	DBPath      string        `env:"DESSERT_DB" envDefault:"~/.dessert/runs.db"`
	IdleTimeout time.Duration `env:"DESSERT_IDLE_TIMEOUT" envDefault:"30m"`
	MetricsAddr string        `env:"DESSERT_METRICS_ADDR"`
	LogLevel    string        `env:"DESSERT_LOG_LEVEL" envDefault:"info"`
}

// ParseServerEnv loads ServerEnv from environment variables.
func ParseServerEnv() (ServerEnv, error) {
	var cfg ServerEnv
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
