// Package config sources runtime configuration for the rxfsm commands
// from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Serve holds the configuration of the serve command.
type Serve struct {
	// Addr is the listen address of the JSON API.
	Addr string `env:"RXFSM_ADDR" envDefault:":8080"`

	// MetricsAddr is the listen address of the Prometheus endpoint.
	MetricsAddr string `env:"RXFSM_METRICS_ADDR" envDefault:":2112"`

	// RedisAddr enables the Redis occurrence pump when non-empty.
	RedisAddr string `env:"RXFSM_REDIS_ADDR"`

	// RedisPrefix namespaces the pub/sub channels the pump listens on.
	RedisPrefix string `env:"RXFSM_REDIS_PREFIX" envDefault:"rxfsm:"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"RXFSM_LOG_LEVEL" envDefault:"info"`
}

// LoadServe parses the serve configuration from the environment.
func LoadServe() (Serve, error) {
	var cfg Serve
	if err := env.Parse(&cfg); err != nil {
		return Serve{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
