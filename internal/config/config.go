// Package config handles environment variable loading for batch execution
// defaults. Interpreter selection lives in the CLI's viper layer; this
// package only covers the tuning knobs a flag may fall back to.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds batch execution defaults.
type Config struct {
	// Maximum concurrent child processes
	Concurrency int

	// Child spawns per second; 0 disables the limiter
	SpawnRate float64

	// Address for the Prometheus /metrics endpoint; empty disables it
	MetricsAddr string

	// OTLP collector endpoint for traces; empty disables tracing
	OTELEndpoint string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	concurrency := 1
	if v := os.Getenv("ISORUN_CONCURRENCY"); v != "" {
		c, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ISORUN_CONCURRENCY: %w", err)
		}
		concurrency = c
	}

	spawnRate := 0.0
	if v := os.Getenv("ISORUN_SPAWN_RATE"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ISORUN_SPAWN_RATE: %w", err)
		}
		spawnRate = r
	}

	return &Config{
		Concurrency:  concurrency,
		SpawnRate:    spawnRate,
		MetricsAddr:  os.Getenv("ISORUN_METRICS_ADDR"),
		OTELEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}
