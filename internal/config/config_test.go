package config

import "testing"

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("ISORUN_CONCURRENCY", "")
	t.Setenv("ISORUN_SPAWN_RATE", "")
	t.Setenv("ISORUN_METRICS_ADDR", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Concurrency != 1 {
		t.Errorf("expected Concurrency 1, got %d", cfg.Concurrency)
	}
	if cfg.SpawnRate != 0 {
		t.Errorf("expected SpawnRate 0, got %f", cfg.SpawnRate)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("expected empty MetricsAddr, got %s", cfg.MetricsAddr)
	}
	if cfg.OTELEndpoint != "" {
		t.Errorf("expected empty OTELEndpoint, got %s", cfg.OTELEndpoint)
	}
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("ISORUN_CONCURRENCY", "5")
	t.Setenv("ISORUN_SPAWN_RATE", "2.5")
	t.Setenv("ISORUN_METRICS_ADDR", ":6162")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4317")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Concurrency != 5 {
		t.Errorf("expected Concurrency 5, got %d", cfg.Concurrency)
	}
	if cfg.SpawnRate != 2.5 {
		t.Errorf("expected SpawnRate 2.5, got %f", cfg.SpawnRate)
	}
	if cfg.MetricsAddr != ":6162" {
		t.Errorf("expected MetricsAddr :6162, got %s", cfg.MetricsAddr)
	}
	if cfg.OTELEndpoint != "otel-collector:4317" {
		t.Errorf("expected OTELEndpoint otel-collector:4317, got %s", cfg.OTELEndpoint)
	}
}

func TestLoad_InvalidConcurrency(t *testing.T) {
	t.Setenv("ISORUN_CONCURRENCY", "not-a-number")

	_, err := Load()
	if err == nil {
		t.Error("expected error for invalid ISORUN_CONCURRENCY")
	}
}

func TestLoad_InvalidSpawnRate(t *testing.T) {
	t.Setenv("ISORUN_CONCURRENCY", "")
	t.Setenv("ISORUN_SPAWN_RATE", "fast")

	_, err := Load()
	if err == nil {
		t.Error("expected error for invalid ISORUN_SPAWN_RATE")
	}
}
