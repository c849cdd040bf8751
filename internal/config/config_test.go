package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Dynamo.Table != "research-papers" {
		t.Fatalf("unexpected default table: %q", cfg.Dynamo.Table)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("unexpected default port: %d", cfg.Server.Port)
	}
	if cfg.Loader.BatchSize != 25 || cfg.Loader.KeywordLimit != 10 {
		t.Fatalf("unexpected loader defaults: %+v", cfg.Loader)
	}
	if len(cfg.Sites) == 0 {
		t.Fatal("expected default sites")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(tableNameEnv, "papers-staging")
	t.Setenv(endpointEnv, "http://localhost:8000")
	t.Setenv(serverPortEnv, "9090")

	cfg := Load()

	if cfg.Dynamo.Table != "papers-staging" {
		t.Fatalf("table override not applied: %q", cfg.Dynamo.Table)
	}
	if cfg.Dynamo.Endpoint != "http://localhost:8000" {
		t.Fatalf("endpoint override not applied: %q", cfg.Dynamo.Endpoint)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port override not applied: %d", cfg.Server.Port)
	}
}

func TestLoadYAMLFileMerged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("dynamo:\n  table: papers-file\nloader:\n  batchSize: 10\nscheduler:\n  interval: 1h\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Dynamo.Table != "papers-file" {
		t.Fatalf("file table not merged: %q", cfg.Dynamo.Table)
	}
	if cfg.Loader.BatchSize != 10 {
		t.Fatalf("file batch size not merged: %d", cfg.Loader.BatchSize)
	}
	if cfg.Scheduler.IntervalDuration() != time.Hour {
		t.Fatalf("file interval not merged: %s", cfg.Scheduler.IntervalDuration())
	}
	// Untouched sections keep their defaults.
	if cfg.Server.Port != 8080 {
		t.Fatalf("default port lost in merge: %d", cfg.Server.Port)
	}
}

func TestBatchSizeClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("loader:\n  batchSize: 100\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Loader.BatchSize != 25 {
		t.Fatalf("batch size not clamped to 25: %d", cfg.Loader.BatchSize)
	}
}

func TestIntervalDurationFallsBackToDaily(t *testing.T) {
	s := SchedulerConfig{Interval: "not-a-duration"}
	if s.IntervalDuration() != 24*time.Hour {
		t.Fatalf("bad interval should default to daily, got %s", s.IntervalDuration())
	}
}
