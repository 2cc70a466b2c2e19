package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `environment: test
server:
  port: 9090
  read_timeout: 5s
  write_timeout: 15s
  shutdown_timeout: 10s
backend:
  type: kafka
  batch_size: 500
kafka:
  brokers: ["localhost:9092"]
  topic: lob.snapshots
simulation:
  symbol: AAPL
  base_price: 150.0
  base_volatility: 0.0002
  base_spread: 0.01
  volatility_persistence: 0.95
  start: 2024-01-15T09:30:00Z
  tick_interval: 500ms
  lookback: 10
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port: got %d want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout.Std() != 5*time.Second {
		t.Fatalf("read timeout: got %v want 5s", cfg.Server.ReadTimeout.Std())
	}
	if cfg.Simulation.TickInterval.Std() != 500*time.Millisecond {
		t.Fatalf("tick interval: got %v want 500ms", cfg.Simulation.TickInterval.Std())
	}
	want := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if !cfg.Simulation.Start.Equal(want) {
		t.Fatalf("start: got %v want %v", cfg.Simulation.Start, want)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	badYAML := `environment: test
backend:
  type: postgres
simulation:
  symbol: AAPL
  base_price: 150.0
  base_volatility: 0.0002
  base_spread: 0.01
`
	if _, err := Load(writeConfig(t, badYAML)); err == nil {
		t.Fatalf("expected validation error for backend.type")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("BACKEND", "clickhouse")
	t.Setenv("SYMBOL", "MSFT")

	cfg, err := LoadWithEnv(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.Type != "clickhouse" {
		t.Fatalf("backend override: got %q", cfg.Backend.Type)
	}
	if cfg.Simulation.Symbol != "MSFT" {
		t.Fatalf("symbol override: got %q", cfg.Simulation.Symbol)
	}
}

func TestValidateRejectsBadPersistence(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Simulation.VolatilityPersistence = 1.0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for persistence = 1.0")
	}
}
