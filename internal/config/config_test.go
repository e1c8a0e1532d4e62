package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("expected default store backend 'memory', got %q", cfg.Store.Backend)
	}
	if cfg.Policy.BrandAskAfter != 2 {
		t.Errorf("expected brand_ask_after 2, got %d", cfg.Policy.BrandAskAfter)
	}
	if cfg.Engine.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Engine.Workers)
	}
	if cfg.Engine.AttemptTimeout != 45*time.Second {
		t.Errorf("expected attempt timeout 45s, got %v", cfg.Engine.AttemptTimeout)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 9090
store:
  backend: sqlite
  path: /tmp/conv.db
policy:
  brand_ask_after: 3
engine:
  workers: 8
  attempt_timeout: 10s
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Store.Backend != "sqlite" || cfg.Store.Path != "/tmp/conv.db" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Policy.BrandAskAfter != 3 {
		t.Errorf("brand_ask_after = %d, want 3", cfg.Policy.BrandAskAfter)
	}
	if cfg.Engine.Workers != 8 {
		t.Errorf("workers = %d, want 8", cfg.Engine.Workers)
	}
	if cfg.Engine.AttemptTimeout != 10*time.Second {
		t.Errorf("attempt_timeout = %v, want 10s", cfg.Engine.AttemptTimeout)
	}
	// Unset keys keep their defaults.
	if cfg.Engine.WarmupDelay != 2*time.Second {
		t.Errorf("warmup_delay = %v, want default 2s", cfg.Engine.WarmupDelay)
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 1)
	w, err := Watch(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("server:\n  port: 9191\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Server.Port != 9191 {
			t.Errorf("reloaded port = %d, want 9191", cfg.Server.Port)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
