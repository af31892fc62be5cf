package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")

	cfg := Load()

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("default model = %q", cfg.LLM.Model)
	}
	if cfg.Scheduler.Interval != 24*time.Hour || cfg.Scheduler.BatchSize != 3 {
		t.Fatalf("unexpected scheduler defaults: %+v", cfg.Scheduler)
	}
	if cfg.Site.Name != "LUXE STANDARD" {
		t.Fatalf("default site name = %q", cfg.Site.Name)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte("server:\n  addr: \":9090\"\nllm:\n  model: custom-model\nscheduler:\n  batchSize: 5\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.LLM.Model != "custom-model" {
		t.Fatalf("model = %q", cfg.LLM.Model)
	}
	if cfg.Scheduler.BatchSize != 5 {
		t.Fatalf("batch size = %d, want 5", cfg.Scheduler.BatchSize)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Fatalf("untouched default changed: %v", cfg.Server.ReadTimeout)
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("llm:\n  model: file-model\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv(llmModelEnv, "env-model")
	t.Setenv(adminSecretEnv, "env-secret")

	cfg := Load()

	if cfg.LLM.Model != "env-model" {
		t.Fatalf("model = %q, want env-model", cfg.LLM.Model)
	}
	if cfg.Site.AdminSecret != "env-secret" {
		t.Fatalf("admin secret = %q", cfg.Site.AdminSecret)
	}
}

func TestLoadToleratesMissingFile(t *testing.T) {
	t.Setenv(configPathEnv, "/nonexistent/config.yaml")

	cfg := Load()
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected defaults on unreadable file, got addr %q", cfg.Server.Addr)
	}
}
