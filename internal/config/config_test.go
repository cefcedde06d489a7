package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Registry.BaseURL == "" {
		t.Fatal("registry base URL must default")
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"registry":{"base_url":"http://registry:5000/api","timeout_seconds":20},"server":{"port":9090}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Registry.BaseURL != "http://registry:5000/api" {
		t.Fatalf("unexpected base URL %q", cfg.Registry.BaseURL)
	}
	if cfg.Registry.Timeout() != 20*time.Second {
		t.Fatalf("a plain-seconds timeout in the file must parse, got %v", cfg.Registry.Timeout())
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("unexpected port %d", cfg.Server.Port)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"registry":{"base_url":"http://from-file/api"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONSOLE_REGISTRY_URL", "http://from-env/api")
	t.Setenv("CONSOLE_REGISTRY_TIMEOUT", "30s")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Registry.BaseURL != "http://from-env/api" {
		t.Fatalf("environment must win over the file, got %q", cfg.Registry.BaseURL)
	}
	if cfg.Registry.Timeout() != 30*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Registry.Timeout())
	}
}

func TestRegistryTimeoutEnvAcceptsPlainSeconds(t *testing.T) {
	t.Setenv("CONSOLE_REGISTRY_TIMEOUT", "45")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Registry.Timeout() != 45*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Registry.Timeout())
	}
}
