package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: http://panel.corp:8000
  csrf_cookie: mitoken
  report_url: http://panel.corp:8000/informe
  timeout_sec: 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.BaseURL != "http://panel.corp:8000" {
		t.Errorf("base_url = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.CSRFCookie != "mitoken" {
		t.Errorf("csrf_cookie = %q", cfg.Server.CSRFCookie)
	}
	if cfg.Server.ReportURL != "http://panel.corp:8000/informe" {
		t.Errorf("report_url = %q", cfg.Server.ReportURL)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout())
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: http://localhost:8000
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.CSRFCookie != "csrftoken" {
		t.Errorf("default csrf_cookie = %q", cfg.Server.CSRFCookie)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("default timeout = %v", cfg.Timeout())
	}
	if cfg.Server.ReportURL != "" {
		t.Errorf("default report_url = %q", cfg.Server.ReportURL)
	}
}

func TestLoadMissingBaseURL(t *testing.T) {
	path := writeConfig(t, `
server:
  timeout_sec: 5
`)
	if _, err := Load(path); err == nil {
		t.Fatal("want error for missing base_url")
	}
}

func TestLoadMissingFile(t *testing.T) {
	// A missing file falls back to the defaults, which lack a base URL.
	path := filepath.Join(t.TempDir(), "no-existe.yaml")
	if _, err := Load(path); err == nil {
		t.Fatal("want error: defaults have no base_url")
	}
}
