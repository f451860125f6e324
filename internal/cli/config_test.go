package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("CECIL_ORGANISATION_ID", "")
	t.Setenv("CECIL_API_URL", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "organisation_id: org-from-file\napi_url: https://api.test/v0\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.OrganisationID != "org-from-file" {
		t.Errorf("OrganisationID = %q, want org-from-file", cfg.OrganisationID)
	}
	if cfg.APIURL != "https://api.test/v0" {
		t.Errorf("APIURL = %q, want https://api.test/v0", cfg.APIURL)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "organisation_id: org-from-file\napi_url: https://file.test\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CECIL_ORGANISATION_ID", "org-from-env")
	t.Setenv("CECIL_API_URL", "https://env.test")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.OrganisationID != "org-from-env" {
		t.Errorf("OrganisationID = %q, want org-from-env", cfg.OrganisationID)
	}
	if cfg.APIURL != "https://env.test" {
		t.Errorf("APIURL = %q, want https://env.test", cfg.APIURL)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if !strings.Contains(err.Error(), "read config") {
		t.Errorf("got %v, want read config error", err)
	}
}

func TestLoadConfigDefaultMissingOK(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CECIL_ORGANISATION_ID", "")
	t.Setenv("CECIL_API_URL", "")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("cfg = %+v, want zero value", cfg)
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("organisation_id: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := loadConfig(path)
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("got %v, want parse config error", err)
	}
}

func TestLoadConfigEnvOnly(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CECIL_ORGANISATION_ID", "org-env")
	t.Setenv("CECIL_API_URL", "")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.OrganisationID != "org-env" {
		t.Errorf("OrganisationID = %q, want org-env", cfg.OrganisationID)
	}
	if cfg.APIURL != "" {
		t.Errorf("APIURL = %q, want empty", cfg.APIURL)
	}
}
