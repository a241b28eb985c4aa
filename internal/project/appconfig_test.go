package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppConfigMissingFile(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	want := DefaultAppConfig()
	if cfg.DefaultDiameter != want.DefaultDiameter || cfg.MaxCells != want.MaxCells {
		t.Errorf("missing file did not yield defaults: %+v", cfg)
	}
}

func TestAppConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "config.json")

	cfg := DefaultAppConfig()
	cfg.DefaultDiameter = 100
	cfg.Workers = 8
	cfg.RecentProjects = []string{"/tmp/a.json", "/tmp/b.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	got, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if got.DefaultDiameter != 100 || got.Workers != 8 {
		t.Errorf("config changed across save/load: %+v", got)
	}
	if len(got.RecentProjects) != 2 {
		t.Errorf("recent projects changed: %v", got.RecentProjects)
	}
}

func TestLoadAppConfigNilRecents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"default_diameter": 150}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should never be nil")
	}
}

func TestLoadAppConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected error for malformed config")
	}
}
