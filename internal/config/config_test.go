package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Addr != ":8050" || c.LogLevel != "info" || c.DefaultCountryCount != 10 || c.DefaultColorScale != "Plasma" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.DataPath != filepath.Join("data", "world-happiness-report-2021.csv") {
		t.Fatalf("data path = %q", c.DataPath)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "cfg.yaml")
	c := &Global{DataPath: "/srv/happy.csv", Addr: ":9000", LogLevel: "debug", PNGWidth: 640, PNGHeight: 480, DefaultColorScale: "Inferno", DefaultCountryCount: 12}
	if err := Save(c, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DataPath != "/srv/happy.csv" || got.Addr != ":9000" || got.PNGWidth != 640 || got.DefaultColorScale != "Inferno" || got.DefaultCountryCount != 12 {
		t.Fatalf("round trip lost values: %+v", got)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "cfg.yaml")
	if err := Save(&Global{Addr: ":9000"}, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	t.Setenv("HAPPYDASH_ADDR", ":7000")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Addr != ":7000" {
		t.Fatalf("env should win over file, got %q", got.Addr)
	}
}

func TestSaveErrorKeepsCause(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "missing", "cfg.yaml")
	err := Save(&Global{Addr: ":9000"}, path)
	if err == nil {
		t.Fatalf("expected error writing into a missing directory")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("cause should be preserved, got %v", err)
	}
}
