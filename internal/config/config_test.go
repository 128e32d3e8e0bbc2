package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config must not error: %v", err)
	}
	if cfg.Data != "network.yaml" || cfg.Listen != "127.0.0.1:8990" || cfg.FPS != 60 {
		t.Fatalf("defaults wrong: %+v", cfg)
	}
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphview.yaml")
	content := `
data: contacts.yaml
fps: 30
physics:
  repulsion: 5000
  damping: 0.85
theme:
  background: "#000000"
  foreground: "#ffffff"
palette:
  family: "#e05661"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Data != "contacts.yaml" {
		t.Errorf("data = %q", cfg.Data)
	}
	if cfg.Listen != "127.0.0.1:8990" {
		t.Errorf("unset listen should keep default: %q", cfg.Listen)
	}
	if cfg.FPS != 30 {
		t.Errorf("fps = %d", cfg.FPS)
	}
	if cfg.Physics == nil || cfg.Physics.Repulsion != 5000 || cfg.Physics.Damping != 0.85 {
		t.Errorf("physics = %+v", cfg.Physics)
	}

	opts := cfg.Options()
	if opts.Repulsion != 5000 {
		t.Errorf("options repulsion = %v", opts.Repulsion)
	}
	if string(opts.Theme.Background) != "#000000" {
		t.Errorf("options background = %q", opts.Theme.Background)
	}
	if string(opts.Palette["family"]) != "#e05661" {
		t.Errorf("options palette = %v", opts.Palette)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphview.yaml")
	if err := os.WriteFile(path, []byte("fps: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
