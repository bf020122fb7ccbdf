package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Screen.Width != 1280 || cfg.Screen.Height != 720 {
		t.Errorf("screen = %dx%d, want 1280x720", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Camera.Mode != "orbit" {
		t.Errorf("camera mode = %q, want orbit", cfg.Camera.Mode)
	}
	if cfg.Field.Nodes != 50 {
		t.Errorf("field nodes = %d, want 50", cfg.Field.Nodes)
	}
	if cfg.Derived.ScreenW32 != 1280 {
		t.Errorf("derived screen width = %g, want 1280", cfg.Derived.ScreenW32)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte("field:\n  nodes: 12\ncamera:\n  mode: first_person\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Overridden fields
	if cfg.Field.Nodes != 12 {
		t.Errorf("field nodes = %d, want 12", cfg.Field.Nodes)
	}
	if cfg.Camera.Mode != "first_person" {
		t.Errorf("camera mode = %q, want first_person", cfg.Camera.Mode)
	}
	// Untouched fields keep defaults
	if cfg.Field.Decay != 0.95 {
		t.Errorf("field decay = %g, want default 0.95", cfg.Field.Decay)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
	}{
		{"zero nodes", "field:\n  nodes: 0\n"},
		{"negative nodes", "field:\n  nodes: -5\n"},
		{"fov too wide", "camera:\n  fov: 200\n"},
		{"zero fov", "camera:\n  fov: 0\n"},
		{"bad mode", "camera:\n  mode: isometric\n"},
		{"zero near clip", "camera:\n  near_clip: 0\n"},
		{"decay above one", "field:\n  decay: 1.5\n"},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load succeeded, want validation error")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if back.Field.Nodes != cfg.Field.Nodes || back.Camera.FOV != cfg.Camera.FOV {
		t.Error("snapshot did not round-trip")
	}
}
