package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	content := "output_dir: /data/media\nmode: audio\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.OutputDir != "/data/media" {
		t.Errorf("Expected output_dir /data/media, got %q", cfg.OutputDir)
	}
	if cfg.Mode != "audio" {
		t.Errorf("Expected mode audio, got %q", cfg.Mode)
	}
}

func TestLoadFile_MissingIsNotAnError(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Expected missing file to yield zero config, got %v", err)
	}
	if cfg.OutputDir != "" || cfg.Mode != "" {
		t.Errorf("Expected zero config, got %+v", cfg)
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("output_dir: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("Expected parse error for invalid YAML")
	}
}

func TestLoadFile_InvalidMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("mode: flac\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("Expected error for unknown mode in config file")
	}
}
