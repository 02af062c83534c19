package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "./assets/media/" {
		t.Errorf("unexpected base url: %q", cfg.BaseURL)
	}
	if cfg.Poster.PositionPercent != 25 {
		t.Errorf("unexpected position: %d", cfg.Poster.PositionPercent)
	}
	if cfg.Poster.Quality != 85 {
		t.Errorf("unexpected quality: %d", cfg.Poster.Quality)
	}
	if cfg.Poster.Width != 640 || cfg.Poster.Height != 360 {
		t.Errorf("unexpected size: %dx%d", cfg.Poster.Width, cfg.Poster.Height)
	}
}

func TestLoadPartialFileBackfills(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	data := "base_url: ./assets/media/neon/\nposter:\n  quality: 95\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "./assets/media/neon/" {
		t.Errorf("unexpected base url: %q", cfg.BaseURL)
	}
	if cfg.Poster.Quality != 95 {
		t.Errorf("unexpected quality: %d", cfg.Poster.Quality)
	}
	if cfg.Poster.PositionPercent != 25 {
		t.Errorf("position not backfilled: %d", cfg.Poster.PositionPercent)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(":\n  - broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "./assets/media/demo/"

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}
