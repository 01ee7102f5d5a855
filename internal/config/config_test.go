package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SearchURL == "" {
		t.Error("default SearchURL is empty")
	}

	if cfg.RequestTimeout <= 0 {
		t.Errorf("RequestTimeout = %d, want > 0", cfg.RequestTimeout)
	}

	if cfg.Markdown.Style != "dark" {
		t.Errorf("Markdown.Style = %s, want dark", cfg.Markdown.Style)
	}

	if len(cfg.AllowedOrigins) != 0 {
		t.Error("default AllowedOrigins should be empty (allow all)")
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Missing file falls back to defaults
	if cfg.SearchURL != DefaultConfig().SearchURL {
		t.Errorf("SearchURL = %s, want default", cfg.SearchURL)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cfg := DefaultConfig()
	cfg.SearchURL = "http://example.test/search"
	cfg.CopyToClipboard = true
	cfg.AllowedOrigins = []string{"host-panel"}

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.SearchURL != cfg.SearchURL {
		t.Errorf("SearchURL = %s, want %s", loaded.SearchURL, cfg.SearchURL)
	}
	if !loaded.CopyToClipboard {
		t.Error("CopyToClipboard not persisted")
	}
	if len(loaded.AllowedOrigins) != 1 || loaded.AllowedOrigins[0] != "host-panel" {
		t.Errorf("AllowedOrigins = %v", loaded.AllowedOrigins)
	}
}

func TestLoadConfig_Corrupt(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	dir := filepath.Join(tmpDir, ".sarcv2")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("expected error for corrupt config")
	}

	// Corrupt config still yields usable defaults
	if cfg.SearchURL != DefaultConfig().SearchURL {
		t.Errorf("SearchURL = %s, want default", cfg.SearchURL)
	}
}

func TestGetConversationPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	path, err := GetConversationPath()
	if err != nil {
		t.Fatalf("GetConversationPath failed: %v", err)
	}

	if filepath.Base(path) != "conversation.json" {
		t.Errorf("path = %s, want conversation.json basename", path)
	}
}

func TestConfigRoundTripJSON(t *testing.T) {
	cfg := DefaultConfig()
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Config
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.SearchURL != cfg.SearchURL || decoded.RequestTimeout != cfg.RequestTimeout {
		t.Error("config did not round-trip")
	}
}
