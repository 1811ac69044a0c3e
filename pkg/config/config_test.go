package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileWritesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("default config file was not written")
	}
	if cfg.Model != "phi3:instruct" {
		t.Errorf("default model = %q", cfg.Model)
	}
	if cfg.MaxDepth != 2 || cfg.MaxBreadth != 2 || cfg.Rounds != 3 {
		t.Errorf("default search params = depth %d breadth %d rounds %d",
			cfg.MaxDepth, cfg.MaxBreadth, cfg.Rounds)
	}
	if len(cfg.ProKnowledge) == 0 || len(cfg.ConKnowledge) == 0 {
		t.Error("default knowledge bases are empty")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	partial := `{"model": "llama3:8b", "rounds": 5}`
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Model != "llama3:8b" {
		t.Errorf("Model = %q, want override", cfg.Model)
	}
	if cfg.Rounds != 5 {
		t.Errorf("Rounds = %d, want override", cfg.Rounds)
	}
	if cfg.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want default 2", cfg.MaxDepth)
	}
	if cfg.Topic == "" {
		t.Error("Topic default was lost")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted invalid JSON")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"empty base url", func(c *Config) { c.APIBaseURL = "" }, "api_base_url"},
		{"empty model", func(c *Config) { c.Model = "" }, "model"},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, "max_depth"},
		{"zero breadth", func(c *Config) { c.MaxBreadth = 0 }, "max_breadth"},
		{"zero rounds", func(c *Config) { c.Rounds = 0 }, "rounds"},
		{"empty knowledge", func(c *Config) { c.ProKnowledge = nil }, "knowledge"},
		{"sample too large", func(c *Config) { c.SampleSize = 99 }, "sample_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Topic = "custom topic"
	cfg.Seed = 42
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Topic != "custom topic" {
		t.Errorf("Topic = %q after round trip", loaded.Topic)
	}
	if loaded.Seed != 42 {
		t.Errorf("Seed = %d after round trip", loaded.Seed)
	}
}
