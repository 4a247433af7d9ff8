// # internal/config/config_test.go
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	content := `
corpus_root = "./data/verb-conjugations"
metadata_file = "info.json"
record_suffix = ".json"

[exclude]
dirs = [".git"]
files = ["*.bak"]

[watch]
debounce = "1s"
rate_limit = 1.0
burst = 2

[output]
tsv = "diagnostics.tsv"
markdown = "report.md"

[history]
path = "conjcheck.db"

[observability]
listen_addr = ":9105"

[alerts]
beep = true
`
	tmpfile, err := os.CreateTemp("", "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.CorpusRoot != "./data/verb-conjugations" {
		t.Errorf("Expected CorpusRoot ./data/verb-conjugations, got %s", cfg.CorpusRoot)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Output.TSV != "diagnostics.tsv" {
		t.Errorf("Expected TSV diagnostics.tsv, got %s", cfg.Output.TSV)
	}
	if cfg.History.Path != "conjcheck.db" {
		t.Errorf("Expected history path conjcheck.db, got %s", cfg.History.Path)
	}
	if cfg.Observe.ListenAddr != ":9105" {
		t.Errorf("Expected listen addr :9105, got %s", cfg.Observe.ListenAddr)
	}
	if !cfg.Alerts.Beep {
		t.Error("Expected beep alert enabled")
	}
}

func TestLoadDefaults(t *testing.T) {
	content := `corpus_root = "./corpus"`
	tmpfile, err := os.CreateTemp("", "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(content))
	tmpfile.Close()

	cfg, _ := Load(tmpfile.Name())
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Expected default debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.MetadataFile != "info.json" {
		t.Errorf("Expected default metadata file info.json, got %s", cfg.MetadataFile)
	}
	if cfg.RecordSuffix != ".json" {
		t.Errorf("Expected default record suffix .json, got %s", cfg.RecordSuffix)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.CorpusRoot != "." {
		t.Errorf("Expected default corpus root ., got %s", cfg.CorpusRoot)
	}
	if cfg.Watch.RateLimit != 2 || cfg.Watch.Burst != 4 {
		t.Errorf("Unexpected watch rate defaults: %+v", cfg.Watch)
	}
}

func TestLoadError(t *testing.T) {
	_, err := Load("nonexistent.toml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}
