// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	CorpusRoot   string  `toml:"corpus_root"`
	MetadataFile string  `toml:"metadata_file"`
	RecordSuffix string  `toml:"record_suffix"`
	Exclude      Exclude `toml:"exclude"`
	Watch        Watch   `toml:"watch"`
	Output       Output  `toml:"output"`
	History      History `toml:"history"`
	Observe      Observe `toml:"observability"`
	Alerts       Alerts  `toml:"alerts"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	// Revalidations per second during sustained churn; burst lets a short
	// run of back-to-back events through untouched.
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

type Output struct {
	TSV      string `toml:"tsv"`
	Markdown string `toml:"markdown"`
}

type History struct {
	Path string `toml:"path"`
}

type Observe struct {
	ListenAddr   string `toml:"listen_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

type Alerts struct {
	Beep bool `toml:"beep"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.CorpusRoot == "" {
		c.CorpusRoot = "."
	}
	if c.MetadataFile == "" {
		c.MetadataFile = "info.json"
	}
	if c.RecordSuffix == "" {
		c.RecordSuffix = ".json"
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
	if c.Watch.RateLimit == 0 {
		c.Watch.RateLimit = 2
	}
	if c.Watch.Burst == 0 {
		c.Watch.Burst = 4
	}
}
