// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ScanPaths []string      `toml:"scan_paths"`
	Exclude   Exclude       `toml:"exclude"`
	Watch     Watch         `toml:"watch"`
	Output    Output        `toml:"output"`
	History   History       `toml:"history"`
	Observe   Observability `toml:"observability"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	// RelintsPerSecond bounds how often change bursts trigger a re-lint.
	RelintsPerSecond float64 `toml:"relints_per_second"`
}

type Output struct {
	SARIF string `toml:"sarif"`
}

type History struct {
	Path string `toml:"path"`
}

type Observability struct {
	Listen       string `toml:"listen"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
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

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.RelintsPerSecond == 0 {
		cfg.Watch.RelintsPerSecond = 2
	}
	if len(cfg.ScanPaths) == 0 {
		cfg.ScanPaths = []string{"."}
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{"node_modules", ".git", "dist", "build"}
	}
}
