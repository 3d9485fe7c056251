// Package models defines data structures for configuration and migration records.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration shared by every migration command.
// Values come from defaults, an optional YAML file and CLI flags, in that order.
type Config struct {
	ContentDir string `yaml:"content_dir"`
	StaticDir  string `yaml:"static_dir"`
	BaseURL    string `yaml:"base_url"`
	DryRun     bool   `yaml:"dry_run"`

	// OutputDir is where wxr writes posts; empty means ContentDir.
	OutputDir string `yaml:"output_dir"`

	GistOwner   string        `yaml:"gist_owner"`
	GistAPIBase string        `yaml:"gist_api_base"`
	CacheDir    string        `yaml:"cache_dir"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`

	ImageTimeout time.Duration `yaml:"image_timeout"`
	GistTimeout  time.Duration `yaml:"gist_timeout"`

	MaxLineDelta int `yaml:"max_line_delta"`

	RedirectsFile string `yaml:"redirects_file"`
	ZolaConfig    string `yaml:"zola_config"`
}

// DefaultConfig returns the configuration the migration was originally run with.
func DefaultConfig() Config {
	return Config{
		ContentDir:    "content/blog",
		StaticDir:     "static",
		BaseURL:       "https://caricio.com",
		GistOwner:     "rafaelcaricio",
		GistAPIBase:   "https://api.github.com/gists/",
		CacheTTL:      24 * time.Hour,
		ImageTimeout:  30 * time.Second,
		GistTimeout:   10 * time.Second,
		MaxLineDelta:  15,
		RedirectsFile: "redirects.json",
		ZolaConfig:    "config.toml",
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
// Keys missing from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
