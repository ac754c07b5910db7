package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ContextLimits overrides the preview size and result cap of one search context.
type ContextLimits struct {
	Preview int `yaml:"preview"`
	Limit   int `yaml:"limit"`
}

// SearchConfig tunes the fuzzy matcher.
type SearchConfig struct {
	Threshold      float64                  `yaml:"threshold"`
	Distance       int                      `yaml:"distance"`
	IgnoreLocation bool                     `yaml:"ignore_location,omitempty"`
	Contexts       map[string]ContextLimits `yaml:"contexts,omitempty"`
}

// HistoryConfig locates the practice history file.
type HistoryConfig struct {
	Path string `yaml:"path"`
	Max  int    `yaml:"max"`
}

// Config is the in-memory representation of ~/.patterns/patterns.yaml.
type Config struct {
	// CatalogPath replaces the built-in catalog when set.
	CatalogPath string        `yaml:"catalog_path,omitempty"`
	TopicsDir   string        `yaml:"topics_dir"`
	Excludes    []string      `yaml:"excludes,omitempty"`
	Search      SearchConfig  `yaml:"search"`
	History     HistoryConfig `yaml:"history"`
}

// Environment variables that override config file values.
const (
	EnvThreshold   = "PATTERNS_SEARCH_THRESHOLD"
	EnvHistoryPath = "PATTERNS_HISTORY_PATH"
	EnvTopicsDir   = "PATTERNS_TOPICS_DIR"
)

// PatternsDir returns the absolute path to ~/.patterns/.
func PatternsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".patterns"), nil
}

// ConfigPath returns the absolute path to ~/.patterns/patterns.yaml.
func ConfigPath() (string, error) {
	dir, err := PatternsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "patterns.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() (*Config, error) {
	dir, err := PatternsDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		TopicsDir: filepath.Join(dir, "topics"),
		Excludes: []string{
			".DS_Store",
			"Thumbs.db",
			"*.tmp",
			"*.bak",
			"*~",
		},
		Search: SearchConfig{
			Threshold: 0.35,
			Distance:  100,
			Contexts: map[string]ContextLimits{
				"full":    {Preview: 6, Limit: 8},
				"compact": {Preview: 4, Limit: 5},
				"header":  {Preview: 0, Limit: 5},
			},
		},
		History: HistoryConfig{
			Path: filepath.Join(dir, "history.json"),
			Max:  20,
		},
	}, nil
}

// Load reads ~/.patterns/patterns.yaml over the defaults and applies
// environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	for _, p := range []*string{&cfg.CatalogPath, &cfg.TopicsDir, &cfg.History.Path} {
		if *p, err = ExpandPath(*p); err != nil {
			return nil, err
		}
	}
	if cfg.History.Max <= 0 {
		cfg.History.Max = 20
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	v, err := GetConfigValue(EnvThreshold)
	if err != nil {
		return err
	}
	if v != "" {
		th, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvThreshold, v, err)
		}
		cfg.Search.Threshold = th
	}
	if v, err = GetConfigValue(EnvHistoryPath); err != nil {
		return err
	} else if v != "" {
		cfg.History.Path = v
	}
	if v, err = GetConfigValue(EnvTopicsDir); err != nil {
		return err
	} else if v != "" {
		cfg.TopicsDir = v
	}
	return nil
}

// Save marshals cfg and writes it to ~/.patterns/patterns.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// Limits returns the configured preview and result limits for a search
// context, falling back to def for anything unset.
func (c *Config) Limits(name string, defPreview, defLimit int) (int, int) {
	l, ok := c.Search.Contexts[name]
	if !ok {
		return defPreview, defLimit
	}
	preview, limit := l.Preview, l.Limit
	if preview < 0 {
		preview = defPreview
	}
	if limit <= 0 {
		limit = defLimit
	}
	return preview, limit
}
