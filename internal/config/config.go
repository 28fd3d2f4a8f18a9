// Package config loads .pbxedit.yaml, the per-repository settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up in the working directory and
// its parents.
const FileName = ".pbxedit.yaml"

// Config is the parsed settings file. Zero values mean "not set"; Load
// fills in defaults afterwards.
type Config struct {
	// Project is the manifest path relative to the config file.
	Project string `yaml:"project"`
	// DiffSource is the default diff URL or path for sync.
	DiffSource string `yaml:"diff_source"`
	// CacheDir overrides where fetched diffs are stored.
	CacheDir string `yaml:"cache_dir"`
	// CacheMaxAge bounds reuse of cached diffs, e.g. "24h".
	CacheMaxAge string `yaml:"cache_max_age"`
	// Ignore holds extra ignore rules in gitignore syntax.
	Ignore []string `yaml:"ignore"`
	// Strict makes sync fail on syntax-screen issues instead of warning.
	Strict bool `yaml:"strict"`

	// Dir is the directory the config was loaded from. Not serialized.
	Dir string `yaml:"-"`
}

// Default returns the settings used when no config file exists, rooted
// at dir.
func Default(dir string) *Config {
	return &Config{Dir: dir}
}

// Load walks from dir upward looking for FileName and parses the first
// one found. When none exists, defaults rooted at dir are returned.
func Load(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for cur := abs; ; {
		path := filepath.Join(cur, FileName)
		data, err := os.ReadFile(path)
		if err == nil {
			return parse(data, cur)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return Default(abs), nil
		}
		cur = parent
	}
}

func parse(data []byte, dir string) (*Config, error) {
	cfg := Default(dir)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	cfg.Dir = dir
	if cfg.CacheMaxAge != "" {
		if _, err := time.ParseDuration(cfg.CacheMaxAge); err != nil {
			return nil, fmt.Errorf("cache_max_age: %w", err)
		}
	}
	return cfg, nil
}

// MaxAge returns the cache age bound, defaulting to 24h.
func (c *Config) MaxAge() time.Duration {
	d, err := time.ParseDuration(c.CacheMaxAge)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// ProjectPath resolves the configured manifest path against the config
// directory. It returns "" when no project is configured.
func (c *Config) ProjectPath() string {
	if c.Project == "" {
		return ""
	}
	if filepath.IsAbs(c.Project) {
		return c.Project
	}
	return filepath.Join(c.Dir, c.Project)
}

// ResolveCacheDir returns the configured cache directory, or a default
// under the user cache dir.
func (c *Config) ResolveCacheDir() (string, error) {
	if c.CacheDir != "" {
		if filepath.IsAbs(c.CacheDir) {
			return c.CacheDir, nil
		}
		return filepath.Join(c.Dir, c.CacheDir), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "pbxedit"), nil
}
