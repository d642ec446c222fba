package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Input   string `toml:"input"`
	Count   int    `toml:"count"`
	Stride  int    `toml:"stride"`
	Every   string `toml:"every"`
	Match   string `toml:"match"`
	Watch   string `toml:"watch"`
	NoTail  *bool  `toml:"no_tail"`
	Verbose *bool  `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.bufwin/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".bufwin", "config.toml")
	}
	return ""
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input", fc.Input, &cfg.Input)
	s.setString("match", fc.Match, &cfg.Match)
	s.setString("watch", fc.Watch, &cfg.Watch)
	s.setInt("count", fc.Count, &cfg.Count)
	s.setInt("stride", fc.Stride, &cfg.Stride)
	if err := s.setDuration("every", fc.Every, &cfg.Every); err != nil {
		return err
	}
	s.setBool("no-tail", fc.NoTail, &cfg.NoTail)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)
	return nil
}
