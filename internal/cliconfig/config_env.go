package cliconfig

import (
	"os"
	"strconv"
	"time"
)

// ApplyEnvConfig applies BUFWIN_* environment variables to the Config.
// Environment values override file config but are overridden by flags
// (checked via the changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("input", os.Getenv("BUFWIN_INPUT"), &cfg.Input)
	s.setString("match", os.Getenv("BUFWIN_MATCH"), &cfg.Match)
	s.setString("watch", os.Getenv("BUFWIN_WATCH"), &cfg.Watch)

	if v := os.Getenv("BUFWIN_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.setInt("count", n, &cfg.Count)
		}
	}
	if v := os.Getenv("BUFWIN_STRIDE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.setInt("stride", n, &cfg.Stride)
		}
	}
	if v := os.Getenv("BUFWIN_EVERY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 && !changed["every"] {
			cfg.Every = d
		}
	}
	if v := os.Getenv("BUFWIN_NO_TAIL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.setBool("no-tail", &b, &cfg.NoTail)
		}
	}
	if v := os.Getenv("BUFWIN_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.setBool("verbose", &b, &cfg.Verbose)
		}
	}
}
