package cliconfig

import (
	"fmt"
	"regexp"
	"time"
)

// Config holds CLI configuration for bufwin.
type Config struct {
	// Input is the file to read items from; empty means stdin.
	Input string

	// Count is the window size for count-based batching.
	Count int

	// Stride enables sliding count windows when set; must be below Count.
	Stride int

	// Every enables interval-based batching when positive.
	Every time.Duration

	// Match enables predicate-based batching: a window is flushed when a
	// line matches this regular expression.
	Match string

	// Watch enables file-trigger batching: a window is flushed when the
	// given file is written.
	Watch string

	// NoTail drops a trailing partial window at end of input instead of
	// emitting it.
	NoTail bool

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Count: 10,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	modes := 0
	if c.Every > 0 {
		modes++
	}
	if c.Match != "" {
		modes++
	}
	if c.Watch != "" {
		modes++
	}
	if modes > 1 {
		return fmt.Errorf("at most one of --every, --match, --watch may be set")
	}

	if c.Count <= 0 {
		return fmt.Errorf("count must be positive")
	}
	if c.Stride < 0 {
		return fmt.Errorf("stride must not be negative")
	}
	if c.Stride > 0 && modes > 0 {
		return fmt.Errorf("stride applies to count windows only")
	}
	if c.Stride >= c.Count && c.Stride > 0 {
		return fmt.Errorf("stride must be below count (%d)", c.Count)
	}
	if c.Match != "" {
		if _, err := regexp.Compile(c.Match); err != nil {
			return fmt.Errorf("invalid match pattern: %w", err)
		}
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't
// been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration value if set and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s duration %q: %w", flag, value, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value if present and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
