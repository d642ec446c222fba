package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("BUFWIN_COUNT", "42")
	t.Setenv("BUFWIN_EVERY", "3s")
	t.Setenv("BUFWIN_NO_TAIL", "true")

	cfg := DefaultConfig()
	ApplyEnvConfig(&cfg, map[string]bool{})

	if cfg.Count != 42 {
		t.Fatalf("expected count 42 from env, got %d", cfg.Count)
	}
	if cfg.Every != 3*time.Second {
		t.Fatalf("expected every 3s from env, got %v", cfg.Every)
	}
	if !cfg.NoTail {
		t.Fatalf("expected no_tail from env")
	}
}

func TestApplyEnvConfigRespectsFlags(t *testing.T) {
	t.Setenv("BUFWIN_COUNT", "42")

	cfg := DefaultConfig()
	cfg.Count = 7 // set via flag
	ApplyEnvConfig(&cfg, map[string]bool{"count": true})

	if cfg.Count != 7 {
		t.Fatalf("expected flag value to win over env, got %d", cfg.Count)
	}
}
