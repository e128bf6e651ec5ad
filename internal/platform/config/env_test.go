package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Seed  int  `env:"SAGASHUFFLE_TEST_SEED" envDefault:"123"`
	Chest bool `env:"SAGASHUFFLE_TEST_CHESTS" envDefault:"true"`
}

type prefixedConfig struct {
	Locale string `env:"LOCALE" envDefault:"en-US"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Seed != 123 || !cfg.Chest {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("SAGASHUFFLE_TEST_SEED", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithPrefix(t *testing.T) {
	t.Setenv("SAGASHUFFLE_LOCALE", "ja-JP")

	var cfg prefixedConfig
	if err := ParseEnvWithPrefix(&cfg, "SAGASHUFFLE_"); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Locale != "ja-JP" {
		t.Fatalf("locale = %q, want ja-JP", cfg.Locale)
	}
}
