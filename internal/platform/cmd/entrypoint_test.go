package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	DumpPath string `env:"CMD_TEST_DUMP" envDefault:"dump.json"`
	Seed     string `env:"CMD_TEST_SEED" envDefault:"42"`
}

func TestParseConfigReadsEnvThenFlags(t *testing.T) {
	t.Setenv("SAGASHUFFLE_CMD_TEST_DUMP", "env.json")
	t.Setenv("SAGASHUFFLE_CMD_TEST_SEED", "7")

	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.StringVar(&cfg.DumpPath, "dump", cfg.DumpPath, "dump")
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "seed")

	if err := ParseArgs(fs, []string{"-dump", "flag.json"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.DumpPath != "flag.json" {
		t.Fatalf("expected flag value for dump, got %q", cfg.DumpPath)
	}
	if cfg.Seed != "7" {
		t.Fatalf("expected env seed, got %q", cfg.Seed)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceRandomizer, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("SAGASHUFFLE_OTEL_ENDPOINT", "")
	want := errors.New("run failed")
	err := RunWithTelemetry(context.Background(), ServiceRandomizer, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
