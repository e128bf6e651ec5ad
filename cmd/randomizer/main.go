// Package main randomizes a table dump and its chest data.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/sagashuffle/internal/platform/cmd"
	"github.com/louisbranch/sagashuffle/internal/platform/config"
	randomizertool "github.com/louisbranch/sagashuffle/internal/tools/randomizer"
)

func main() {
	cfg, err := randomizertool.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.RunWithTelemetry(ctx, cmd.ServiceRandomizer, func(ctx context.Context) error {
		return randomizertool.Run(ctx, cfg, os.Stdout)
	}); err != nil {
		config.Exitf("Error: %v", err)
	}
}
