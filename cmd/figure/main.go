// Package main runs the figure command line.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	figurecmd "github.com/louisbranch/habbohub/internal/cmd/figure"
	entrypoint "github.com/louisbranch/habbohub/internal/platform/cmd"
	"github.com/louisbranch/habbohub/internal/platform/config"
)

func main() {
	entrypoint.SetupLogging(entrypoint.ServiceFigure)

	cfg, err := figurecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Usagef("figure: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := figurecmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		var usage *figurecmd.UsageError
		if errors.As(err, &usage) {
			config.Usagef("figure: %v", err)
		}
		config.Exitf("figure: %v", err)
	}
}
