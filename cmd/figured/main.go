// Package main starts the figure HTTP service and handles termination.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	figuredcmd "github.com/louisbranch/habbohub/internal/cmd/figured"
	entrypoint "github.com/louisbranch/habbohub/internal/platform/cmd"
)

func main() {
	cfg, err := figuredcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	entrypoint.SetupLogging(entrypoint.ServiceFigured)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := figuredcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
