package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"folderlist/internal/cli"
	"folderlist/internal/config"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "develop"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(cfg, Version).ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
