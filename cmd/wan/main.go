package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"wan/internal/cli/command"
	"wan/pkg/utils/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	status := command.New().Run(ctx, os.Args)

	_ = logger.Sync()
	stop()
	os.Exit(status)
}
