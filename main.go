package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/firefly-engineering/devtriage/cmd"
	"github.com/firefly-engineering/devtriage/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
