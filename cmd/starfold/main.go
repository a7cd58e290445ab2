// Command starfold analyzes and executes function sources written in
// a small Python-like dialect.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/starfold-labs/starfold/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
