package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teranos/kpnadi/cmd/kpnadi/commands"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := commands.NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		report(err)
		logger.Cleanup()
		os.Exit(1)
	}
	logger.Cleanup()
}

// report prints a failed command to stderr. With JSON logging the failure is
// a structured log entry so log collectors see it like any other line.
func report(err error) {
	hint := errors.FlattenHints(err)
	if logger.JSONOutput {
		logger.Logger.Errorw("Command failed", logger.FieldError, err.Error(), "hint", hint)
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	if hint != "" {
		fmt.Fprintln(os.Stderr, "Hint:", hint)
	}
}
