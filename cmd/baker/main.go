// Package main is the entry point for the baker build tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/baker/cmd/baker/commands"
	"go.trai.ch/baker/internal/app"
	"go.trai.ch/baker/internal/core/domain"
	_ "go.trai.ch/baker/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	application, _, err := graft.ExecuteFor[*app.App](ctx)
	if err != nil {
		// Logger is not available if initialization failed; write directly.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(application)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrBuildFailed) || errors.Is(err, domain.ErrLinkFailed) {
			// Compiler and linker diagnostics were already surfaced.
			return 1
		}
		// zerr prints a report with stack trace and metadata when using %+v.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
