// Command oasgraph inspects OpenAPI documents: it summarizes them, lists and
// resolves their references, reports reference cycles and serves the same
// queries over MCP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasgraph/cmd/oasgraph/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := commands.NewApp(ctx)
	if err := commands.Execute(app, os.Args[1:]); err != nil {
		commands.Writef(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
