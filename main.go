// ABOUTME: Entry point for the freight back-office CLI, TUI, and MCP server
// ABOUTME: Builds the cobra command tree and runs it until a signal arrives
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/freightdesk/cli"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{Version: version}
	err := cli.NewRootCommand(app).ExecuteContext(ctx)
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
