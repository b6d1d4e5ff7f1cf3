// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command streamchat is a command-line client for the Stream Chat
// server-side API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/streamchat/cmd/streamchat/cli"
	"github.com/bureau-foundation/streamchat/cmd/streamchat/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own outcome (webhook verify, task
		// wait) return an ExitError. Don't print a redundant "error:"
		// line for those.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(cli.ExitCodeFor(err))
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root(commands.Env{}).Execute(ctx, os.Args[1:])
}
