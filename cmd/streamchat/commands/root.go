// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/bureau-foundation/streamchat/cmd/streamchat/cli"
)

// Env is what commands read from and write to. Zero fields default to
// the process streams and the real clock.
type Env struct {
	Stdout io.Writer
	Stdin  io.Reader
	Clock  clockwork.Clock

	// Logger replaces the logger built by cli.NewCommandLogger.
	Logger *slog.Logger
}

func (env *Env) setDefaults() {
	if env.Stdout == nil {
		env.Stdout = os.Stdout
	}
	if env.Stdin == nil {
		env.Stdin = os.Stdin
	}
	if env.Clock == nil {
		env.Clock = clockwork.NewRealClock()
	}
}

func (env *Env) logger(verbose bool) *slog.Logger {
	if env.Logger != nil {
		return env.Logger
	}
	return cli.NewCommandLogger(verbose)
}

// Root returns the streamchat command tree.
func Root(env Env) *cli.Command {
	env.setDefaults()
	return &cli.Command{
		Name: "streamchat",
		Description: `streamchat drives a Stream Chat application from the shell.

Credentials come from a profile in the file named by --config or
STREAMCHAT_CONFIG, or from STREAM_KEY and STREAM_SECRET when no config
file is given.`,
		Subcommands: []*cli.Command{
			versionCommand(&env),
			tokenCommand(&env),
			webhookCommand(&env),
			appCommand(&env),
			channelCommand(&env),
			userCommand(&env),
			taskCommand(&env),
			exportCommand(&env),
		},
	}
}
