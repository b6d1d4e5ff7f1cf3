// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/streamchat/cmd/streamchat/cli"
	"github.com/bureau-foundation/streamchat/lib/chat"
)

func taskCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "task",
		Summary: "Inspect asynchronous tasks",
		Subcommands: []*cli.Command{
			taskGetCommand(env),
			taskWaitCommand(env),
		},
	}
}

func taskGetCommand(env *Env) *cli.Command {
	var params struct {
		cli.JSONOutput
		Connection ConnectionParams
	}
	return &cli.Command{
		Name:    "get",
		Summary: "Show the status of a task",
		Usage:   "streamchat task get <task-id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("get", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("usage: streamchat task get <task-id>")
			}
			return env.withClient(&params.Connection, func(client *chat.Client) error {
				response, err := client.GetTask(ctx, args[0])
				if err != nil {
					return classify("getting task", err)
				}
				if done, err := params.EmitJSON(env.Stdout, response.Data); done {
					return err
				}
				_, err = fmt.Fprintf(env.Stdout, "%s\t%s\n", args[0], response.String("status"))
				return err
			})
		},
	}
}

type waitParams struct {
	Interval time.Duration `flag:"interval" desc:"polling interval" default:"2s"`
	Timeout  time.Duration `flag:"timeout" desc:"give up after this long; zero waits forever" default:"5m"`
}

func (params waitParams) validate() error {
	if params.Interval <= 0 {
		return cli.Validation("--interval must be positive")
	}
	if params.Timeout < 0 {
		return cli.Validation("--timeout must not be negative")
	}
	return nil
}

func taskWaitCommand(env *Env) *cli.Command {
	var params struct {
		cli.JSONOutput
		Connection ConnectionParams
		waitParams
	}
	return &cli.Command{
		Name:    "wait",
		Summary: "Poll a task until it completes or fails",
		Description: `Poll a task until it reaches a terminal status.

Exits 1 when the task fails, and with a transient error when --timeout
passes first.`,
		Usage: "streamchat task wait <task-id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("wait", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("usage: streamchat task wait <task-id>")
			}
			if err := params.waitParams.validate(); err != nil {
				return err
			}
			return env.withClient(&params.Connection, func(client *chat.Client) error {
				logger := env.logger(params.Connection.Verbose).With("command", "task/wait", "task", args[0])
				response, err := env.waitForTask(ctx, client, args[0], params.waitParams, logger)
				if err != nil {
					return err
				}
				return env.reportTask(&params.JSONOutput, args[0], response)
			})
		},
	}
}

// waitForTask polls GetTask on env.Clock until the task is terminal.
func (env *Env) waitForTask(ctx context.Context, client *chat.Client, taskID string, params waitParams, logger *slog.Logger) (*chat.Response, error) {
	ticker := env.Clock.NewTicker(params.Interval)
	defer ticker.Stop()

	var deadline time.Time
	if params.Timeout > 0 {
		deadline = env.Clock.Now().Add(params.Timeout)
	}

	for {
		response, err := client.GetTask(ctx, taskID)
		if err != nil {
			return nil, classify("getting task", err)
		}
		status := response.String("status")
		if chat.TaskDone(status) {
			return response, nil
		}
		logger.Info("task not finished", "status", status)

		if !deadline.IsZero() && !env.Clock.Now().Before(deadline) {
			return nil, cli.Transient("task %s still %q after %s", taskID, status, params.Timeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.Chan():
		}
	}
}

// reportTask prints a terminal task and turns failure into exit code 1.
func (env *Env) reportTask(output *cli.JSONOutput, taskID string, response *chat.Response) error {
	status := response.String("status")
	if done, err := output.EmitJSON(env.Stdout, response.Data); done {
		if err == nil && status == chat.TaskFailed {
			return &cli.ExitError{Code: 1}
		}
		return err
	}

	if status == chat.TaskFailed {
		message := response.String("result", "error", "description")
		if message == "" {
			message = "no error description"
		}
		fmt.Fprintf(env.Stdout, "%s\tfailed\t%s\n", taskID, message)
		return &cli.ExitError{Code: 1}
	}

	_, err := fmt.Fprintf(env.Stdout, "%s\t%s\n", taskID, status)
	if url := response.String("result", "url"); url != "" {
		fmt.Fprintln(env.Stdout, url)
	}
	return err
}
