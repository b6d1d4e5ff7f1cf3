// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/streamchat/cmd/streamchat/cli"
	"github.com/bureau-foundation/streamchat/lib/chat"
)

func exportCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "export",
		Summary: "Export application data",
		Subcommands: []*cli.Command{
			exportChannelsCommand(env),
		},
	}
}

func exportChannelsCommand(env *Env) *cli.Command {
	var params struct {
		cli.JSONOutput
		Connection ConnectionParams
		waitParams

		IncludeTruncated bool `flag:"include-truncated" desc:"include messages removed by truncation"`
		Wait             bool `flag:"wait" desc:"poll the export task until it finishes"`
	}
	return &cli.Command{
		Name:    "channels",
		Summary: "Start an export of channels and their messages",
		Usage:   "streamchat export channels <type:id>... [flags]",
		Examples: []cli.Example{
			{
				Description: "Export two channels and wait for the download URL",
				Command:     "streamchat export channels messaging:general team:ops --wait",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("channels", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return cli.Validation("usage: streamchat export channels <type:id>...")
			}
			channels, err := parseCIDs(args)
			if err != nil {
				return err
			}
			if params.Wait {
				if err := params.waitParams.validate(); err != nil {
					return err
				}
			}
			var options chat.Payload
			if params.IncludeTruncated {
				options = chat.Payload{"include_truncated_messages": true}
			}

			return env.withClient(&params.Connection, func(client *chat.Client) error {
				response, err := client.ExportChannels(ctx, channels, options)
				if err != nil {
					return classify("exporting channels", err)
				}
				taskID := response.TaskID()
				if taskID == "" {
					return cli.Internal("export response carried no task_id")
				}

				if !params.Wait {
					if done, err := params.EmitJSON(env.Stdout, response.Data); done {
						return err
					}
					_, err = fmt.Fprintln(env.Stdout, taskID)
					return err
				}

				logger := env.logger(params.Connection.Verbose).With("command", "export/channels", "task", taskID)
				result, err := env.waitForTask(ctx, client, taskID, params.waitParams, logger)
				if err != nil {
					return err
				}
				return env.reportTask(&params.JSONOutput, taskID, result)
			})
		},
	}
}

// parseCIDs splits "type:id" arguments into export selections.
func parseCIDs(cids []string) ([]chat.ExportChannel, error) {
	channels := make([]chat.ExportChannel, 0, len(cids))
	for _, cid := range cids {
		channelType, channelID, ok := strings.Cut(cid, ":")
		if !ok || channelType == "" || channelID == "" {
			return nil, cli.Validation("invalid channel %q: want type:id", cid)
		}
		channels = append(channels, chat.ExportChannel{Type: channelType, ID: channelID})
	}
	return channels, nil
}
