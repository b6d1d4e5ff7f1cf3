// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/streamchat/cmd/streamchat/cli"
	"github.com/bureau-foundation/streamchat/lib/chat"
)

func channelCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "channel",
		Summary: "Query, create, and post to channels",
		Subcommands: []*cli.Command{
			channelQueryCommand(env),
			channelCreateCommand(env),
			channelSendCommand(env),
		},
	}
}

type channelQueryParams struct {
	cli.JSONOutput
	Connection ConnectionParams

	Filter string `flag:"filter" desc:"filter conditions as JSON, or @file"`
	Sort   string `flag:"sort" desc:"sort as a JSON object or array, or @file"`
	Limit  int    `flag:"limit" desc:"maximum channels to return" default:"10"`
	User   string `flag:"user" desc:"query on behalf of this user"`
}

func channelQueryCommand(env *Env) *cli.Command {
	var params channelQueryParams
	return &cli.Command{
		Name:    "query",
		Summary: "List channels matching a filter",
		Examples: []cli.Example{
			{
				Description: "Newest messaging channels alice belongs to",
				Command:     `streamchat channel query --filter '{"type": "messaging", "members": {"$in": ["alice"]}}' --sort '{"created_at": -1}'`,
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("query", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			filter, sort, err := parseQueryArgs(params.Filter, params.Sort)
			if err != nil {
				return err
			}
			options := chat.Payload{"limit": params.Limit}
			if params.User != "" {
				options["user_id"] = params.User
			}

			return env.withClient(&params.Connection, func(client *chat.Client) error {
				response, err := client.QueryChannels(ctx, filter, sort, options)
				if err != nil {
					return classify("querying channels", err)
				}
				if done, err := params.EmitJSON(env.Stdout, response.Data); done {
					return err
				}

				writer := tabwriter.NewWriter(env.Stdout, 2, 0, 3, ' ', 0)
				fmt.Fprintln(writer, "CID\tMEMBERS\tNAME")
				for _, state := range objects(response, "channels") {
					channel, _ := state["channel"].(map[string]any)
					fmt.Fprintf(writer, "%s\t%s\t%s\n", field(channel, "cid"), field(channel, "member_count"), field(channel, "name"))
				}
				return writer.Flush()
			})
		},
	}
}

type channelCreateParams struct {
	cli.JSONOutput
	Connection ConnectionParams

	User    string   `flag:"user" desc:"creating user (required)"`
	Members []string `flag:"members" desc:"initial member ids"`
	Data    string   `flag:"data" desc:"custom channel data as JSON, or @file"`
}

func channelCreateCommand(env *Env) *cli.Command {
	var params channelCreateParams
	return &cli.Command{
		Name:    "create",
		Summary: "Create a channel, generating an id when none is given",
		Usage:   "streamchat channel create <type> [id] --user <user-id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("create", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return cli.Validation("usage: streamchat channel create <type> [id] --user <user-id>")
			}
			if params.User == "" {
				return cli.Validation("--user is required")
			}
			data, err := parseData(params.Data)
			if err != nil {
				return err
			}
			if len(params.Members) > 0 {
				data["members"] = params.Members
			}
			channelID := uuid.NewString()
			if len(args) == 2 {
				channelID = args[1]
			}

			return env.withClient(&params.Connection, func(client *chat.Client) error {
				channel := client.Channel(args[0], channelID, data)
				response, err := channel.Create(ctx, params.User)
				if err != nil {
					return classify("creating channel", err)
				}
				if done, err := params.EmitJSON(env.Stdout, response.Data); done {
					return err
				}
				_, err = fmt.Fprintln(env.Stdout, channel.CID())
				return err
			})
		},
	}
}

type channelSendParams struct {
	cli.JSONOutput
	Connection ConnectionParams

	User string `flag:"user" desc:"sending user (required)"`
	Text string `flag:"text" desc:"message text"`
	Data string `flag:"data" desc:"extra message fields as JSON, or @file"`
}

func channelSendCommand(env *Env) *cli.Command {
	var params channelSendParams
	return &cli.Command{
		Name:    "send",
		Summary: "Send a message to a channel",
		Usage:   "streamchat channel send <type> <id> --user <user-id> --text <text> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("send", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 2 {
				return cli.Validation("usage: streamchat channel send <type> <id> --user <user-id> --text <text>")
			}
			if params.User == "" {
				return cli.Validation("--user is required")
			}
			message, err := parseData(params.Data)
			if err != nil {
				return err
			}
			if params.Text != "" {
				message["text"] = params.Text
			}
			if len(message) == 0 {
				return cli.Validation("--text or --data is required")
			}

			return env.withClient(&params.Connection, func(client *chat.Client) error {
				response, err := client.Channel(args[0], args[1], nil).SendMessage(ctx, message, params.User, nil)
				if err != nil {
					return classify("sending message", err)
				}
				if done, err := params.EmitJSON(env.Stdout, response.Data); done {
					return err
				}
				_, err = fmt.Fprintln(env.Stdout, response.String("message", "id"))
				return err
			})
		},
	}
}
