// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/streamchat/cmd/streamchat/cli"
	"github.com/bureau-foundation/streamchat/lib/chat"
)

func userCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "user",
		Summary: "Create and find users",
		Subcommands: []*cli.Command{
			userUpsertCommand(env),
			userQueryCommand(env),
		},
	}
}

type userUpsertParams struct {
	cli.JSONOutput
	Connection ConnectionParams

	Name string `flag:"name" desc:"display name"`
	Role string `flag:"role" desc:"application role, e.g. user or admin"`
	Data string `flag:"data" desc:"custom user fields as JSON, or @file"`
}

func userUpsertCommand(env *Env) *cli.Command {
	var params userUpsertParams
	return &cli.Command{
		Name:    "upsert",
		Summary: "Create a user or replace an existing one",
		Usage:   "streamchat user upsert <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("upsert", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("usage: streamchat user upsert <id>")
			}
			user, err := parseData(params.Data)
			if err != nil {
				return err
			}
			user["id"] = args[0]
			if params.Name != "" {
				user["name"] = params.Name
			}
			if params.Role != "" {
				user["role"] = params.Role
			}

			return env.withClient(&params.Connection, func(client *chat.Client) error {
				response, err := client.UpsertUser(ctx, user)
				if err != nil {
					return classify("upserting user", err)
				}
				if done, err := params.EmitJSON(env.Stdout, response.Data); done {
					return err
				}
				_, err = fmt.Fprintf(env.Stdout, "upserted %s\n", args[0])
				return err
			})
		},
	}
}

type userQueryParams struct {
	cli.JSONOutput
	Connection ConnectionParams

	Filter string `flag:"filter" desc:"filter conditions as JSON, or @file"`
	Sort   string `flag:"sort" desc:"sort as a JSON object or array, or @file"`
	Limit  int    `flag:"limit" desc:"maximum users to return" default:"30"`
}

func userQueryCommand(env *Env) *cli.Command {
	var params userQueryParams
	return &cli.Command{
		Name:    "query",
		Summary: "List users matching a filter",
		Examples: []cli.Example{
			{Command: `streamchat user query --filter '{"role": "admin"}' --sort '{"last_active": -1}'`},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("query", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			filter, sort, err := parseQueryArgs(params.Filter, params.Sort)
			if err != nil {
				return err
			}

			return env.withClient(&params.Connection, func(client *chat.Client) error {
				response, err := client.QueryUsers(ctx, filter, sort, chat.Payload{"limit": params.Limit})
				if err != nil {
					return classify("querying users", err)
				}
				if done, err := params.EmitJSON(env.Stdout, response.Data); done {
					return err
				}

				writer := tabwriter.NewWriter(env.Stdout, 2, 0, 3, ' ', 0)
				fmt.Fprintln(writer, "ID\tNAME\tROLE\tONLINE")
				for _, user := range objects(response, "users") {
					fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", field(user, "id"), field(user, "name"), field(user, "role"), field(user, "online"))
				}
				return writer.Flush()
			})
		},
	}
}
