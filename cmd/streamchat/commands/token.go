// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/streamchat/cmd/streamchat/cli"
	"github.com/bureau-foundation/streamchat/lib/chat"
)

type tokenCreateParams struct {
	cli.JSONOutput
	Connection ConnectionParams

	ExpiresIn   time.Duration `flag:"expires-in" desc:"token lifetime; zero issues a token without expiry"`
	IssuedAtNow bool          `flag:"issued-at-now" desc:"set the iat claim to the current time"`
}

func tokenCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "token",
		Summary: "Create user tokens",
		Subcommands: []*cli.Command{
			tokenCreateCommand(env),
		},
	}
}

func tokenCreateCommand(env *Env) *cli.Command {
	var params tokenCreateParams
	return &cli.Command{
		Name:    "create",
		Summary: "Sign a client-side token for a user",
		Usage:   "streamchat token create <user-id> [flags]",
		Examples: []cli.Example{
			{Description: "Token valid for one day", Command: "streamchat token create alice --expires-in 24h"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("create", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("usage: streamchat token create <user-id>")
			}
			if params.ExpiresIn < 0 {
				return cli.Validation("--expires-in must not be negative")
			}

			client, err := env.connect(&params.Connection)
			if err != nil {
				return err
			}
			defer client.Close()

			now := env.Clock.Now()
			var options chat.TokenOptions
			if params.ExpiresIn > 0 {
				options.Expiration = now.Add(params.ExpiresIn)
			}
			if params.IssuedAtNow {
				options.IssuedAt = now
			}

			token, err := client.CreateToken(args[0], options)
			if err != nil {
				return classify("creating token", err)
			}
			result := map[string]string{"user_id": args[0], "token": token}
			if done, err := params.EmitJSON(env.Stdout, result); done {
				return err
			}
			_, err = fmt.Fprintln(env.Stdout, token)
			return err
		},
	}
}
