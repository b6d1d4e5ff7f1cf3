// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/streamchat/cmd/streamchat/cli"
)

type webhookVerifyParams struct {
	cli.JSONOutput
	Connection ConnectionParams

	Signature string `flag:"signature" desc:"hex X-Signature header of the delivery"`
}

func webhookCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "webhook",
		Summary: "Check webhook deliveries",
		Subcommands: []*cli.Command{
			webhookVerifyCommand(env),
		},
	}
}

func webhookVerifyCommand(env *Env) *cli.Command {
	var params webhookVerifyParams
	return &cli.Command{
		Name:    "verify",
		Summary: "Verify a webhook body against its signature",
		Description: `Verify that a webhook body was signed with the application secret.

The body is read from the named file, or from stdin when the file is
omitted or "-". Exits 1 when the signature does not match.`,
		Usage: "streamchat webhook verify --signature <hex> [file|-]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("verify", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if params.Signature == "" {
				return cli.Validation("--signature is required")
			}
			if len(args) > 1 {
				return cli.Validation("usage: streamchat webhook verify --signature <hex> [file|-]")
			}

			var body []byte
			var err error
			if len(args) == 0 || args[0] == "-" {
				body, err = io.ReadAll(env.Stdin)
			} else {
				body, err = os.ReadFile(args[0])
			}
			if err != nil {
				return cli.Validation("reading webhook body: %w", err)
			}

			client, err := env.connect(&params.Connection)
			if err != nil {
				return err
			}
			defer client.Close()

			valid := client.VerifyWebhook(body, params.Signature)
			if done, err := params.EmitJSON(env.Stdout, map[string]bool{"valid": valid}); done {
				if err == nil && !valid {
					return &cli.ExitError{Code: 1}
				}
				return err
			}
			if !valid {
				fmt.Fprintln(env.Stdout, "invalid signature")
				return &cli.ExitError{Code: 1}
			}
			_, err = fmt.Fprintln(env.Stdout, "valid signature")
			return err
		},
	}
}
