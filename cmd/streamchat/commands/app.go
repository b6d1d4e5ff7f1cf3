// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/streamchat/cmd/streamchat/cli"
	"github.com/bureau-foundation/streamchat/lib/chat"
)

func appCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "app",
		Summary: "Inspect application settings",
		Subcommands: []*cli.Command{
			appSettingsCommand(env),
			appRateLimitsCommand(env),
		},
	}
}

func appSettingsCommand(env *Env) *cli.Command {
	var params struct {
		Connection ConnectionParams
	}
	return &cli.Command{
		Name:    "settings",
		Summary: "Print the application settings as JSON",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("settings", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			return env.withClient(&params.Connection, func(client *chat.Client) error {
				response, err := client.GetAppSettings(ctx)
				if err != nil {
					return classify("getting app settings", err)
				}
				return cli.WriteJSON(env.Stdout, response.Data)
			})
		},
	}
}

type rateLimitsParams struct {
	cli.JSONOutput
	Connection ConnectionParams

	ServerSide bool     `flag:"server-side" desc:"only server-side limits"`
	Android    bool     `flag:"android" desc:"only Android limits"`
	IOS        bool     `flag:"ios" desc:"only iOS limits"`
	Web        bool     `flag:"web" desc:"only web limits"`
	Endpoints  []string `flag:"endpoints" desc:"restrict to these endpoint names"`
}

// rateLimitPlatforms are the top-level keys of a rate-limits response.
var rateLimitPlatforms = []string{"server_side", "android", "ios", "web"}

func appRateLimitsCommand(env *Env) *cli.Command {
	var params rateLimitsParams
	return &cli.Command{
		Name:    "rate-limits",
		Summary: "List API rate limits per platform and endpoint",
		Examples: []cli.Example{
			{Command: "streamchat app rate-limits --server-side --endpoints QueryChannels,SendMessage"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("rate-limits", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			return env.withClient(&params.Connection, func(client *chat.Client) error {
				response, err := client.GetRateLimits(ctx, chat.RateLimitsOptions{
					ServerSide: params.ServerSide,
					Android:    params.Android,
					IOS:        params.IOS,
					Web:        params.Web,
					Endpoints:  params.Endpoints,
				})
				if err != nil {
					return classify("getting rate limits", err)
				}
				if done, err := params.EmitJSON(env.Stdout, response.Data); done {
					return err
				}

				writer := tabwriter.NewWriter(env.Stdout, 2, 0, 3, ' ', 0)
				fmt.Fprintln(writer, "PLATFORM\tENDPOINT\tLIMIT\tREMAINING\tRESET")
				for _, platform := range rateLimitPlatforms {
					endpoints, ok := response.Data[platform].(map[string]any)
					if !ok {
						continue
					}
					names := make([]string, 0, len(endpoints))
					for name := range endpoints {
						names = append(names, name)
					}
					sort.Strings(names)
					for _, name := range names {
						limit, _ := endpoints[name].(map[string]any)
						fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
							platform, name, field(limit, "limit"), field(limit, "remaining"), resetTime(limit))
					}
				}
				return writer.Flush()
			})
		},
	}
}

// resetTime formats the Unix-seconds "reset" field as RFC 3339.
func resetTime(limit map[string]any) string {
	seconds, ok := limit["reset"].(float64)
	if !ok {
		return "-"
	}
	return time.Unix(int64(seconds), 0).UTC().Format(time.RFC3339)
}
