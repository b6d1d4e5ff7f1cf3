// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/streamchat/cmd/streamchat/cli"
	"github.com/bureau-foundation/streamchat/lib/version"
)

type versionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	UserAgent string `json:"user_agent"`
}

func versionCommand(env *Env) *cli.Command {
	var params struct {
		cli.JSONOutput
	}
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			info := versionInfo{
				Version:   version.Version,
				GitCommit: version.GitCommit,
				BuildTime: version.BuildTime,
				UserAgent: version.UserAgent(),
			}
			if done, err := params.EmitJSON(env.Stdout, info); done {
				return err
			}
			_, err := fmt.Fprintf(env.Stdout, "streamchat %s\n", version.Full())
			return err
		},
	}
}
