// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the streamchat
// CLI.
//
// The central type is [Command], a named subcommand with optional
// nested [Command.Subcommands], a [pflag.FlagSet] factory, and a Run
// function. The tree is assembled by the commands package and
// dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and help output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// suggests the closest known name by Levenshtein distance (threshold:
// distance <= 3).
//
// Flags are declared as tagged struct fields and bound with
// [BindFlags]. Embedding [JSONOutput] adds --json. Arguments that carry
// filters, sorts, or custom data are parsed with [ParseJSONArg], which
// accepts JSON with comments either inline or from an @file.
//
// Commands return categorized [ToolError] values for failures the user
// can act on, and [ExitError] when they have already reported a
// non-zero outcome themselves.
package cli
