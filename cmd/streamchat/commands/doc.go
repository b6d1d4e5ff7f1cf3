// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the streamchat command tree.
//
// Every command that talks to the API builds its client from
// [ConnectionParams]: a profile from the file given by --config (or
// STREAMCHAT_CONFIG), or, with neither set, the SDK's own STREAM_KEY
// and STREAM_SECRET environment variables. SDK errors are mapped to
// categorized [cli.ToolError] values so that the exit code tells a bad
// argument from a missing resource or a transient failure.
package commands
