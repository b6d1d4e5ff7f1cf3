// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP plumbing shared by the chat SDK and
// the CLI.
//
// [ReadResponse] and [ErrorBody] bound response reads at
// MaxResponseSize so that a misbehaving server cannot exhaust memory.
// [NewHTTPClient] builds the pooled transport the SDK uses by default:
// a small keep-alive pool per host, transparent gzip/zstd response
// decompression, and a single fixed timeout covering connect and read.
package netutil

import (
	"io"
)

// MaxResponseSize bounds JSON API response reads: 64 MB. Chat API
// responses are far smaller; the limit only guards against runaway
// bodies.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads a response body up to MaxResponseSize bytes. Use
// instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// ErrorBody reads an error response body for use in a diagnostic
// message. Read errors are ignored; a partial body is still useful.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	return string(data)
}
