// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds signing keys such as the chat API secret in
// memory that the Go runtime never sees.
//
// A [Key] is backed by an anonymous mmap region that is locked into RAM
// (no swap) and excluded from core dumps. The key material is only
// handed out for the duration of a signing operation: [Key.Sign]
// computes HMAC-SHA256 directly over the protected bytes, and
// [Key.With] lends the bytes to a callback such as a JWT signer.
// Close zeroes and unmaps the region.
//
// [ReadFromPath] and [FromEnv] load a key from a file, stdin, or an
// environment variable, trimming surrounding whitespace.
package secret
