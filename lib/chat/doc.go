// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chat is a server-side client for the Stream Chat REST API.
//
// [Client] holds the API key and secret, signs every request with a
// server JWT, and exposes one method per backend endpoint: app
// settings, users, messages, moderation, channel types, devices,
// blocklists, commands, permissions, roles, exports, imports, and
// tasks. The secret never leaves the process; it lives in a
// [secret.Key] and is only used to sign tokens and verify webhooks.
//
// Resource facades compose payloads for a single resource and delegate
// to the client through the [Requester] interface:
//
//   - [Channel] is bound to a (type, id) pair. Operations that need the
//     channel URL fail with a [*UsageError] until the channel has an id;
//     Query assigns the server-generated id on first use.
//   - [Threads] queries and updates threads.
//   - [Campaign] manages one campaign.
//   - [Moderation] wraps the v2 moderation endpoints.
//   - [ChannelBatchUpdater] issues channels/batch operations.
//
// Every call returns a [*Response] holding the decoded JSON object,
// the status code, headers, and the [RateLimits] snapshot from the
// X-Ratelimit-* headers. A non-JSON body or a status of 399 or above
// returns an [*APIError]; argument problems detected before any I/O
// return a [*UsageError]. There are no retries and no caching.
// Long-running operations (exports, deletes, imports, batch updates)
// return a task id that callers poll with [Client.GetTask].
//
// Query parameters always include api_key and are encoded sorted by
// key. Filter and sort arguments of GET queries travel as a single
// JSON-encoded "payload" parameter. Sort order is significant, so
// [Sort] is an ordered list rather than a map.
package chat
