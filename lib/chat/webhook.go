// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"crypto/hmac"
	"encoding/hex"
	"strings"
)

// VerifyWebhook reports whether signature (the X-Signature header of a
// webhook delivery) is the hex HMAC-SHA256 of body under the API
// secret. The comparison is constant time.
func (client *Client) VerifyWebhook(body []byte, signature string) bool {
	expected, err := client.secret.Sign(body)
	if err != nil {
		return false
	}
	received, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	return hmac.Equal(expected, received)
}
