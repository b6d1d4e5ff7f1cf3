// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestVerifyWebhook(t *testing.T) {
	client, err := NewClient(Config{APIKey: testAPIKey, APISecret: testAPISecret})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	body := []byte(`{"type":"message.new","message":{"text":"hi"}}`)
	mac := hmac.New(sha256.New, []byte(testAPISecret))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	tests := []struct {
		name      string
		body      []byte
		signature string
		want      bool
	}{
		{"valid", body, signature, true},
		{"valid with whitespace", body, " " + signature + "\n", true},
		{"tampered body", []byte(`{"type":"message.new","message":{"text":"bye"}}`), signature, false},
		{"wrong signature", body, hex.EncodeToString(make([]byte, sha256.Size)), false},
		{"not hex", body, "zz-not-hex", false},
		{"empty", body, "", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := client.VerifyWebhook(test.body, test.signature); got != test.want {
				t.Errorf("VerifyWebhook = %v, want %v", got, test.want)
			}
		})
	}
}
