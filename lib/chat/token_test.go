// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func parseToken(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(testAPISecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		t.Fatalf("parsing token: %v", err)
	}
	return parsed.Claims.(jwt.MapClaims)
}

func TestCreateToken(t *testing.T) {
	client, err := NewClient(Config{APIKey: testAPIKey, APISecret: testAPISecret})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	t.Run("user only", func(t *testing.T) {
		token, err := client.CreateToken("alice", TokenOptions{})
		if err != nil {
			t.Fatalf("CreateToken: %v", err)
		}
		claims := parseToken(t, token)
		if len(claims) != 1 || claims["user_id"] != "alice" {
			t.Errorf("claims = %v, want only user_id=alice", claims)
		}
	})

	t.Run("expiration and issued at", func(t *testing.T) {
		issued := time.Now().Add(-time.Minute).Truncate(time.Second)
		expires := time.Now().Add(time.Hour).Truncate(time.Second)
		token, err := client.CreateToken("bob", TokenOptions{Expiration: expires, IssuedAt: issued})
		if err != nil {
			t.Fatalf("CreateToken: %v", err)
		}
		claims := parseToken(t, token)
		exp, err := claims.GetExpirationTime()
		if err != nil || exp == nil || !exp.Time.Equal(expires) {
			t.Errorf("exp = %v (%v), want %v", exp, err, expires)
		}
		iat, err := claims.GetIssuedAt()
		if err != nil || iat == nil || !iat.Time.Equal(issued) {
			t.Errorf("iat = %v (%v), want %v", iat, err, issued)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		first, _ := client.CreateToken("carol", TokenOptions{})
		second, _ := client.CreateToken("carol", TokenOptions{})
		if first != second {
			t.Errorf("tokens differ: %s vs %s", first, second)
		}
	})

	t.Run("empty user", func(t *testing.T) {
		_, err := client.CreateToken("", TokenOptions{})
		requireUsageError(t, err)
	})

	t.Run("closed client", func(t *testing.T) {
		closed, err := NewClient(Config{APIKey: testAPIKey, APISecret: testAPISecret})
		if err != nil {
			t.Fatalf("NewClient: %v", err)
		}
		closed.Close()
		if _, err := closed.CreateToken("dave", TokenOptions{}); err == nil {
			t.Error("expected error after Close")
		}
	})
}
