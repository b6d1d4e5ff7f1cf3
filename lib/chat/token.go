// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bureau-foundation/streamchat/lib/secret"
)

// TokenOptions sets the optional registered claims of a user token.
// Zero values omit the claim.
type TokenOptions struct {
	// Expiration becomes the "exp" claim.
	Expiration time.Time

	// IssuedAt becomes the "iat" claim. Tokens issued before a revoke
	// cutoff (see RevokeTokens) are rejected by the server only when
	// they carry iat.
	IssuedAt time.Time
}

// CreateToken returns an HS256 JWT for userID, signed with the API
// secret. The result depends only on its inputs and the secret.
func (client *Client) CreateToken(userID string, options TokenOptions) (string, error) {
	if userID == "" {
		return "", usageErrorf("user id is required to create a token")
	}

	claims := jwt.MapClaims{"user_id": userID}
	if !options.Expiration.IsZero() {
		claims["exp"] = options.Expiration.Unix()
	}
	if !options.IssuedAt.IsZero() {
		claims["iat"] = options.IssuedAt.Unix()
	}
	return signClaims(client.secret, claims)
}

// serverClaims authorize server-side calls to every endpoint.
func serverClaims() jwt.MapClaims {
	return jwt.MapClaims{"server": true}
}

// signClaims signs claims with HS256 over the protected key material.
func signClaims(key *secret.Key, claims jwt.MapClaims) (string, error) {
	if key == nil {
		return "", usageErrorf("api secret is required to sign tokens")
	}

	var signed string
	err := key.With(func(material []byte) error {
		var signErr error
		signed, signErr = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(material)
		return signErr
	})
	if err != nil {
		return "", fmt.Errorf("chat: signing token: %w", err)
	}
	return signed, nil
}
