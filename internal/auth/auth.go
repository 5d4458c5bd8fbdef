// Package auth implements the shared-password login and the opaque
// bearer token it issues.
//
// The token is a base64 encoded JSON payload carrying an authenticated
// flag and an expiry in epoch milliseconds. It is an authentication
// convenience for a single-user deployment, not a signed credential.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// DefaultValidity is how long an issued token stays valid.
const DefaultValidity = 24 * time.Hour

// Payload is the decoded content of a bearer token.
type Payload struct {
	Authenticated bool  `json:"authenticated"`
	Exp           int64 `json:"exp"` // expiry in epoch milliseconds
}

// NewToken issues a token that expires after the given validity.
func NewToken(validity time.Duration) string {
	payload, _ := json.Marshal(Payload{
		Authenticated: true,
		Exp:           time.Now().Add(validity).UnixMilli(),
	})

	return base64.StdEncoding.EncodeToString(payload)
}

// VerifyToken reports whether a token is authenticated and unexpired.
func VerifyToken(token string) bool {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return false
	}

	var payload Payload
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return false
	}

	return payload.Authenticated && payload.Exp > time.Now().UnixMilli()
}

// VerifyHeader checks an Authorization header value for a valid
// bearer token.
func VerifyHeader(header string) bool {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}

	return VerifyToken(token)
}
