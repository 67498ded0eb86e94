package webhook

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// SigningInput is the exact byte sequence the provider signs:
// the base64 encoding of the raw body followed by the shared secret.
// The body is used byte-for-byte as received and is never re-serialized.
func SigningInput(rawBody []byte, secret string) []byte {
	encoded := base64.StdEncoding.EncodeToString(rawBody)
	out := make([]byte, 0, len(encoded)+len(secret))
	out = append(out, encoded...)
	out = append(out, secret...)
	return out
}

// Sign returns the lowercase hex digest for rawBody.
func Sign(rawBody []byte, secret string) string {
	sum := md5.Sum(SigningInput(rawBody, secret))
	return hex.EncodeToString(sum[:])
}

// Verification is the outcome of checking a signature.
type Verification struct {
	Valid bool
	// Expected is the digest computed locally, for diagnostics only.
	Expected string
}

// Verify checks signature against the digest of rawBody in constant time.
// An empty secret or signature never verifies.
func Verify(rawBody []byte, signature, secret string) Verification {
	if secret == "" {
		return Verification{}
	}
	expected := Sign(rawBody, secret)
	provided := strings.ToLower(strings.TrimSpace(signature))
	if provided == "" {
		return Verification{Expected: expected}
	}
	valid := subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
	return Verification{Valid: valid, Expected: expected}
}
