// Package auth implements API key verification. The service uses a
// single shared key supplied at deploy time; there are no users,
// sessions, or roles.
package auth

import "crypto/subtle"

// Verifier checks caller-supplied credentials.
type Verifier interface {
	// Verify reports whether the presented credentials are acceptable.
	Verify(credentials string) bool
	// Enabled reports whether verification is active at all.
	Enabled() bool
}

// KeyVerifier verifies requests against a static API key. An empty
// key disables verification, which is how local development runs.
type KeyVerifier struct {
	key string
}

// NewKeyVerifier creates a verifier for the given API key.
func NewKeyVerifier(key string) *KeyVerifier {
	return &KeyVerifier{key: key}
}

// Enabled reports whether a key is configured.
func (v *KeyVerifier) Enabled() bool {
	return v.key != ""
}

// Verify compares the presented credentials against the configured
// key in constant time.
func (v *KeyVerifier) Verify(credentials string) bool {
	if !v.Enabled() {
		return true
	}
	if credentials == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(credentials), []byte(v.key)) == 1
}
