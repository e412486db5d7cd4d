// Package id mints the public identifiers used for users, loans, payments
// and notifications.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

const Len = 32

// NewID32 returns 32 lowercase hex characters from 16 random bytes.
func NewID32() string {
	b := make([]byte, Len/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Valid reports whether s has the NewID32 shape.
func Valid(s string) bool {
	if len(s) != Len {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
