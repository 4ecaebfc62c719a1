package models

import (
	"github.com/rs/zerolog"
)

const redacted = "[REDACTED]"

// EncryptedCredential is the login request body. Password holds the base64
// encoded RSA ciphertext of the password, never the plaintext.
// It lives for one login attempt and is never persisted.
type EncryptedCredential struct {
	Username string `json:"username"`
	Password string `json:"password"` //nolint:gosec // ciphertext
}

// String hides the ciphertext.
func (c EncryptedCredential) String() string {
	return "EncryptedCredential{username=" + c.Username + ", password=" + redacted + "}"
}

// MarshalZerologObject logs the username only.
func (c EncryptedCredential) MarshalZerologObject(e *zerolog.Event) {
	e.Str("username", c.Username).Str("password", redacted)
}
