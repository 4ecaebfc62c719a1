package credential

import "errors"

var (
	// ErrKeyFormat is returned when the public key material can not be parsed as an RSA public key.
	ErrKeyFormat = errors.New("invalid public key format")

	// ErrEncryption is returned when the RSA primitive rejects the password,
	// for example when it is longer than the key allows.
	ErrEncryption = errors.New("password encryption failed")
)
