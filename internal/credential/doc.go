// Package credential encrypts the login password on the client so the
// plaintext never appears in a request body.
//
// The password is encrypted with RSA PKCS#1 v1.5 under the public key
// embedded in the binary and sent as standard base64. The backend holds the
// matching private key; a key mismatch is a deployment problem and shows up
// as a rejected login, not as a local error.
//
// Example usage:
//
//	c, err := credential.NewDefault()
//	cred, err := c.Encrypt("alice", "secret")
//	token, err := apiClient.Login(ctx, cred)
package credential
