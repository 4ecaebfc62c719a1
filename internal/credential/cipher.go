package credential

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	_ "embed"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"io"
	"strings"

	"github.com/rocketpop/rocketpop-sso/internal/models"
)

// pkcs1v15Overhead is the minimum padding PKCS#1 v1.5 adds to a message.
const pkcs1v15Overhead = 11

// embeddedPublicKey must match the private key configured in the backend (private.key).
//
//go:embed public.pem
var embeddedPublicKey []byte

// Cipher encrypts passwords for the login request.
type Cipher struct {
	key  *rsa.PublicKey
	rand io.Reader
}

// NewDefault returns a Cipher for the embedded backend public key.
func NewDefault() (*Cipher, error) {
	return New(embeddedPublicKey)
}

// New parses the given key material and returns a Cipher for it.
//
// Accepted formats are a PEM "PUBLIC KEY" (SPKI), a PEM "RSA PUBLIC KEY" (PKCS#1)
// and the bare base64 DER string the backend keeps in its public.key property.
func New(keyMaterial []byte) (*Cipher, error) {
	key, err := parsePublicKey(keyMaterial)
	if err != nil {
		return nil, err
	}

	return &Cipher{key: key, rand: rand.Reader}, nil
}

// CiphertextLen is the length in bytes of every ciphertext produced by the Cipher.
func (c *Cipher) CiphertextLen() int {
	return c.key.Size()
}

// MaxPasswordLen is the longest password, in bytes, the key can encrypt.
func (c *Cipher) MaxPasswordLen() int {
	return c.key.Size() - pkcs1v15Overhead
}

// Encrypt returns the login credential with the password encrypted under the
// public key and encoded as standard base64.
//
// The padding is randomized, two calls with the same password return different
// ciphertexts.
func (c *Cipher) Encrypt(username, password string) (models.EncryptedCredential, error) {
	if len(password) > c.MaxPasswordLen() {
		return models.EncryptedCredential{}, fmt.Errorf(
			"%w: password is %d bytes, key allows %d", ErrEncryption, len(password), c.MaxPasswordLen(),
		)
	}

	// backend decrypts with Cipher.getInstance("RSA"), which is RSA/ECB/PKCS1Padding
	ciphertext, err := rsa.EncryptPKCS1v15(c.rand, c.key, []byte(password)) //nolint:staticcheck
	if err != nil {
		return models.EncryptedCredential{}, fmt.Errorf("%w: %w", ErrEncryption, err)
	}

	return models.EncryptedCredential{
		Username: username,
		Password: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

func parsePublicKey(keyMaterial []byte) (*rsa.PublicKey, error) {
	var (
		der     []byte
		pemType string
	)

	block, _ := pem.Decode(keyMaterial)
	if block != nil {
		der = block.Bytes
		pemType = block.Type
	} else {
		raw := strings.Join(strings.Fields(string(keyMaterial)), "")
		if raw == "" {
			return nil, fmt.Errorf("%w: empty key material", ErrKeyFormat)
		}

		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: neither PEM nor base64: %w", ErrKeyFormat, err)
		}

		der = decoded
	}

	if pemType == "RSA PUBLIC KEY" {
		key, err := x509.ParsePKCS1PublicKey(der)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrKeyFormat, err)
		}

		return key, nil
	}

	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyFormat, err)
	}

	key, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: expected an RSA key, got %T", ErrKeyFormat, pub)
	}

	return key, nil
}
