package client

import (
	"fmt"

	"golang.org/x/oauth2"
)

// TokenReader reads a persisted token. tokenstore.Store implements it.
type TokenReader interface {
	Get(key string) (string, error)
}

type persistedTokenSource struct {
	reader TokenReader
	key    string
}

// TokenSource returns an oauth2.TokenSource reading the token slot key of reader
// on every request. It returns ErrNoToken for an empty slot.
func TokenSource(reader TokenReader, key string) oauth2.TokenSource {
	return persistedTokenSource{reader: reader, key: key}
}

// Token implements oauth2.TokenSource.
func (s persistedTokenSource) Token() (*oauth2.Token, error) {
	value, err := s.reader.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoToken, err)
	}

	if value == "" {
		return nil, ErrNoToken
	}

	return &oauth2.Token{AccessToken: value, TokenType: "Bearer"}, nil
}
