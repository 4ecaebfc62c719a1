// Package daemon wires the SSO client together from the configuration.
package daemon

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/rocketpop/rocketpop-sso/internal/client"
	"github.com/rocketpop/rocketpop-sso/internal/config"
	"github.com/rocketpop/rocketpop-sso/internal/credential"
	"github.com/rocketpop/rocketpop-sso/internal/guard"
	"github.com/rocketpop/rocketpop-sso/internal/session"
	"github.com/rocketpop/rocketpop-sso/internal/tokenstore"
	"github.com/rocketpop/rocketpop-sso/internal/web"
	"github.com/rocketpop/rocketpop-sso/internal/web/handler"
)

// Daemon holds the wired components of the client.
type Daemon struct {
	cfg *config.Config

	Tokens   tokenstore.Store
	Client   *client.Client
	Sessions *session.Store
	Guard    *guard.Guard

	webService *web.Service
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	cipher, err := NewCipher(cfg.Backend)
	if err != nil {
		return nil, err
	}

	tokens, err := tokenstore.Open(cfg.TokenStore)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open token store")
	}

	api := client.New(cfg.Backend, client.TokenSource(tokens, cfg.TokenStore.Key))

	d := &Daemon{
		cfg:      cfg,
		Tokens:   tokens,
		Client:   api,
		Sessions: session.New(cipher, api, tokens, session.WithTokenKey(cfg.TokenStore.Key)),
		Guard:    guard.New(cfg.Guard),
	}

	log.Debug().
		Str("backend", cfg.Backend.URL).
		Str("token_store", cfg.TokenStore.Backend).
		Msg("daemon wired")

	return d, nil
}

// NewCipher creates the credential cipher. A configured public key file
// replaces the embedded key.
func NewCipher(cfg config.Backend) (*credential.Cipher, error) {
	if cfg.PublicKeyFile == "" {
		return credential.NewDefault() //nolint:wrapcheck
	}

	pem, err := os.ReadFile(cfg.PublicKeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read public key file")
	}

	return credential.New(pem) //nolint:wrapcheck
}

// Initialize restores the persisted session.
func (d *Daemon) Initialize(ctx context.Context) {
	d.Sessions.Initialize(ctx)
}

// Start restores the session and serves the local console until shutdown.
func (d *Daemon) Start(ctx context.Context) error {
	d.Initialize(ctx)

	d.webService = web.New(d.cfg, handler.Deps{
		Sessions: d.Sessions,
		Guard:    d.Guard,
		Accounts: d.Client,
	})

	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// Close releases the token store.
func (d *Daemon) Close() error {
	return d.Tokens.Close() //nolint:wrapcheck
}
