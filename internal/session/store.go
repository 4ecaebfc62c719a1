// Package session owns the client session: the token, the authenticated user and the
// flags derived from it.
//
// Store is the only writer of the session. Every Login, Logout and Initialize starts
// a new generation. Backend answers arriving for an older generation are dropped, so
// the last issued action always wins.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rocketpop/rocketpop-sso/internal/client"
	"github.com/rocketpop/rocketpop-sso/internal/models"
	"github.com/rocketpop/rocketpop-sso/internal/token"
	"github.com/rocketpop/rocketpop-sso/internal/tokenstore"
)

const (
	// DefaultTokenKey is the slot the token is persisted under.
	DefaultTokenKey = "token"

	msgLoginFailed     = "Login failed"
	msgLoginSuperseded = "Login superseded by a newer attempt"
)

var (
	// ErrSuperseded is returned when a newer action replaced the session while a call was in flight.
	ErrSuperseded = errors.New("session superseded")

	// ErrTokenExpired is returned when the token expired according to its own claims.
	ErrTokenExpired = errors.New("session token expired")

	// ErrPanic wraps a panic raised by the cipher, the backend client or the token store.
	ErrPanic = errors.New("session collaborator panicked")
)

// recovered runs fn and turns a panic into an error, so no collaborator can
// unwind through a held lock.
func recovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return fn()
}

// Cipher encrypts the password before it leaves the client.
type Cipher interface {
	Encrypt(username, password string) (models.EncryptedCredential, error)
}

// AuthClient is the part of the backend client the session needs.
type AuthClient interface {
	Login(ctx context.Context, cred models.EncryptedCredential) (*client.LoginResponse, error)
	FetchSelf(ctx context.Context) (*models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) (string, error)
}

// LoginResult is the outcome of Login. Err keeps the cause of a failed attempt.
type LoginResult struct {
	Success    bool
	Message    string
	Err        error
	Superseded bool
}

// Store holds the one live session.
type Store struct {
	mu         sync.Mutex
	session    models.Session
	generation uint64

	cipher Cipher
	api    AuthClient
	tokens tokenstore.Store
	key    string
	now    func() time.Time
	log    zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTokenKey changes the slot the token is persisted under.
func WithTokenKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock replaces time.Now, used to decide token expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// New creates an anonymous session store.
func New(cipher Cipher, api AuthClient, tokens tokenstore.Store, opts ...Option) *Store {
	s := &Store{
		cipher: cipher,
		api:    api,
		tokens: tokens,
		key:    DefaultTokenKey,
		now:    time.Now,
		log:    log.Logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.session
	snap.User = s.session.User.Clone()

	return snap
}

// Initialize restores the persisted token and validates it.
// Every failure, reading the token store included, resolves to an anonymous session.
func (s *Store) Initialize(ctx context.Context) {
	var persisted string

	err := recovered(func() (err error) {
		persisted, err = s.tokens.Get(s.key)
		return err
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("can't read persisted session token, starting anonymous")
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation

	if persisted == "" {
		s.commitLocked(models.Session{}, "initialize")
		s.mu.Unlock()

		return
	}

	s.commitLocked(models.Session{Token: persisted}, "initialize")
	s.mu.Unlock()

	_ = s.validate(ctx, gen)
}

// Login encrypts the password, exchanges the credential for a token and validates it.
// It never panics and never returns an error; failures are reported in the result.
func (s *Store) Login(ctx context.Context, username, password string) LoginResult {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	logger := s.log.With().Str("username", username).Uint64("generation", gen).Logger()

	var cred models.EncryptedCredential

	err := recovered(func() (err error) {
		cred, err = s.cipher.Encrypt(username, password)
		return err
	})
	if err != nil {
		return s.loginFailed(logger, gen, fmt.Errorf("encrypt credential: %w", err))
	}

	var resp *client.LoginResponse

	err = recovered(func() (err error) {
		resp, err = s.api.Login(ctx, cred)
		return err
	})
	if err != nil {
		return s.loginFailed(logger, gen, err)
	}

	if err = s.persistLogin(gen, resp.Token); err != nil {
		if errors.Is(err, ErrSuperseded) {
			return s.loginSuperseded(logger)
		}

		loginAttempts.WithLabelValues(resultFailure).Inc()
		logger.Error().Err(err).Msg("can't persist session token")

		return LoginResult{Message: msgLoginFailed, Err: err}
	}

	if err = s.validate(ctx, gen); err != nil {
		if errors.Is(err, ErrSuperseded) {
			return s.loginSuperseded(logger)
		}

		loginAttempts.WithLabelValues(resultFailure).Inc()
		logger.Info().Err(err).Msg("login token rejected")

		return LoginResult{Message: failureMessage(err), Err: err}
	}

	loginAttempts.WithLabelValues(resultSuccess).Inc()
	logger.Info().Msg("login successful")

	return LoginResult{Success: true, Message: resp.Message}
}

// persistLogin stores the token of login generation gen and commits the pending session.
func (s *Store) persistLogin(gen uint64, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return ErrSuperseded
	}

	if err := recovered(func() error { return s.tokens.Set(s.key, raw) }); err != nil {
		s.clearLocked("persist failed")

		return fmt.Errorf("persist token: %w", err)
	}

	s.commitLocked(models.Session{Token: raw}, "login")

	return nil
}

func (s *Store) loginFailed(logger zerolog.Logger, gen uint64, err error) LoginResult {
	s.mu.Lock()

	if gen != s.generation {
		s.mu.Unlock()

		return s.loginSuperseded(logger)
	}

	s.clearLocked("login failed")
	s.mu.Unlock()

	loginAttempts.WithLabelValues(resultFailure).Inc()
	logger.Info().Err(err).Msg("login failed")

	return LoginResult{Message: failureMessage(err), Err: err}
}

func (s *Store) loginSuperseded(logger zerolog.Logger) LoginResult {
	loginAttempts.WithLabelValues(resultSuperseded).Inc()
	logger.Debug().Msg("login superseded")

	return LoginResult{Message: msgLoginSuperseded, Err: ErrSuperseded, Superseded: true}
}

func failureMessage(err error) string {
	if msg := client.Message(err); msg != "" {
		return msg
	}

	return msgLoginFailed
}

// ValidateToken checks the current token against the backend.
// Without a token it clears the session and returns false without a network call.
// Any failure logs the session out.
func (s *Store) ValidateToken(ctx context.Context) bool {
	s.mu.Lock()
	gen := s.generation

	if s.session.Token == "" {
		s.clearLocked("no token")
		s.mu.Unlock()

		return false
	}

	s.mu.Unlock()

	return s.validate(ctx, gen) == nil
}

// validate runs the validation of generation gen.
func (s *Store) validate(ctx context.Context, gen uint64) error {
	s.mu.Lock()
	current := s.session.Token
	s.mu.Unlock()

	if token.Expired(current, s.now()) {
		return s.reject(gen, ErrTokenExpired)
	}

	user, err := s.fetchSelf(ctx)
	if err != nil {
		return s.reject(gen, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return ErrSuperseded
	}

	s.commitLocked(models.Session{
		Token:           s.session.Token,
		User:            user.Clone(),
		IsAuthenticated: true,
		IsAdmin:         user.IsAdmin(),
	}, "validated")

	return nil
}

// reject logs the session of generation gen out because of cause.
func (s *Store) reject(gen uint64, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return ErrSuperseded
	}

	s.log.Info().Err(cause).Msg("session token rejected")

	s.generation++
	s.clearLocked("token rejected")

	return cause
}

// FetchSelf reloads the user of the session. Errors are returned, the session stays untouched.
func (s *Store) FetchSelf(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	user, err := s.fetchSelf(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen == s.generation && s.session.IsAuthenticated {
		s.commitLocked(models.Session{
			Token:           s.session.Token,
			User:            user.Clone(),
			IsAuthenticated: true,
			IsAdmin:         user.IsAdmin(),
		}, "refreshed")
	}

	return user.Clone(), nil
}

func (s *Store) fetchSelf(ctx context.Context) (user *models.User, err error) {
	err = recovered(func() error {
		user, err = s.api.FetchSelf(ctx)
		return err
	})

	return user, err
}

// ChangePassword changes the password of the session account and returns the backend message.
func (s *Store) ChangePassword(ctx context.Context, oldPassword, newPassword string) (string, error) {
	var msg string

	err := recovered(func() (err error) {
		msg, err = s.api.ChangePassword(ctx, oldPassword, newPassword)
		return err
	})
	if err != nil {
		s.log.Info().Err(err).Msg("password change failed")

		return "", err
	}

	s.log.Info().Msg("password changed")

	return msg, nil
}

// Logout clears the session and the persisted token. Calls in flight are dropped.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.clearLocked("logout")
}

// clearLocked resets the session and removes the persisted token. s.mu must be held.
func (s *Store) clearLocked(reason string) {
	if err := recovered(func() error { return s.tokens.Remove(s.key) }); err != nil {
		s.log.Error().Err(err).Msg("can't remove persisted session token")
	}

	s.commitLocked(models.Session{}, reason)
}

// commitLocked replaces the session. s.mu must be held.
func (s *Store) commitLocked(next models.Session, reason string) {
	prev := s.session.State()
	s.session = next

	if next.State() == prev {
		return
	}

	transitions.WithLabelValues(next.State().String()).Inc()
	s.log.Debug().
		Str("from", prev.String()).
		Object("session", next).
		Str("reason", reason).
		Msg("session transition")
}
