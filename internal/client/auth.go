package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rocketpop/rocketpop-sso/internal/models"
)

// LoginResponse is the answer of POST /login.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// PasswordChange is the body of POST /user/updatepassword.
// The backend compares the old password against its hash, so both travel as entered.
type PasswordChange struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,nefield=OldPassword"`
}

// PingResponse is the answer of GET /ping.
type PingResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// messageResponse is the answer of calls reporting a message only.
type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges an encrypted credential for a session token.
func (c *Client) Login(ctx context.Context, cred models.EncryptedCredential) (*LoginResponse, error) {
	var out LoginResponse

	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/login",
		scope:  scopePublic,
		in: map[string]string{
			"username": cred.Username,
			"password": cred.Password,
		},
		out: &out,
	})
	if err != nil {
		return nil, err
	}

	if out.Token == "" {
		return nil, fmt.Errorf("%w: login answer carries no token", ErrUnexpectedResponse)
	}

	return &out, nil
}

// FetchSelf returns the account the session token belongs to.
func (c *Client) FetchSelf(ctx context.Context) (*models.User, error) {
	var out models.User

	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/user/info",
		scope:  scopeUser,
		out:    &out,
	}); err != nil {
		return nil, err
	}

	if out.Username == "" {
		return nil, fmt.Errorf("%w: user info carries no user", ErrUnexpectedResponse)
	}

	return &out, nil
}

// ChangePassword changes the password of the session account and returns the backend message.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) (string, error) {
	in := PasswordChange{OldPassword: oldPassword, NewPassword: newPassword}

	if err := c.validate.Struct(in); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	var out messageResponse

	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/user/updatepassword",
		scope:  scopeUser,
		in:     in,
		out:    &out,
	}); err != nil {
		return "", err
	}

	return out.Message, nil
}

// Ping checks that the backend is up.
func (c *Client) Ping(ctx context.Context) (*PingResponse, error) {
	var out PingResponse

	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/ping",
		scope:  scopePublic,
		out:    &out,
	}); err != nil {
		return nil, err
	}

	return &out, nil
}
