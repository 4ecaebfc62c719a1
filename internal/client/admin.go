package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rocketpop/rocketpop-sso/internal/models"
)

// AccountResult is the answer of the admin calls changing an account.
type AccountResult struct {
	Message string `json:"message"`
	models.AccountUser
}

// CreateUser creates a regular account. The password is required.
func (c *Client) CreateUser(ctx context.Context, u models.AccountUser) (*AccountResult, error) {
	return c.createAccount(ctx, "/admin/user/create", u)
}

// CreateAdmin creates an admin account. The password is required.
func (c *Client) CreateAdmin(ctx context.Context, u models.AccountUser) (*AccountResult, error) {
	return c.createAccount(ctx, "/admin/adminuser/create", u)
}

func (c *Client) createAccount(ctx context.Context, path string, u models.AccountUser) (*AccountResult, error) {
	if err := c.validate.Var(u.Password, "required"); err != nil {
		return nil, fmt.Errorf("%w: password: %w", ErrInvalidRequest, err)
	}

	return c.changeAccount(ctx, http.MethodPost, path, u)
}

// EditUser updates the account named by u.Username. Empty fields stay unchanged.
func (c *Client) EditUser(ctx context.Context, u models.AccountUser) (*AccountResult, error) {
	return c.changeAccount(ctx, http.MethodPut, "/admin/user/edit", u)
}

func (c *Client) changeAccount(ctx context.Context, method, path string, u models.AccountUser) (*AccountResult, error) {
	if err := c.validate.Struct(u); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	var out AccountResult

	if err := c.do(ctx, request{method: method, path: path, scope: scopeAdmin, in: u, out: &out}); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteUser deletes the account username and returns the backend message.
func (c *Client) DeleteUser(ctx context.Context, username string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", fmt.Errorf("%w: username can not be empty", ErrInvalidRequest)
	}

	var out messageResponse

	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/admin/user/delete/" + url.PathEscape(username),
		scope:  scopeAdmin,
		out:    &out,
	}); err != nil {
		return "", err
	}

	return out.Message, nil
}

// ListUsers lists all accounts, or the accounts matching filter when it is not empty.
func (c *Client) ListUsers(ctx context.Context, filter string) ([]models.AccountUser, error) {
	var (
		out   []models.AccountUser
		query url.Values
	)

	if filter != "" {
		query = url.Values{"username": {filter}}
	}

	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/admin/user/getall",
		query:  query,
		scope:  scopeAdmin,
		out:    &out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// GetUser returns the account username.
func (c *Client) GetUser(ctx context.Context, username string) (*models.AccountUser, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username can not be empty", ErrInvalidRequest)
	}

	var out models.AccountUser

	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/admin/user/get/" + url.PathEscape(username),
		scope:  scopeAdmin,
		out:    &out,
	}); err != nil {
		return nil, err
	}

	return &out, nil
}
