package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketpop/rocketpop-sso/internal/models"
)

func TestCreateUser(t *testing.T) {
	srv, s := newBackend(t, http.StatusOK,
		`{"message":"User created successfully","username":"jdoe","email":"j@rocketpop.io","role":"user","id":7,"location":3}`)
	c := newTestClient(srv, "admin-jwt")

	res, err := c.CreateUser(context.Background(), models.AccountUser{
		Username: "jdoe",
		Password: "secret",
		Email:    "j@rocketpop.io",
		Role:     models.RoleUser,
		Location: json.Number("3"),
	})
	require.NoError(t, err)

	assert.Equal(t, "User created successfully", res.Message)
	assert.Equal(t, 7, res.ID)
	assert.Equal(t, json.Number("3"), res.Location)
	assert.Equal(t, "/admin/user/create", s.path)
	assert.Equal(t, "Bearer admin-jwt", s.authorization)
	assert.Equal(t, "jdoe", s.body["username"])
	assert.Equal(t, "secret", s.body["password"])
}

func TestCreateAdmin(t *testing.T) {
	srv, s := newBackend(t, http.StatusOK, `{"message":"Admin user created successfully","username":"boss","role":"admin"}`)

	res, err := newTestClient(srv, "admin-jwt").CreateAdmin(context.Background(), models.AccountUser{
		Username: "boss",
		Password: "secret",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	assert.Equal(t, "/admin/adminuser/create", s.path)
	assert.True(t, res.Role.IsAdmin())
}

func TestAccountValidation(t *testing.T) {
	srv, s := newBackend(t, http.StatusOK, `{}`)
	c := newTestClient(srv, "admin-jwt")
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"create without password", func() error {
			_, err := c.CreateUser(ctx, models.AccountUser{Username: "jdoe"})
			return err
		}},
		{"create without username", func() error {
			_, err := c.CreateUser(ctx, models.AccountUser{Password: "secret"})
			return err
		}},
		{"edit with bad email", func() error {
			_, err := c.EditUser(ctx, models.AccountUser{Username: "jdoe", Email: "not-an-email"})
			return err
		}},
		{"edit with unknown role", func() error {
			_, err := c.EditUser(ctx, models.AccountUser{Username: "jdoe", Role: "root"})
			return err
		}},
		{"delete without username", func() error {
			_, err := c.DeleteUser(ctx, " ")
			return err
		}},
		{"get without username", func() error {
			_, err := c.GetUser(ctx, "")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), ErrInvalidRequest)
		})
	}

	assert.Empty(t, s.path, "invalid requests must not be sent")
}

func TestEditUser(t *testing.T) {
	srv, s := newBackend(t, http.StatusOK, `{"message":"User updated successfully","username":"jdoe","role":"manager"}`)

	res, err := newTestClient(srv, "admin-jwt").EditUser(context.Background(), models.AccountUser{
		Username: "jdoe",
		Role:     models.RoleManager,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, s.method)
	assert.Equal(t, "/admin/user/edit", s.path)
	assert.Equal(t, models.RoleManager, res.Role)
	assert.NotContains(t, s.body, "password", "empty password is omitted")
}

func TestDeleteUser(t *testing.T) {
	srv, s := newBackend(t, http.StatusOK, `{"message":"User deleted successfully","username":"j doe"}`)

	msg, err := newTestClient(srv, "admin-jwt").DeleteUser(context.Background(), "j doe")
	require.NoError(t, err)

	assert.Equal(t, "User deleted successfully", msg)
	assert.Equal(t, http.MethodPost, s.method)
	assert.Equal(t, "/admin/user/delete/j doe", s.path)
}

func TestListUsers(t *testing.T) {
	srv, s := newBackend(t, http.StatusOK,
		`[{"id":1,"username":"admin1","role":"admin","location":1},{"id":2,"username":"jdoe","role":"user","location":2}]`)
	c := newTestClient(srv, "admin-jwt")

	users, err := c.ListUsers(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "jdoe", users[1].Username)
	assert.Empty(t, s.query)

	_, err = c.ListUsers(context.Background(), "jd")
	require.NoError(t, err)
	assert.Equal(t, "username=jd", s.query)
}

func TestGetUser(t *testing.T) {
	srv, s := newBackend(t, http.StatusOK, `{"id":2,"username":"jdoe","email":"j@rocketpop.io","role":"user","location":2}`)

	user, err := newTestClient(srv, "admin-jwt").GetUser(context.Background(), "jdoe")
	require.NoError(t, err)

	assert.Equal(t, 2, user.ID)
	assert.Equal(t, "/admin/user/get/jdoe", s.path)
}

func TestAdminStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"401 on admin endpoint", http.StatusUnauthorized, ErrAuthorization},
		{"403 on admin endpoint", http.StatusForbidden, ErrAuthorization},
		{"404 on admin endpoint", http.StatusNotFound, ErrUnexpectedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newBackend(t, tt.status, `{"error":"Unauthorized - Admin access required"}`)

			_, err := newTestClient(srv, "user-jwt").ListUsers(context.Background(), "")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, "Unauthorized - Admin access required", Message(err))
		})
	}
}
