package models

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleIsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.True(t, Role("ADMIN").IsAdmin())
	assert.True(t, Role("Admin").IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
	assert.False(t, RoleManager.IsAdmin())
	assert.False(t, Role("").IsAdmin())
}

func TestUserIsAdminAndClone(t *testing.T) {
	var nilUser *User

	assert.False(t, nilUser.IsAdmin())
	assert.Nil(t, nilUser.Clone())

	u := &User{Username: "root", Role: RoleAdmin}
	c := u.Clone()

	require.NotSame(t, u, c)
	assert.Equal(t, *u, *c)

	c.Role = RoleUser
	assert.True(t, u.IsAdmin())
	assert.False(t, c.IsAdmin())
}

func TestSessionState(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		want    State
		empty   bool
	}{
		{"anonymous", Session{}, StateAnonymous, true},
		{"pending", Session{Token: "t"}, StatePending, false},
		{"authenticated", Session{Token: "t", User: &User{Username: "a"}, IsAuthenticated: true}, StateAuthenticated, false},
		{"admin", Session{Token: "t", User: &User{Username: "a"}, IsAuthenticated: true, IsAdmin: true},
			StateAdminAuthenticated, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.State())
			assert.Equal(t, tt.empty, tt.session.IsEmpty())
			assert.Equal(t, tt.name, tt.session.State().String())
		})
	}

	assert.Equal(t, "unknown", State(42).String())
}

func TestSecretsAreNotLogged(t *testing.T) {
	var buf bytes.Buffer

	l := zerolog.New(&buf)
	l.Info().
		Object("session", Session{Token: "tok-123", User: &User{Username: "alice", Role: RoleUser}, IsAuthenticated: true}).
		Object("credential", EncryptedCredential{Username: "alice", Password: "cipher-456"}).
		Send()

	assert.NotContains(t, buf.String(), "tok-123")
	assert.NotContains(t, buf.String(), "cipher-456")
	assert.Contains(t, buf.String(), `"state":"authenticated"`)
	assert.NotContains(t, EncryptedCredential{Password: "cipher-456"}.String(), "cipher-456")
}

func TestAccountUserLocation(t *testing.T) {
	var u AccountUser

	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"username":"bob","location":12}`), &u))
	assert.Equal(t, json.Number("12"), u.Location)

	out, err := json.Marshal(AccountUser{Username: "bob"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"bob"}`, string(out))
}
