package models

import (
	"github.com/rs/zerolog"
)

// State is the position of a session in the authentication state machine.
type State int

const (
	// StateAnonymous has no token.
	StateAnonymous State = iota
	// StatePending holds a token that was not validated yet.
	StatePending
	// StateAuthenticated holds a validated token of a non-admin user.
	StateAuthenticated
	// StateAdminAuthenticated holds a validated token of an admin user.
	StateAdminAuthenticated
)

// String returns a string representation of the State.
func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StatePending:
		return "pending"
	case StateAuthenticated:
		return "authenticated"
	case StateAdminAuthenticated:
		return "admin"
	default:
		return "unknown"
	}
}

// Session is an immutable snapshot of the client session.
//
// IsAdmin implies IsAuthenticated, and a non-nil User implies IsAuthenticated.
// The session store is the only writer; everybody else works on copies.
type Session struct {
	Token           string
	User            *User
	IsAuthenticated bool
	IsAdmin         bool
}

// State derives the state machine position from the snapshot.
func (s Session) State() State {
	switch {
	case s.IsAdmin:
		return StateAdminAuthenticated
	case s.IsAuthenticated:
		return StateAuthenticated
	case s.Token != "":
		return StatePending
	default:
		return StateAnonymous
	}
}

// IsEmpty reports whether the session is the anonymous default.
func (s Session) IsEmpty() bool {
	return s.Token == "" && s.User == nil && !s.IsAuthenticated && !s.IsAdmin
}

// MarshalZerologObject logs the session without its token.
func (s Session) MarshalZerologObject(e *zerolog.Event) {
	e.Str("state", s.State().String())

	if s.User != nil {
		e.Str("username", s.User.Username).Str("role", string(s.User.Role))
	}
}
