package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// login attempt results.
const (
	resultSuccess    = "success"
	resultFailure    = "failure"
	resultSuperseded = "superseded"
)

var (
	transitions = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "sso_session_transitions_total",
			Help: "Number of session state transitions, differentiated by the entered state.",
		},
		[]string{"state"},
	)

	loginAttempts = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "sso_login_attempts_total",
			Help: "Number of login attempts, differentiated by result.",
		},
		[]string{"result"},
	)
)
