// Package login provides the login page of the local console.
//
// This file defines exported error values used throughout the login flow.
package login

import "errors"

var (
	// ErrInvalidFormData is returned when the submitted login form cannot be parsed
	// or fails validation.
	ErrInvalidFormData = errors.New("invalid form data")

	// ErrLoginFailed is returned when the session store reports a failure
	// without a message of its own.
	ErrLoginFailed = errors.New("login failed")
)
