package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrEmptyBackendURL error if config backend.url is empty.
	ErrEmptyBackendURL = errors.New("config backend.url can not be empty")

	// ErrUnknownTokenStore error if config tokenstore.backend names no known backend.
	ErrUnknownTokenStore = errors.New("config tokenstore.backend is unknown")

	// ErrTokenStorePathEmpty error if a file based token store has no path.
	ErrTokenStorePathEmpty = errors.New("config tokenstore.path can not be empty for this backend")

	// ErrTokenStoreURIEmpty error if a sql token store has no connection uri.
	ErrTokenStoreURIEmpty = errors.New("config tokenstore.connectionuri can not be empty for this backend")
)
