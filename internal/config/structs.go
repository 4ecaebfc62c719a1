package config

import (
	"time"

	"github.com/rocketpop/rocketpop-sso/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode    bool // enable dev mode for development
	Title      string
	Backend    Backend
	TokenStore TokenStore
	Guard      Guard
	Webserver  Webserver
	Log        logger.Log
}

// Backend holds the settings of the SSO backend the client talks to.
type Backend struct {
	URL           string        // base url of the backend api, e.g. http://localhost:8080
	Timeout       time.Duration // timeout of a single backend call
	PublicKeyFile string        // optional file overriding the embedded public key
}

// TokenStore selects where the session token is persisted between runs.
type TokenStore struct {
	Backend       string // memory, file, keyring, sqlite, postgres or mysql
	Path          string // file or sqlite database path
	Key           string // key of the token slot
	Service       string // keyring service name
	ConnectionURI string // postgres or mysql connection uri
	Table         string // postgres or mysql table
}

// Guard holds the navigation destinations the route guard redirects to.
type Guard struct {
	LoginPath   string
	LandingPath string
}

// Webserver implement webserver settings of the local console.
type Webserver struct {
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown in seconds
	URL          string // base url for the webserver
}
