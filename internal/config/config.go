// Package config handles input from etc/main.toml and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment variables overriding single keys,
	// e.g. ROCKETPOP_SSO_BACKEND_URL.
	EnvPrefix = "ROCKETPOP_SSO"

	// EnvConfigJSON holds a JSON document merged over the file configuration.
	EnvConfigJSON = "ROCKETPOP_SSO_CONFIG_JSON"

	configFileName = "main.toml"
	appDirName     = "rocketpop-sso"
)

// Token store backends.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreKeyring  = "keyring"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMySQL    = "mysql"
)

const (
	defaultBackendTimeout = 30 * time.Second
	defaultShutDownTime   = 5
	defaultTokenKey       = "token"
	defaultTable          = "sso_tokens"
	defaultLoginPath      = "/login"
	defaultLandingPath    = "/dashboard"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var c Config

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(path, configFileName))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	if configAsJSON := os.Getenv(EnvConfigJSON); configAsJSON != "" {
		v.SetConfigType("json")

		if err := v.MergeConfig(strings.NewReader(configAsJSON)); err != nil {
			return Config{}, errors.Wrap(err, "failed to merge json config from env")
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	return c, validate(&c)
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and fill in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Backend.URL == "" {
		return errors.Wrap(ErrEmptyBackendURL, invalidErrMessage)
	}

	c.Backend.URL = strings.TrimRight(c.Backend.URL, "/")

	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = defaultBackendTimeout
	}

	if c.Guard.LoginPath == "" {
		c.Guard.LoginPath = defaultLoginPath
	}

	if c.Guard.LandingPath == "" {
		c.Guard.LandingPath = defaultLandingPath
	}

	return errors.Wrap(validateTokenStore(&c.TokenStore), invalidErrMessage)
}

func validateTokenStore(ts *TokenStore) error {
	if ts.Backend == "" {
		ts.Backend = StoreFile
	}

	if ts.Key == "" {
		ts.Key = defaultTokenKey
	}

	switch ts.Backend {
	case StoreMemory:
	case StoreKeyring:
		if ts.Service == "" {
			ts.Service = appDirName
		}
	case StoreFile, StoreSQLite:
		if ts.Path != "" {
			return nil
		}

		dir, err := os.UserConfigDir()
		if err != nil {
			return ErrTokenStorePathEmpty
		}

		name := "session.json"
		if ts.Backend == StoreSQLite {
			name = "session.db"
		}

		ts.Path = filepath.Join(dir, appDirName, name)
	case StorePostgres, StoreMySQL:
		if ts.ConnectionURI == "" {
			return ErrTokenStoreURIEmpty
		}

		if ts.Table == "" {
			ts.Table = defaultTable
		}
	default:
		return ErrUnknownTokenStore
	}

	return nil
}
