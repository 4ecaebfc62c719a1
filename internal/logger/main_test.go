package logger_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketpop/rocketpop-sso/internal/logger"
)

// captureStd redirects stdout and stderr while fn runs and returns both.
func captureStd(t *testing.T, fn func()) (string, string) {
	t.Helper()

	stdout, stderr := os.Stdout, os.Stderr

	outR, outW, err := os.Pipe()
	require.NoError(t, err)

	errR, errW, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout, os.Stderr = outW, errW

	var (
		wg       sync.WaitGroup
		out, ser bytes.Buffer
	)

	wg.Add(2) //nolint:mnd

	go func() { defer wg.Done(); _, _ = io.Copy(&out, outR) }()
	go func() { defer wg.Done(); _, _ = io.Copy(&ser, errR) }()

	func() {
		defer func() { os.Stdout, os.Stderr = stdout, stderr }()

		fn()
	}()

	_ = outW.Close()
	_ = errW.Close()

	wg.Wait()

	return out.String(), ser.String()
}

func keepGlobalLogger(t *testing.T) {
	t.Helper()

	prev, level := log.Logger, zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(level)
	})
}

func consoleLog(level string, useConsoleWriter bool) logger.Log {
	return logger.Log{
		LogLevel:    level,
		AppName:     "sso",
		ServiceName: "sso-client",
		Console:     logger.Console{Enabled: true, UseConsoleWriter: useConsoleWriter},
	}
}

func TestInitJSONConsoleTagsApp(t *testing.T) {
	keepGlobalLogger(t)

	stdout, stderr := captureStd(t, func() {
		require.NoError(t, logger.Init(consoleLog("info", false)))

		log.Info().Str("user", "alice").Msg("logged in")
		log.Debug().Msg("below the level")
		log.Warn().Msg("token expires soon")
	})

	var event map[string]any

	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stdout)), &event))
	assert.Equal(t, "sso", event["app"])
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "alice", event["user"])
	assert.Equal(t, "logged in", event["message"])
	assert.NotContains(t, stdout, "below the level")

	// warn and up stay off stdout
	assert.Contains(t, stderr, "token expires soon")
	assert.NotContains(t, stdout, "token expires soon")
}

func TestInitConsoleWriterIsHumanReadable(t *testing.T) {
	keepGlobalLogger(t)

	stdout, _ := captureStd(t, func() {
		require.NoError(t, logger.Init(consoleLog("info", true)))

		log.Info().Msg("dashboard ready")
	})

	assert.Contains(t, stdout, "dashboard ready")
	assert.False(t, json.Valid([]byte(strings.TrimSpace(stdout))), stdout)
}

func TestInitTraceAddsStack(t *testing.T) {
	keepGlobalLogger(t)

	cfg := consoleLog("trace", false)
	cfg.ReportCaller = true

	_, stderr := captureStd(t, func() {
		require.NoError(t, logger.Init(cfg))

		log.Error().Err(errors.New("backend unreachable")).Msg("refresh failed")
	})

	var event map[string]any

	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stderr)), &event))
	assert.Equal(t, "backend unreachable", event["error"])
	assert.Contains(t, event, "stack")
}

func TestInitWithoutOutputsIsQuiet(t *testing.T) {
	keepGlobalLogger(t)

	stdout, stderr := captureStd(t, func() {
		require.NoError(t, logger.Init(logger.Log{AppName: "sso", ServiceName: "sso-client"}))

		log.Error().Msg("nowhere to go")
	})

	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestErrorHandlerWritesToStderr(t *testing.T) {
	_, stderr := captureStd(t, func() {
		logger.ErrorHandler(errors.New("disk full"))
	})

	assert.Contains(t, stderr, "dropped event: disk full")
}

type intake struct {
	mu     sync.Mutex
	path   string
	apiKey string
	body   string
}

func newIntake(t *testing.T, status int) (*intake, *httptest.Server) {
	t.Helper()

	in := &intake{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)

		in.mu.Lock()
		in.path = r.URL.Path
		in.apiKey = r.Header.Get("DD-API-KEY")
		in.body = string(b)
		in.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte("{}"))
	}))
	t.Cleanup(srv.Close)

	return in, srv
}

func TestInitDataDogShipsEvents(t *testing.T) {
	keepGlobalLogger(t)

	in, srv := newIntake(t, http.StatusAccepted)

	err := logger.Init(logger.Log{
		LogLevel:    "info",
		AppName:     "sso",
		ServiceName: "sso-client",
		DataDog: logger.DataDog{
			Enabled: true,
			APIKey:  "dd-key",
			URL:     srv.URL,
		},
	})
	require.NoError(t, err)

	log.Info().Msg("session established")

	in.mu.Lock()
	defer in.mu.Unlock()

	assert.Equal(t, "/api/v2/logs", in.path)
	assert.Equal(t, "dd-key", in.apiKey)
	assert.Contains(t, in.body, "session established")
	assert.Contains(t, in.body, `"service":"sso-client"`)
}

func TestInitDataDogRequiresAPIKey(t *testing.T) {
	err := logger.Init(logger.Log{
		LogLevel:    "info",
		AppName:     "sso",
		ServiceName: "sso-client",
		DataDog:     logger.DataDog{Enabled: true},
	})
	assert.ErrorIs(t, err, logger.ErrDataDogAPIKeyIsEmpty)
}

func TestDataDogWriterReportsIntakeFailure(t *testing.T) {
	_, srv := newIntake(t, http.StatusForbidden)

	w, err := logger.NewDataDogWriter(logger.DataDog{APIKey: "bad", URL: srv.URL}, "sso-client")
	require.NoError(t, err)

	n, err := w.Write([]byte(`{"message":"rejected"}`))
	require.Error(t, err)
	assert.Zero(t, n)
}
