// Package fiber implements a zerolog based access log middleware for the console webserver.
package fiber

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rocketpop/rocketpop-sso/internal/logger"
)

// HeaderPerformance carries the handling time in seconds.
const HeaderPerformance = "X-Performance"

// Config implements fiber middleware struct.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c fiber.Ctx) bool

	// Config of the logger.
	Config logger.Log

	// Output receives the access log in addition to the configured outputs.
	//
	// Optional. Default: nil
	Output io.Writer

	// CacheControlError max-age caching on chain errors.
	CacheControlError string

	// CheckAliveURI for disabling logging of check alive http calls.
	CheckAliveURI string
}

// ConfigDefault is the default config for fiber.
var ConfigDefault = Config{ //nolint:gochecknoglobals
	CacheControlError: "max-age=0",
	CheckAliveURI:     "/checkalive",
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.CacheControlError == "" {
		cfg.CacheControlError = ConfigDefault.CacheControlError
	}

	if cfg.CheckAliveURI == "" {
		cfg.CheckAliveURI = ConfigDefault.CheckAliveURI
	}

	return cfg
}

// New creates a new fiber access logging middleware using zerolog.
func New(config ...Config) fiber.Handler {
	var (
		writers []io.Writer
		cfg     = configDefault(config...)
	)

	if cfg.Config.File.Enabled && cfg.Config.File.AccessLog != "" {
		w, err := logger.NewRollingFile(
			cfg.Config.File.Path,
			cfg.Config.File.AccessLog,
			cfg.Config.File.AccessMaxSize,
			cfg.Config.File.AccessMaxAge,
			cfg.Config.File.AccessMaxBackups,
		)
		if err != nil {
			log.Error().Err(err).Msg("access file logging disabled")
		} else {
			writers = append(writers, w)
		}
	}

	// only if console logging is enabled in general
	if cfg.Config.Console.Enabled && cfg.Config.EnableAccessLogToConsole {
		if cfg.Config.Console.UseConsoleWriter {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				NoColor:      false,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{"level"},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	if cfg.Output != nil {
		writers = append(writers, cfg.Output)
	}

	accessLogger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(zerolog.NoLevel)

	return func(c fiber.Ctx) error {
		// Don't execute middleware if Next returns true
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		start := time.Now()

		// Handle request, store err for logging
		chainErr := c.Next()
		if chainErr != nil {
			errHandler := c.App().Config().ErrorHandler
			if errHandler == nil {
				errHandler = fiber.DefaultErrorHandler
			}

			if errH := errHandler(c, chainErr); errH != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck // ok here
				// ensure also 500 has a Cache-Control
				c.Set(fiber.HeaderCacheControl, cfg.CacheControlError)
			}
		}

		elapsed := time.Since(start).Seconds()
		c.Set(HeaderPerformance, strconv.FormatFloat(elapsed, 'f', 6, 64))

		// do not log checkalive URI
		if cfg.Config.DisableCheckAlive && c.Path() == cfg.CheckAliveURI {
			return nil
		}

		// the raw request uri, fasthttp normalizes c.Path()
		uri := string(c.Request().RequestURI())

		event := accessLogger.Log().Str("IP", c.IP()).
			Int("status", c.Response().StatusCode()).
			Float64(HeaderPerformance, elapsed).
			Str("URI", uri).
			Str("method", c.Method()).
			Bytes("host", c.Request().Host()).
			Str(fiber.HeaderXRequestID, c.Get(fiber.HeaderXRequestID)).
			Str(fiber.HeaderUserAgent, c.Get(fiber.HeaderUserAgent)).
			Str(fiber.HeaderReferer, c.Get(fiber.HeaderReferer))

		if chainErr != nil {
			event.Err(chainErr)
		}

		event.Send()

		return nil
	}
}
