// Package web provides the local console of the SSO client.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/rocketpop/rocketpop-sso/internal/config"
	fiberlogger "github.com/rocketpop/rocketpop-sso/internal/logger/adapter/fiber"
	"github.com/rocketpop/rocketpop-sso/internal/web/handler"
	"github.com/rocketpop/rocketpop-sso/internal/web/handler/admin/user"
	"github.com/rocketpop/rocketpop-sso/internal/web/handler/api"
	"github.com/rocketpop/rocketpop-sso/internal/web/handler/dashboard"
	"github.com/rocketpop/rocketpop-sso/internal/web/handler/login"
	"github.com/rocketpop/rocketpop-sso/internal/web/handler/logout"
	"github.com/rocketpop/rocketpop-sso/internal/web/handler/pages"
	authmiddleware "github.com/rocketpop/rocketpop-sso/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
)

// ErrorResponse is the json body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	s.alive.Store(true)

	go func() {
		if err := s.App.Listen(addr, fiber.ListenConfig{DisableStartupMessage: !s.cfg.DevMode}); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the console.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	// Wait interrupt or shutdown request through /shutdown
	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown stops the http server. Unless fast shutdown is set, checkalive
// fails for the configured shutdown time first.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this instance from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	s.alive.Store(false)

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether checkalive succeeds.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, deps handler.Deps) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	deps.Config = cfg

	if !deps.Valid() {
		panic(handler.ErrNilDepsFatalLogMsg)
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Immutable:      true,
			ErrorHandler:   errorHandler,
		},
	)

	// init web service
	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}

	app.Use(recoverer.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Get(CheckAlivePath, func(c fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// route guard, decides before any page handler runs
	app.Use(authmiddleware.Middleware(authmiddleware.Config{
		Guard:    deps.Guard,
		Sessions: deps.Sessions,
	}))

	// init handlers (they register their own routes)
	for _, h := range []handler.Service{
		login.New(),
		logout.New(),
		dashboard.New(),
		user.New(),
		pages.New(),
		api.New(),
	} {
		if err := h.Init(app, deps); err != nil {
			log.Fatal().Err(err).Msg("failed to init handler")
		}
	}

	return service
}

// errorHandler answers every unhandled error as json.
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
}
