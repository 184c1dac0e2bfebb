package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/academics"
	"github.com/trezcool/shule/core/community"
	"github.com/trezcool/shule/core/payment"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/user"
)

type (
	ServerDeps struct {
		Conf         *core.Config
		Logger       core.Logger
		UserSvc      user.Service
		StudentSvc   student.Service
		AcademicsSvc academics.Service
		PaymentSvc   payment.Service
		CommunitySvc community.Service
		Validate     *validator.Validate
		Translator   ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() chan error
		ShutdownSignal() chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf
	initJWTConfig(conf)
	translator = s.deps.Translator

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/health", health)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAuthAPI(v1, jwt, s.deps)
	registerStudentAPI(v1, jwt, s.deps)
	registerAcademicsAPI(v1, jwt, s.deps)
	registerPaymentAPI(v1, jwt, s.deps)
	registerCommunityAPI(v1, jwt, s.deps)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address()); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() chan error {
	return s.errs
}

func (s *server) ShutdownSignal() chan os.Signal {
	return s.shutdown
}

// signalShutdown sends a SIGTERM down the shutdown channel when an
// unrecoverable error is caught.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"ok": true})
}
