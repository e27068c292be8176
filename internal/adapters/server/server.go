package server

import (
	"context"
	"errors"
	"io"
	"lightbot/internal/core/domain"
	"lightbot/internal/core/port"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

const (
	CallbackPath = "/callback"
	StatusPath   = "/esp32/command"
	HealthPath   = "/healthz"

	bodyLimit = "1M"
)

type Dispatcher interface {
	Handle(ctx context.Context, messages []domain.Message) error
}

type Config struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	echo       *echo.Echo
	webhook    port.Webhook
	dispatcher Dispatcher
	state      port.StateStore
}

func New(cfg Config, webhook port.Webhook, dispatcher Dispatcher, state port.StateStore) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	s := &Server{
		echo:       e,
		webhook:    webhook,
		dispatcher: dispatcher,
		state:      state,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: newRequestID}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogStatus:     true,
		LogLatency:    true,
		LogRequestID:  true,
		LogValuesFunc: logRequest,
	}))

	e.POST(CallbackPath, s.handleCallback, middleware.BodyLimit(bodyLimit))
	e.GET(StatusPath, s.handleStatus)
	e.GET(HealthPath, func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	log.Info().Str("address", address).Msg("http server listening")

	err := s.echo.Start(address)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("stopping http server")
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleCallback(c echo.Context) error {
	l := log.With().
		Str("requestId", c.Response().Header().Get(echo.HeaderXRequestID)).
		Logger()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		l.Warn().Err(err).Msg("failed to read webhook body")
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	signature := c.Request().Header.Get(s.webhook.SignatureHeader())
	if !s.webhook.VerifySignature(body, signature) {
		l.Warn().Err(domain.ErrInvalidSignature).Msg("rejecting webhook")
		return echo.NewHTTPError(http.StatusBadRequest, domain.ErrInvalidSignature.Error())
	}

	messages, err := s.webhook.ParseEvents(body)
	if err != nil {
		l.Warn().Err(err).Msg("rejecting webhook")
		return echo.NewHTTPError(http.StatusBadRequest, domain.ErrMalformedPayload.Error())
	}

	l.Debug().Int("messages", len(messages)).Msg("dispatching webhook")

	err = s.dispatcher.Handle(c.Request().Context(), messages)
	if err != nil {
		l.Error().Err(err).
			Bool("replyFailed", errors.Is(err, domain.ErrSendingReplyFailed)).
			Msg("webhook handled with errors")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to handle events")
	}

	return c.String(http.StatusOK, "OK")
}

func (s *Server) handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, s.state.Snapshot())
}

func newRequestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		log.Warn().Err(err).Msg("failed to generate request id")
		return ""
	}

	return id.String()
}

func logRequest(_ echo.Context, v middleware.RequestLoggerValues) error {
	log.Info().
		Str("method", v.Method).
		Str("uri", v.URI).
		Int("status", v.Status).
		Dur("latency", v.Latency).
		Str("requestId", v.RequestID).
		Msg("request")

	return nil
}
