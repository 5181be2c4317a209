package server

import (
	"context"
	"errors"
	"net/http"

	"salesnote/internal/config"
	"salesnote/internal/handler"
	"salesnote/internal/metrics"
	"salesnote/internal/middleware"
	"salesnote/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	LineItems *handler.LineItemHandler
	Orders    *handler.OrderHandler
	Addresses *handler.AddressHandler
	Metrics   *handler.MetricsHandler
}

type Server struct {
	e   *echo.Echo
	cfg config.ServerConfig
}

func New(cfg config.Config, h Handlers, rec metrics.Recorder) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Metrics(rec))

	RegisterRoutes(e, h, guards(cfg.Auth)...)

	return &Server{e: e, cfg: cfg.Server}
}

// JWT_SECRET があるときだけ業務APIに認証を掛ける
func guards(cfg config.AuthConfig) []echo.MiddlewareFunc {
	if cfg.JWTSecret == "" {
		return nil
	}
	return []echo.MiddlewareFunc{middleware.AuthJWT(cfg.JWTSecret)}
}

func (s *Server) Echo() *echo.Echo {
	return s.e
}

// 止まるまでブロックする。Shutdownによる終了はnil
func (s *Server) Start() error {
	addr := s.cfg.Addr()
	log.Info().Str("addr", addr).Msg("server started")

	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
