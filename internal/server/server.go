package server

import (
	"context"
	"net/http"
	"time"

	"ecshop/internal/config"
	"ecshop/internal/health"
	"ecshop/internal/middleware"

	"github.com/go-faster/errors"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// echoの生成と共通ミドルウェア
func New(cfg config.Config, lg *zap.Logger, tokens middleware.TokenParser, h Handlers, hc *health.Health) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.InjectLogger(lg))
	e.Use(middleware.RequestLogger(lg))
	e.Use(middleware.RateLimit(cfg.RateLimit))

	RegisterRoutes(e, tokens, h, hc)
	return e
}

// ctxがキャンセルされたらreadinessを落としてから止める
func Run(ctx context.Context, e *echo.Echo, cfg config.Config, lg *zap.Logger, hc *health.Health) error {
	e.Server.ReadHeaderTimeout = time.Second
	e.Server.ReadTimeout = 5 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 120 * time.Second

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		hc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := e.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		hc.Stop()
	}()

	hc.SetReady(true)
	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
