package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const CtxLoggerKey = "logger" // *zap.Logger

// request_id付きのloggerをcontextに入れる
func InjectLogger(lg *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			c.Set(CtxLoggerKey, lg.With(zap.String("request_id", rid)))
			return next(c)
		}
	}
}

// 入っていなければNop
func Logger(c echo.Context) *zap.Logger {
	if lg, ok := c.Get(CtxLoggerKey).(*zap.Logger); ok {
		return lg
	}
	return zap.NewNop()
}
