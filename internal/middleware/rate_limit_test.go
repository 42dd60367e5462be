package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"ecshop/internal/config"
	"ecshop/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("burst exhausted", func(t *testing.T) {
		e := echo.New()
		e.Use(middleware.RateLimit(config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 2, Expires: time.Minute}))
		e.GET("/", ok)

		assert.Equal(t, http.StatusOK, runRequest(e, "/", "").Code)
		assert.Equal(t, http.StatusOK, runRequest(e, "/", "").Code)
		assert.Equal(t, http.StatusTooManyRequests, runRequest(e, "/", "").Code)
	})

	t.Run("disabled", func(t *testing.T) {
		e := echo.New()
		e.Use(middleware.RateLimit(config.RateLimitConfig{Enabled: false, Rate: 0.001, Burst: 1}))
		e.GET("/", ok)

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, runRequest(e, "/", "").Code)
		}
	})
}
