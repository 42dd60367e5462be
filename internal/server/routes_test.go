package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecshop/internal/config"
	"ecshop/internal/domain/model"
	"ecshop/internal/handler"
	"ecshop/internal/health"
	"ecshop/internal/infra/token"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ガードより先に進まないリクエストだけ流すのでusecaseはnilでよい
func newTestServer(t *testing.T) (*echo.Echo, *token.Manager, *health.Health) {
	t.Helper()
	tokens := token.NewManager(config.JWTConfig{
		Secret:     "routes-secret",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	hc := health.New()
	h := Handlers{
		Auth:         handler.NewAuthHandler(nil),
		Catalog:      handler.NewCatalogHandler(nil),
		Product:      handler.NewProductHandler(nil),
		Rating:       handler.NewRatingHandler(nil),
		Order:        handler.NewOrderHandler(nil),
		Cart:         handler.NewCartHandler(nil),
		User:         handler.NewUserHandler(nil),
		AdminOrder:   handler.NewAdminOrderHandler(nil),
		AdminProduct: handler.NewAdminProductHandler(nil),
		AdminAudit:   handler.NewAdminAuditHandler(nil),
	}
	cfg := config.Config{RateLimit: config.RateLimitConfig{Enabled: false}}
	return New(cfg, zap.NewNop(), tokens, h, hc), tokens, hc
}

func serve(e *echo.Echo, method, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_Guards(t *testing.T) {
	e, tokens, _ := newTestServer(t)

	userAccess, _, err := tokens.Issue(5, model.RoleUser, model.TokenKindAccess)
	require.NoError(t, err)
	userRefresh, _, err := tokens.Issue(5, model.RoleUser, model.TokenKindRefresh)
	require.NoError(t, err)

	cases := []struct {
		method string
		path   string
		authz  string
		want   int
	}{
		{http.MethodGet, "/orders", "", http.StatusUnauthorized},
		{http.MethodPost, "/user/orders", "", http.StatusUnauthorized},
		{http.MethodGet, "/user/cart", "Bearer " + userRefresh, http.StatusUnauthorized},
		{http.MethodPut, "/user/profile", "", http.StatusUnauthorized},
		{http.MethodPost, "/user/ratings", "", http.StatusUnauthorized},
		{http.MethodGet, "/admin/orders", "", http.StatusUnauthorized},
		{http.MethodGet, "/admin/orders", "Bearer " + userAccess, http.StatusForbidden},
		{http.MethodPost, "/admin/products", "Bearer " + userAccess, http.StatusForbidden},
		{http.MethodDelete, "/admin/products/1", "Bearer " + userAccess, http.StatusForbidden},
		{http.MethodGet, "/admin/audit_logs", "Bearer " + userAccess, http.StatusForbidden},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := serve(e, tc.method, tc.path, tc.authz)
		assert.Equal(t, tc.want, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRoutes_Health(t *testing.T) {
	e, _, hc := newTestServer(t)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/livez", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(e, http.MethodGet, "/readyz", "").Code)

	hc.SetReady(true)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/readyz", "").Code)
}

func TestRoutes_RequestIDHeader(t *testing.T) {
	e, _, _ := newTestServer(t)
	rec := serve(e, http.MethodGet, "/livez", "")
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
