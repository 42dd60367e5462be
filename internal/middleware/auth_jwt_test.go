package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecshop/internal/config"
	"ecshop/internal/domain/model"
	"ecshop/internal/infra/token"
	"ecshop/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mwOKResponse struct {
	UserID int64      `json:"user_id"`
	Role   model.Role `json:"role"`
	Anon   bool       `json:"anon"`
}

func newTokenManager() *token.Manager {
	return token.NewManager(config.JWTConfig{
		Secret:     "mw-secret",
		Issuer:     "ecshop",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
	})
}

func mustIssue(t *testing.T, m *token.Manager, userID int64, role model.Role, kind model.TokenKind) string {
	t.Helper()
	raw, _, err := m.Issue(userID, role, kind)
	require.NoError(t, err)
	return raw
}

// contextに入った値をそのまま返す
func echoSubject(c echo.Context) error {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	role, _ := c.Get(middleware.CtxUserRoleKey).(model.Role)
	return c.JSON(http.StatusOK, mwOKResponse{UserID: userID, Role: role, Anon: !ok})
}

func runRequest(e *echo.Echo, path string, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT(t *testing.T) {
	tokens := newTokenManager()
	e := echo.New()
	e.GET("/me", echoSubject, middleware.AuthJWT(tokens))
	e.GET("/admin", echoSubject, middleware.AuthJWT(tokens), middleware.AdminRoleGuard())

	access := mustIssue(t, tokens, 7, model.RoleUser, model.TokenKindAccess)
	refresh := mustIssue(t, tokens, 7, model.RoleUser, model.TokenKindRefresh)
	adminAccess := mustIssue(t, tokens, 1, model.RoleAdmin, model.TokenKindAccess)

	t.Run("access token ok", func(t *testing.T) {
		rec := runRequest(e, "/me", "Bearer "+access)
		require.Equal(t, http.StatusOK, rec.Code)

		var body mwOKResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, int64(7), body.UserID)
		assert.Equal(t, model.RoleUser, body.Role)
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic " + access},
		{"empty token", "Bearer "},
		{"garbage", "Bearer abc.def.ghi"},
		{"refresh token", "Bearer " + refresh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runRequest(e, "/me", tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		})
	}

	t.Run("admin guard", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, runRequest(e, "/admin", "Bearer "+access).Code)
		assert.Equal(t, http.StatusOK, runRequest(e, "/admin", "Bearer "+adminAccess).Code)
	})
}

func TestOptionalAuthJWT(t *testing.T) {
	tokens := newTokenManager()
	e := echo.New()
	e.GET("/products/1", echoSubject, middleware.OptionalAuthJWT(tokens))

	access := mustIssue(t, tokens, 9, model.RoleUser, model.TokenKindAccess)
	refresh := mustIssue(t, tokens, 9, model.RoleUser, model.TokenKindRefresh)

	decode := func(rec *httptest.ResponseRecorder) mwOKResponse {
		var body mwOKResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		return body
	}

	rec := runRequest(e, "/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode(rec).Anon)

	rec = runRequest(e, "/products/1", "Bearer "+access)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), decode(rec).UserID)

	// 不正なトークンでも公開エンドポイントは見える
	rec = runRequest(e, "/products/1", "Bearer "+refresh)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode(rec).Anon)
}

func TestAdminRoleGuard_NoRole(t *testing.T) {
	e := echo.New()
	e.GET("/admin", echoSubject, middleware.AdminRoleGuard())

	rec := runRequest(e, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	withRole := func(role model.Role) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				if role != "" {
					c.Set(middleware.CtxUserRoleKey, role)
				}
				return next(c)
			}
		}
	}
	e.GET("/any/:role", func(c echo.Context) error {
		h := middleware.RequireRole(model.RoleUser, model.RoleAdmin)(ok)
		return withRole(model.Role(c.Param("role")))(h)(c)
	})

	for _, tc := range []struct {
		role string
		want int
	}{
		{"USER", http.StatusOK},
		{"ADMIN", http.StatusOK},
		{"GUEST", http.StatusForbidden},
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/any/"+tc.role, nil))
		assert.Equal(t, tc.want, rec.Code, tc.role)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, middleware.RequireRole(model.RoleAdmin)(ok)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
