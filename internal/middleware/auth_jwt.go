package middleware

import (
	"net/http"
	"strings"

	"ecshop/internal/domain/model"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // int64
	CtxUserRoleKey = "user_role" // model.Role
)

// 署名トークンの検証だけできればよい
type TokenParser interface {
	Parse(raw string) (model.TokenSubject, error)
}

// bearerAuth用のJWT検証ミドルウェア。ACCESSトークンだけ通す
func AuthJWT(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			sub, ok := accessSubject(tokens, raw)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			setSubject(c, sub)
			return next(c)
		}
	}
}

// ログインしていれば情報を入れる。トークンが無い・壊れている場合は匿名で通す
func OptionalAuthJWT(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, ok := bearerToken(c); ok {
				if sub, ok := accessSubject(tokens, raw); ok {
					setSubject(c, sub)
				}
			}
			return next(c)
		}
	}
}

// Authorizationヘッダから Bearer トークンを抜く
func bearerToken(c echo.Context) (string, bool) {
	authz := c.Request().Header.Get(echo.HeaderAuthorization)
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}

func accessSubject(tokens TokenParser, raw string) (model.TokenSubject, bool) {
	sub, err := tokens.Parse(raw)
	if err != nil {
		return model.TokenSubject{}, false
	}
	// REFRESHをbearerに使うのは不可
	if sub.Kind != model.TokenKindAccess || sub.UserID <= 0 {
		return model.TokenSubject{}, false
	}
	return sub, true
}

func setSubject(c echo.Context, sub model.TokenSubject) {
	c.Set(CtxUserIDKey, sub.UserID)
	c.Set(CtxUserRoleKey, sub.Role)
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
