package handler

import (
	"context"
	"net/http"

	"ecshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthService interface {
	Register(ctx context.Context, req usecase.AuthRegisterRequest) (usecase.UserView, error)
	Login(ctx context.Context, req usecase.AuthLoginRequest) (usecase.AuthLoginResponse, error)
	Refresh(ctx context.Context, req usecase.AuthRefreshRequest) (usecase.AuthRefreshResponse, error)
}

type AuthHandler struct {
	uc AuthService
}

// DIコンストラクタ
func NewAuthHandler(uc AuthService) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/register", h.register)
	e.POST("/login", h.login)
	e.POST("/refresh", h.refresh)
}

// POST /register
func (h *AuthHandler) register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// POST /login
func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /refresh
func (h *AuthHandler) refresh(c echo.Context) error {
	var req usecase.AuthRefreshRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Refresh(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
