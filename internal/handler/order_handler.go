package handler

import (
	"context"
	"net/http"

	"ecshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderService interface {
	Create(ctx context.Context, userID int64, in usecase.CreateOrderInput) (usecase.OrderView, error)
	Cancel(ctx context.Context, userID int64, orderID int64) (usecase.OrderView, error)
	ListMine(ctx context.Context, userID int64, page int, limit int) (usecase.Page[usecase.OrderView], error)
	GetMine(ctx context.Context, userID int64, orderID int64) (usecase.OrderView, error)
}

type OrderHandler struct {
	uc OrderService
}

func NewOrderHandler(uc OrderService) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// authは認証済みの /orders 用、userは /user グループ
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc, user *echo.Group) {
	e.GET("/orders", h.list, auth)

	user.GET("/orders", h.list)
	user.POST("/orders", h.create)
	user.GET("/orders/:id", h.detail)
	user.PUT("/orders/:id/cancel", h.cancel)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req usecase.CreateOrderInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	page, err := queryInt(c, "page", 1)
	if err != nil {
		return badRequest(c, "invalid page")
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return badRequest(c, "invalid limit")
	}

	out, err := h.uc.ListMine(c.Request().Context(), userID, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.GetMine(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.Cancel(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
