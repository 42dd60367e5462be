package handler

import (
	"context"
	"net/http"

	"ecshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type RatingService interface {
	ListByProduct(ctx context.Context, productID int64) ([]usecase.RatingView, error)
	Create(ctx context.Context, userID int64, in usecase.CreateRatingInput) (usecase.RatingView, error)
	Respond(ctx context.Context, userID int64, ratingID int64, in usecase.CreateRatingResponseInput) (usecase.RatingResponseView, error)
}

type RatingHandler struct {
	uc RatingService
}

func NewRatingHandler(uc RatingService) *RatingHandler {
	return &RatingHandler{uc: uc}
}

// 一覧は公開、投稿は /user 配下（認証済みグループ）
func (h *RatingHandler) RegisterRoutes(e *echo.Echo, user *echo.Group) {
	e.GET("/ratings/:product_id", h.list)

	user.POST("/ratings", h.create)
	user.POST("/ratings/:id/responses", h.respond)
}

func (h *RatingHandler) list(c echo.Context) error {
	productID, ok := pathID(c, "product_id")
	if !ok {
		return badRequest(c, "invalid product_id")
	}
	out, err := h.uc.ListByProduct(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RatingHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req usecase.CreateRatingInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *RatingHandler) respond(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	ratingID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req usecase.CreateRatingResponseInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Respond(c.Request().Context(), userID, ratingID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
