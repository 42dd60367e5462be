package handler

import (
	"context"
	"net/http"

	"ecshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// カテゴリ・ブランド・支払い方法の公開API
type CatalogService interface {
	ListCategories(ctx context.Context) ([]usecase.CategoryView, error)
	GetCategory(ctx context.Context, categoryID int64) (usecase.CategoryDetailView, error)
	ListBrands(ctx context.Context) ([]usecase.BrandLiteView, error)
	GetBrand(ctx context.Context, brandID int64) (usecase.BrandDetailView, error)
	ListPayments(ctx context.Context) ([]usecase.PaymentView, error)
}

type CatalogHandler struct {
	uc CatalogService
}

func NewCatalogHandler(uc CatalogService) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/categories", h.listCategories)
	e.GET("/categories/:id", h.category)
	e.GET("/brands", h.listBrands)
	e.GET("/brands/:id", h.brand)
	e.GET("/payments", h.listPayments)
}

func (h *CatalogHandler) listCategories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) category(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	out, err := h.uc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) listBrands(c echo.Context) error {
	out, err := h.uc.ListBrands(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) brand(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	out, err := h.uc.GetBrand(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) listPayments(c echo.Context) error {
	out, err := h.uc.ListPayments(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
