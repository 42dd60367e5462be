package handler

import (
	"context"
	"net/http"

	"ecshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminCatalogService interface {
	CreateProduct(ctx context.Context, adminUserID int64, in usecase.AdminProductInput) (usecase.ProductView, error)
	UpdateProduct(ctx context.Context, adminUserID int64, productID int64, in usecase.AdminProductInput) (usecase.ProductView, error)
	DeleteProduct(ctx context.Context, adminUserID int64, productID int64) error
	CreateCategory(ctx context.Context, in usecase.AdminCategoryInput) (usecase.CategoryDetailView, error)
	CreateBrand(ctx context.Context, in usecase.AdminBrandInput) (usecase.BrandDetailView, error)
}

// /admin/products, /admin/categories, /admin/brands をまとめる
type AdminProductHandler struct {
	uc AdminCatalogService
}

// DI
func NewAdminProductHandler(uc AdminCatalogService) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

func (h *AdminProductHandler) RegisterRoutes(admin *echo.Group) {
	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)
	admin.POST("/categories", h.createCategory)
	admin.POST("/brands", h.createBrand)
}

func (h *AdminProductHandler) createProduct(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req usecase.AdminProductInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), adminID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) updateProduct(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req usecase.AdminProductInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.UpdateProduct(c.Request().Context(), adminID, id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) deleteProduct(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminProductHandler) createCategory(c echo.Context) error {
	var req usecase.AdminCategoryInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) createBrand(c echo.Context) error {
	var req usecase.AdminBrandInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.CreateBrand(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
