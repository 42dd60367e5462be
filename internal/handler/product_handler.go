package handler

import (
	"context"
	"net/http"

	"ecshop/internal/middleware"
	"ecshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProductService interface {
	ListProducts(ctx context.Context, in usecase.ListProductsInput) (usecase.Page[usecase.ProductView], error)
	ListLite(ctx context.Context, q string) ([]usecase.ProductLiteView, error)
	ListSuggestion(ctx context.Context, productID int64) ([]usecase.ProductView, error)
	ListBoughtBySameUsers(ctx context.Context, productID int64) ([]usecase.ProductView, error)
	GetProductDetail(ctx context.Context, userID int64, productID int64, imgStyle *string) (usecase.ProductDetailView, error)
}

// /products の公開API
type ProductHandler struct {
	uc ProductService
}

// DI
func NewProductHandler(uc ProductService) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録。詳細だけはログインしていればis_buyを返す
func (h *ProductHandler) RegisterRoutes(e *echo.Echo, tokens middleware.TokenParser) {
	e.GET("/products", h.list)
	e.GET("/products/lite", h.lite)
	e.GET("/products/suggestion", h.suggestion)
	e.GET("/products/bought_by_same_users", h.boughtBySameUsers)
	e.GET("/products/:id", h.detail, middleware.OptionalAuthJWT(tokens))
}

func (h *ProductHandler) list(c echo.Context) error {
	// page（default 1）
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return badRequest(c, "invalid page")
	}

	// limit（default 20）
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return badRequest(c, "invalid limit")
	}

	categoryID, err := queryInt64Ptr(c, "category")
	if err != nil {
		return badRequest(c, "invalid category")
	}
	brandID, err := queryInt64Ptr(c, "brand")
	if err != nil {
		return badRequest(c, "invalid brand")
	}

	minPrice, err := queryDecimalPtr(c, "min_price")
	if err != nil {
		return badRequest(c, "invalid min_price")
	}
	maxPrice, err := queryDecimalPtr(c, "max_price")
	if err != nil {
		return badRequest(c, "invalid max_price")
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Page:       page,
		Limit:      limit,
		Q:          c.QueryParam("q"),
		CategoryID: categoryID,
		BrandID:    brandID,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Sort:       c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) lite(c echo.Context) error {
	out, err := h.uc.ListLite(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) suggestion(c echo.Context) error {
	id, err := queryInt64Ptr(c, "product_id")
	if err != nil || id == nil {
		return badRequest(c, "invalid product_id")
	}
	out, err := h.uc.ListSuggestion(c.Request().Context(), *id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) boughtBySameUsers(c echo.Context) error {
	id, err := queryInt64Ptr(c, "product_id")
	if err != nil || id == nil {
		return badRequest(c, "invalid product_id")
	}
	out, err := h.uc.ListBoughtBySameUsers(c.Request().Context(), *id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	// 未ログインなら0
	userID, _ := getUserIDFromContext(c)

	var imgStyle *string
	if v := c.QueryParam("img_style"); v != "" {
		imgStyle = &v
	}

	p, err := h.uc.GetProductDetail(c.Request().Context(), userID, id, imgStyle)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func queryDecimalPtr(c echo.Context, name string) (*decimal.Decimal, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
