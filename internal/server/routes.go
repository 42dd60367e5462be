package server

import (
	"ecshop/internal/handler"
	"ecshop/internal/health"
	"ecshop/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Catalog      *handler.CatalogHandler
	Product      *handler.ProductHandler
	Rating       *handler.RatingHandler
	Order        *handler.OrderHandler
	Cart         *handler.CartHandler
	User         *handler.UserHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminProduct *handler.AdminProductHandler
	AdminAudit   *handler.AdminAuditHandler
}

func RegisterRoutes(e *echo.Echo, tokens middleware.TokenParser, h Handlers, hc *health.Health) {
	e.GET("/livez", hc.Live)
	e.GET("/readyz", hc.Ready)

	auth := middleware.AuthJWT(tokens)

	// 公開
	h.Auth.RegisterRoutes(e)
	h.Catalog.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, tokens)

	// ログインユーザー
	user := e.Group("/user", auth)
	h.Rating.RegisterRoutes(e, user)
	h.Order.RegisterRoutes(e, auth, user)
	h.Cart.RegisterRoutes(user)
	h.User.RegisterRoutes(user)

	// 管理者
	admin := e.Group("/admin", auth, middleware.AdminRoleGuard())
	h.AdminOrder.RegisterRoutes(admin)
	h.AdminProduct.RegisterRoutes(admin)
	h.AdminAudit.RegisterRoutes(admin)
}
