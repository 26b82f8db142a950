package server

import (
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Product       *handler.ProductHandler
	Comment       *handler.CommentHandler
	Order         *handler.OrderHandler
	AdminOrder    *handler.AdminOrderHandler
	AdminProduct  *handler.AdminProductHandler
	AdminCustomer *handler.AdminCustomerHandler
	AdminReport   *handler.AdminReportHandler
}

type GuardDeps struct {
	Customers repository.CustomerRepository
}

// JWT検証 -> アカウント確認 -> ロール
func NewGuards(secret string, deps GuardDeps) handler.Guards {
	authed := []echo.MiddlewareFunc{
		middleware.AuthJWT(secret),
		middleware.AccountGuard(deps.Customers),
	}
	return handler.Guards{
		Authenticated: authed,
		Customer:      append(append([]echo.MiddlewareFunc{}, authed...), middleware.RequireCustomer()),
		Admin:         append(append([]echo.MiddlewareFunc{}, authed...), middleware.RequireAdmin()),
		Optional:      []echo.MiddlewareFunc{middleware.OptionalAuth(secret)},
	}
}

func RegisterRoutes(e *echo.Echo, h Handlers, guards handler.Guards) {
	h.Health.RegisterRoutes(e)

	api := e.Group("/api/v1")
	h.Auth.RegisterRoutes(api, guards)
	h.Product.RegisterRoutes(api, guards)
	h.Comment.RegisterRoutes(api, guards)
	h.Order.RegisterRoutes(api, guards)
	h.AdminOrder.RegisterRoutes(api, guards)
	h.AdminProduct.RegisterRoutes(api, guards)
	h.AdminCustomer.RegisterRoutes(api, guards)
	h.AdminReport.RegisterRoutes(api, guards)
}
