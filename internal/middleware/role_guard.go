package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AuthJWTの後ろに置く
func RequireCustomer() echo.MiddlewareFunc {
	return requireAccountType("customer", "Customer access required")
}

func RequireAdmin() echo.MiddlewareFunc {
	return requireAccountType("admin", "Admin access required")
}

func requireAccountType(want string, msg string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accountType, ok := c.Get(CtxAccountTypeKey).(string)
			if !ok || accountType == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgTokenRequired, codeUnauthorized))
			}
			if accountType != want {
				return c.JSON(http.StatusForbidden, errorJSON(msg, codeForbidden))
			}
			return next(c)
		}
	}
}
