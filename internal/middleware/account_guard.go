package middleware

import (
	"net/http"

	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// アカウントがまだ有効か確認する
// 論理削除済み、またはJWTのtvとDBのtoken_versionが違えば401
func AccountGuard(customers repository.CustomerRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			customerID, ok := c.Get(CtxCustomerIDKey).(int64)
			if !ok || customerID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgTokenRequired, codeUnauthorized))
			}
			tv, ok := c.Get(CtxTokenVersionKey).(int)
			if !ok || tv < 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgTokenInvalid, codeUnauthorized))
			}

			//DBから最新の状態を取得する
			cust, err := customers.FindByID(c.Request().Context(), customerID)
			if err != nil {
				log.WithError(err).WithField("customer_id", customerID).Error("account guard lookup failed")
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error", ""))
			}
			if cust == nil || cust.TokenVersion != tv {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgTokenInvalid, codeUnauthorized))
			}

			// DB上の種別が正
			c.Set(CtxAccountTypeKey, string(cust.AccountType))
			return next(c)
		}
	}
}
