package handler

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

// 追跡番号の中身はusecaseで検証する
type TrackingRequest struct {
	TrackingCode string `json:"tracking_code"`
}

func (h *AdminOrderHandler) RegisterRoutes(g *echo.Group, guards Guards) {
	g.GET("/admin/orders", h.list, guards.Admin...)

	g.POST("/orders/:order_id/approve", h.approve, guards.Admin...)
	g.POST("/orders/:order_id/mark-shipped", h.markShipped, guards.Admin...)
	g.POST("/orders/:order_id/reject", h.reject, guards.Admin...)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return writeError(c, err)
	}
	customerID, err := queryInt64Ptr(c, "customer_id")
	if err != nil {
		return writeError(c, err)
	}

	var fromPtr *time.Time
	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid from")
		}
		fromPtr = &tm
	}

	var toPtr *time.Time
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid to")
		}
		toPtr = &tm
	}

	out, err := h.uc.List(c.Request().Context(), repository.AdminOrderListFilter{
		Page:       page,
		Limit:      limit,
		Status:     c.QueryParam("status"),
		CustomerID: customerID,
		From:       fromPtr,
		To:         toPtr,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", out)
}

func (h *AdminOrderHandler) approve(c echo.Context) error {
	return h.withTracking(c, h.uc.Approve, "Order approved")
}

func (h *AdminOrderHandler) markShipped(c echo.Context) error {
	return h.withTracking(c, h.uc.MarkShipped, "Order marked as shipped")
}

type trackingAction func(ctx context.Context, actorID, orderID int64, trackingCode string) (usecase.OrderStatusResult, error)

func (h *AdminOrderHandler) withTracking(c echo.Context, action trackingAction, message string) error {
	// 監査ログ用に操作した管理者IDを取る
	adminID, found := getCustomerIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := parseIDParam(c, "order_id")
	if err != nil {
		return writeError(c, err)
	}

	var req TrackingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	res, err := action(c.Request().Context(), adminID, orderID, req.TrackingCode)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, message, res)
}

func (h *AdminOrderHandler) reject(c echo.Context) error {
	adminID, found := getCustomerIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := parseIDParam(c, "order_id")
	if err != nil {
		return writeError(c, err)
	}

	res, err := h.uc.Reject(c.Request().Context(), adminID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Order rejected", res)
}
