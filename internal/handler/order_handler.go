package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type placeOrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
	Price     int64 `json:"price" validate:"gte=0"`
}

type PlaceOrderRequest struct {
	Items           []placeOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount     int64                   `json:"total_amount" validate:"required,gt=0"`
	ShippingAddress string                  `json:"shipping_address" validate:"required,max=255"`
	Note            *string                 `json:"note" validate:"omitempty,max=255"`
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group, guards Guards) {
	g.POST("/orders", h.create, guards.Customer...)
	g.GET("/orders", h.list, guards.Customer...)
	g.GET("/orders/:order_id", h.detail, guards.Customer...)
	g.POST("/orders/:order_id/confirm-delivered", h.confirmDelivered, guards.Customer...)
}

func (h *OrderHandler) create(c echo.Context) error {
	customerID, found := getCustomerIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req PlaceOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	items := make([]usecase.PlaceOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.PlaceOrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), customerID, usecase.PlaceOrderInput{
		Items:           items,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		Note:            req.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "Order created successfully", order)
}

func (h *OrderHandler) list(c echo.Context) error {
	customerID, found := getCustomerIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), customerID, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	customerID, found := getCustomerIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := parseIDParam(c, "order_id")
	if err != nil {
		return writeError(c, err)
	}

	order, err := h.uc.GetMyOrderDetail(c.Request().Context(), customerID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", order)
}

// 更新後の注文は返さない
func (h *OrderHandler) confirmDelivered(c echo.Context) error {
	customerID, found := getCustomerIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := parseIDParam(c, "order_id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.ConfirmDelivered(c.Request().Context(), customerID, orderID); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Order marked as delivered", nil)
}
