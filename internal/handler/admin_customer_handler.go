package handler

import (
	"net/http"

	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/customers
type AdminCustomerHandler struct {
	uc *usecase.AdminCustomerUsecase
}

func NewAdminCustomerHandler(uc *usecase.AdminCustomerUsecase) *AdminCustomerHandler {
	return &AdminCustomerHandler{uc: uc}
}

type UpdateCustomerRequest struct {
	FullName string  `json:"full_name" validate:"required,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
}

func (h *AdminCustomerHandler) RegisterRoutes(g *echo.Group, guards Guards) {
	g.GET("/admin/customers", h.list, guards.Admin...)
	g.GET("/admin/customers/:id", h.detail, guards.Admin...)
	g.PATCH("/admin/customers/:id", h.update, guards.Admin...)
	g.DELETE("/admin/customers/:id", h.delete, guards.Admin...)
}

func (h *AdminCustomerHandler) list(c echo.Context) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), repository.CustomerListQuery{
		Page:  page,
		Limit: limit,
		Q:     c.QueryParam("q"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", out)
}

func (h *AdminCustomerHandler) detail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	customer, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", customer)
}

func (h *AdminCustomerHandler) update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req UpdateCustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	customer, err := h.uc.Update(c.Request().Context(), id, usecase.UpdateCustomerInput{
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "updated", customer)
}

func (h *AdminCustomerHandler) delete(c echo.Context) error {
	adminID, found := getCustomerIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.Delete(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "deleted", nil)
}
