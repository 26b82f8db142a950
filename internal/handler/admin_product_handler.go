package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ProductRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"gte=0"`
	SalePrice   *int64 `json:"sale_price" validate:"omitempty,gte=0"`
}

func (r ProductRequest) input() usecase.ProductInput {
	return usecase.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		SalePrice:   r.SalePrice,
	}
}

// /admin/products
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

func (h *AdminProductHandler) RegisterRoutes(g *echo.Group, guards Guards) {
	g.GET("/admin/products", h.list, guards.Admin...)
	g.POST("/admin/products", h.createProduct, guards.Admin...)
	g.GET("/admin/products/:id", h.detail, guards.Admin...)
	g.PATCH("/admin/products/:id", h.updateProduct, guards.Admin...)
	g.DELETE("/admin/products/:id", h.deleteProduct, guards.Admin...)
}

func (h *AdminProductHandler) list(c echo.Context) error {
	in, err := parseProductListQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListPublicProducts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", out)
}

func (h *AdminProductHandler) detail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.GetProductDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", p)
}

func (h *AdminProductHandler) createProduct(c echo.Context) error {
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.AdminCreateProduct(c.Request().Context(), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "created", p)
}

func (h *AdminProductHandler) updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.AdminUpdateProduct(c.Request().Context(), id, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "updated", p)
}

func (h *AdminProductHandler) deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.AdminDeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "deleted", nil)
}
