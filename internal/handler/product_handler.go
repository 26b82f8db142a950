package handler

import (
	"net/http"

	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(g *echo.Group, guards Guards) {
	g.GET("/products", h.list, guards.Optional...)
	g.GET("/products/:id", h.detail, guards.Optional...)
}

// 公開一覧と管理一覧で同じクエリを読む
func parseProductListQuery(c echo.Context) (usecase.ListProductsInput, error) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return usecase.ListProductsInput{}, err
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return usecase.ListProductsInput{}, err
	}
	minPrice, err := queryInt64Ptr(c, "min_price")
	if err != nil {
		return usecase.ListProductsInput{}, err
	}
	maxPrice, err := queryInt64Ptr(c, "max_price")
	if err != nil {
		return usecase.ListProductsInput{}, err
	}

	return usecase.ListProductsInput{
		Page:     page,
		Limit:    limit,
		Q:        c.QueryParam("q"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     repository.ProductSort(c.QueryParam("sort")),
	}, nil
}

func (h *ProductHandler) list(c echo.Context) error {
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

func (h *ProductHandler) detail(c echo.Context) error {
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
