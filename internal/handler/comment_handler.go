package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	uc *usecase.CommentUsecase
}

func NewCommentHandler(uc *usecase.CommentUsecase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

type AddCommentRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	OrderID   int64  `json:"order_id" validate:"required,gt=0"`
	Content   string `json:"content" validate:"required,max=500"`
	Rating    *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

func (h *CommentHandler) RegisterRoutes(g *echo.Group, guards Guards) {
	g.POST("/comments", h.create, guards.Customer...)
	g.GET("/products/:id/comments", h.listByProduct)
}

func (h *CommentHandler) create(c echo.Context) error {
	customerID, found := getCustomerIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req AddCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	comment, err := h.uc.AddComment(c.Request().Context(), customerID, usecase.AddCommentInput{
		ProductID: req.ProductID,
		OrderID:   req.OrderID,
		Content:   req.Content,
		Rating:    req.Rating,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Comment added successfully", comment)
}

func (h *CommentHandler) listByProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return writeError(c, err)
	}

	comments, err := h.uc.ListProductComments(c.Request().Context(), productID, limit)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", comments)
}
