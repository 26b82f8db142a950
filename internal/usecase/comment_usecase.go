package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CommentUsecase struct {
	tx       repo.TransactionManager
	comments repo.CommentRepository
}

func NewCommentUsecase(tx repo.TransactionManager, comments repo.CommentRepository) *CommentUsecase {
	return &CommentUsecase{tx: tx, comments: comments}
}

type AddCommentInput struct {
	ProductID int64
	OrderID   int64
	Content   string
	Rating    *int
}

// 配達済みの注文に含まれる商品にだけコメントできる
// 資格チェックとINSERTは同じTx、重複はユニーク制約で弾く
func (u *CommentUsecase) AddComment(ctx context.Context, customerID int64, in AddCommentInput) (model.Comment, error) {
	if customerID <= 0 {
		return model.Comment{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 || in.OrderID <= 0 {
		return model.Comment{}, NewHTTPError(http.StatusBadRequest, "product_id and order_id required")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return model.Comment{}, NewHTTPError(http.StatusBadRequest, "content required")
	}
	if utf8.RuneCountInString(content) > 500 {
		return model.Comment{}, NewHTTPError(http.StatusBadRequest, "content too long")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return model.Comment{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	var out model.Comment

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ok, err := r.Comments().CanComment(ctx, customerID, in.ProductID, in.OrderID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotEligible
		}

		c, err := r.Comments().Create(ctx, model.Comment{
			CustomerID: customerID,
			ProductID:  in.ProductID,
			OrderID:    in.OrderID,
			Content:    content,
			Rating:     in.Rating,
		})
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrAlreadyCommented
		}
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return model.Comment{}, passOrInternal(err)
	}
	return out, nil
}

func (u *CommentUsecase) ListProductComments(ctx context.Context, productID int64, limit int) ([]model.Comment, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	items, err := u.comments.ListByProductID(ctx, productID, limit)
	if err != nil {
		return nil, internalError(err)
	}
	return items, nil
}
