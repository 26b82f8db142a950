package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CommentRepository interface {
	// 配達済みの注文にその商品が含まれるか
	CanComment(ctx context.Context, customerID, productID, orderID int64) (bool, error)
	// 資格の確認はしない
	Create(ctx context.Context, c model.Comment) (model.Comment, error)
	ListByProductID(ctx context.Context, productID int64, limit int) ([]model.Comment, error)
}
