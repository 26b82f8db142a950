package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type CommentGormRepository struct {
	db *gorm.DB
}

func NewCommentGormRepository(db *gorm.DB) *CommentGormRepository {
	return &CommentGormRepository{db: db}
}

const canCommentSQL = `
SELECT EXISTS (
	SELECT 1
	FROM order_items oi
	JOIN orders o ON o.order_id = oi.order_id
	WHERE o.customer_id = ?
	  AND oi.product_id = ?
	  AND o.order_id = ?
	  AND o.status = ?
)`

func (r *CommentGormRepository) CanComment(ctx context.Context, customerID, productID, orderID int64) (bool, error) {
	var ok bool
	err := r.db.WithContext(ctx).
		Raw(canCommentSQL, customerID, productID, orderID, model.OrderStatusDelivered).
		Scan(&ok).Error
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (r *CommentGormRepository) Create(ctx context.Context, c model.Comment) (model.Comment, error) {
	err := r.db.WithContext(ctx).Create(&c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.Comment{}, repo.ErrDuplicate
	}
	if err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

//新しい順
func (r *CommentGormRepository) ListByProductID(ctx context.Context, productID int64, limit int) ([]model.Comment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var items []model.Comment
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("comment_id desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.Comment{}, err
	}
	return items, nil
}
