package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 明細は登録順のまま保存する
type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) ([]model.OrderItem, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
