package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// キャッシュが無いときは(nil, nil)
type StatisticsCache interface {
	GetStatistics(ctx context.Context) (*model.Statistics, error)
	SetStatistics(ctx context.Context, s model.Statistics) error
}

type ProductCache interface {
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	SetProduct(ctx context.Context, p model.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}
