package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type ProductSort string

const (
	ProductSortNewest    ProductSort = "new"
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
)

// 空はnewest扱い
func (s ProductSort) Valid() bool {
	switch s {
	case "", ProductSortNewest, ProductSortPriceAsc, ProductSortPriceDesc:
		return true
	}
	return false
}

type ProductListQuery struct {
	Page     int
	Limit    int
	Q        string
	MinPrice *int64
	MaxPrice *int64
	Sort     ProductSort
}

// 論理削除済みの商品はどのメソッドからも見えない
// 見つからなければErrNotFound
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, productID int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	// 更新後の行を返す
	Update(ctx context.Context, p model.Product) (model.Product, error)
	SoftDelete(ctx context.Context, productID int64) error
}
