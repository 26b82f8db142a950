package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CustomerListQuery struct {
	Page  int
	Limit int
	Q     string
}

// 保存・取得を約束
// 論理削除済みの顧客はどのメソッドからも見えない
// Find系は見つからなければ(nil, nil)
type CustomerRepository interface {
	//新規作成。メール重複はErrDuplicate
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, customerID int64) (*model.Customer, error)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	List(ctx context.Context, q CustomerListQuery) ([]model.Customer, int64, error)
	UpdateProfile(ctx context.Context, customerID int64, fullName string, phone *string) error
	//論理削除し、発行済みトークンも無効化する
	SoftDelete(ctx context.Context, customerID int64) error
}
