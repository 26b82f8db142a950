package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	policy model.TransitionPolicy
	now    func() time.Time
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, policy model.TransitionPolicy) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, policy: policy, now: time.Now}
}

type PlaceOrderItem struct {
	ProductID int64
	Quantity  int64
	Price     int64
}

type PlaceOrderInput struct {
	Items           []PlaceOrderItem
	TotalAmount     int64
	ShippingAddress string
	Note            *string
}

// 明細の単価はリクエストの値をそのまま使う（カタログから再計算しない）
func (u *OrderUsecase) PlaceOrder(ctx context.Context, customerID int64, in PlaceOrderInput) (model.Order, error) {
	if customerID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "items required")
	}
	addr := strings.TrimSpace(in.ShippingAddress)
	if addr == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "shipping_address required")
	}
	if in.TotalAmount <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "total_amount required")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
	}

	items := make([]model.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	var out model.Order

	//ヘッダーと明細は同じTx
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err := r.Orders().Create(ctx, model.Order{
			CustomerID:      customerID,
			TotalAmount:     in.TotalAmount,
			ShippingAddress: addr,
			Note:            in.Note,
			Status:          model.OrderStatusPending,
		})
		if err != nil {
			return err
		}

		saved, err := r.OrderItems().CreateBulk(ctx, created.ID, items)
		if err != nil {
			return err
		}

		created.Items = saved
		out = created
		return nil
	})
	if err != nil {
		return model.Order{}, passOrInternal(err)
	}
	return out, nil
}

// 注文した本人だけが受け取り確認できる
func (u *OrderUsecase) ConfirmDelivered(ctx context.Context, customerID int64, orderID int64) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errOrderNotFound
		}
		if err != nil {
			return err
		}
		if o.CustomerID != customerID {
			//他人の注文は「存在しない扱い」にする
			return errOrderNotFound
		}

		now := u.now()
		_, err = applyOrderEvent(ctx, r, u.policy, o, model.OrderEventDeliver, repo.OrderStatusChange{
			DeliveredAt: &now,
		})
		return err
	})
	return passOrInternal(err)
}

type OrderListOutput struct {
	Items []model.Order `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// 新しい順
func (u *OrderUsecase) ListMyOrders(ctx context.Context, customerID int64, page, limit int) (OrderListOutput, error) {
	if customerID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	orders, total, err := u.orders.ListByCustomerID(ctx, customerID, page, limit)
	if err != nil {
		return OrderListOutput{}, internalError(err)
	}
	return OrderListOutput{Items: orders, Total: total, Page: page, Limit: limit}, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, customerID int64, orderID int64) (model.Order, error) {
	if customerID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, errOrderNotFound
	}
	if err != nil {
		return model.Order{}, internalError(err)
	}
	if o.CustomerID != customerID {
		return model.Order{}, errOrderNotFound
	}
	return o, nil
}
