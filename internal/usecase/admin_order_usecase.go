package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type AdminOrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	policy model.TransitionPolicy
	now    func() time.Time
}

func NewAdminOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, policy model.TransitionPolicy) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orders: orders, policy: policy, now: time.Now}
}

// approve/reject/mark-shippedの戻り値
type OrderStatusResult struct {
	OrderID      int64             `json:"order_id"`
	Status       model.OrderStatus `json:"status"`
	TrackingCode *string           `json:"tracking_code,omitempty"`
}

type auditStatus struct {
	Status       model.OrderStatus `json:"status"`
	TrackingCode *string           `json:"tracking_code,omitempty"`
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (OrderListOutput, error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Status != "" && !model.OrderStatus(f.Status).Valid() && model.OrderStatus(f.Status) != model.OrderStatusCompleted {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return OrderListOutput{}, internalError(err)
	}
	return OrderListOutput{Items: orders, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// pending -> shipping。追跡番号を記録する
func (u *AdminOrderUsecase) Approve(ctx context.Context, actorID int64, orderID int64, trackingCode string) (OrderStatusResult, error) {
	return u.ship(ctx, actorID, orderID, trackingCode, model.OrderEventApprove, model.AuditActionApproveOrder)
}

// Approveと同じ動き。監査ログのactionだけ違う
func (u *AdminOrderUsecase) MarkShipped(ctx context.Context, actorID int64, orderID int64, trackingCode string) (OrderStatusResult, error) {
	return u.ship(ctx, actorID, orderID, trackingCode, model.OrderEventShip, model.AuditActionShipOrder)
}

func (u *AdminOrderUsecase) Reject(ctx context.Context, actorID int64, orderID int64) (OrderStatusResult, error) {
	if err := checkActorAndOrder(actorID, orderID); err != nil {
		return OrderStatusResult{}, err
	}
	return u.changeStatus(ctx, actorID, orderID, model.OrderEventReject, model.AuditActionRejectOrder, repo.OrderStatusChange{})
}

func (u *AdminOrderUsecase) ship(ctx context.Context, actorID, orderID int64, trackingCode string, ev model.OrderEvent, action model.AuditAction) (OrderStatusResult, error) {
	if err := checkActorAndOrder(actorID, orderID); err != nil {
		return OrderStatusResult{}, err
	}
	code := strings.TrimSpace(trackingCode)
	if code == "" {
		return OrderStatusResult{}, NewHTTPError(http.StatusBadRequest, "tracking_code required")
	}
	if len(code) > 100 {
		return OrderStatusResult{}, NewHTTPError(http.StatusBadRequest, "tracking_code too long")
	}
	return u.changeStatus(ctx, actorID, orderID, ev, action, repo.OrderStatusChange{TrackingCode: &code})
}

func checkActorAndOrder(actorID, orderID int64) error {
	if actorID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	return nil
}

// 行ロック -> 遷移チェック -> 更新 -> 監査ログ を1つのTxで行う
func (u *AdminOrderUsecase) changeStatus(
	ctx context.Context,
	actorID, orderID int64,
	ev model.OrderEvent,
	action model.AuditAction,
	ch repo.OrderStatusChange,
) (OrderStatusResult, error) {
	var out OrderStatusResult

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 注文取得
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errOrderNotFound
		}
		if err != nil {
			return err
		}

		next, err := applyOrderEvent(ctx, r, u.policy, o, ev, ch)
		if err != nil {
			return err
		}

		before, _ := json.Marshal(auditStatus{Status: o.Status, TrackingCode: o.TrackingCode})
		after, _ := json.Marshal(auditStatus{Status: next, TrackingCode: ch.TrackingCode})
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorCustomerID: actorID,
			Action:          action,
			ResourceType:    model.AuditResourceOrder,
			ResourceID:      orderID,
			BeforeJSON:      string(before),
			AfterJSON:       string(after),
			CreatedAt:       u.now(),
		}); err != nil {
			return err
		}

		out = OrderStatusResult{OrderID: orderID, Status: next, TrackingCode: ch.TrackingCode}
		return nil
	})
	if err != nil {
		return OrderStatusResult{}, passOrInternal(err)
	}
	return out, nil
}
