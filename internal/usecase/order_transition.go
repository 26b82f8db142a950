package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// ロック済みの注文にeventを適用して保存する
// chのStatusはここで埋める
func applyOrderEvent(
	ctx context.Context,
	r repo.TxRepos,
	policy model.TransitionPolicy,
	o model.Order,
	ev model.OrderEvent,
	ch repo.OrderStatusChange,
) (model.OrderStatus, error) {
	next, err := policy.Transition(o.Status, ev)
	if err != nil {
		if errors.Is(err, model.ErrInvalidTransition) {
			return o.Status, NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return o.Status, err
	}

	ch.Status = next
	if err := r.Orders().ApplyStatus(ctx, o.ID, ch); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return o.Status, errOrderNotFound
		}
		return o.Status, err
	}
	return next, nil
}
