package model

import (
	"errors"
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusDelivered OrderStatus = "delivered"

	// 集計クエリだけが参照する。どの操作もこの値を書き込まない
	OrderStatusCompleted OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipping, OrderStatusRejected, OrderStatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID              int64       `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	CustomerID      int64       `gorm:"not null;index" json:"customer_id"`
	TotalAmount     int64       `gorm:"not null" json:"total_amount"`
	ShippingAddress string      `gorm:"type:varchar(255);not null" json:"shipping_address"`
	Note            *string     `gorm:"type:varchar(255)" json:"note"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TrackingCode    *string     `gorm:"type:varchar(100)" json:"tracking_code"`
	DeliveredAt     *time.Time  `json:"delivered_at"`
	CreatedAt       time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:ID" json:"items"`
}

// 注文ステータスを動かす操作
type OrderEvent string

const (
	OrderEventApprove OrderEvent = "approve"
	OrderEventShip    OrderEvent = "mark-shipped"
	OrderEventReject  OrderEvent = "reject"
	OrderEventDeliver OrderEvent = "deliver"
)

// 遷移先
func (e OrderEvent) Target() (OrderStatus, bool) {
	switch e {
	case OrderEventApprove, OrderEventShip:
		return OrderStatusShipping, true
	case OrderEventReject:
		return OrderStatusRejected, true
	case OrderEventDeliver:
		return OrderStatusDelivered, true
	}
	return "", false
}

var ErrInvalidTransition = errors.New("invalid order status transition")

// InvalidTransitionErrorは許可されていない遷移の詳細
type InvalidTransitionError struct {
	From  OrderStatus
	Event OrderEvent
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s an order in status %q", e.Event, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

type TransitionPolicy int

const (
	// どの状態からでも上書きする
	TransitionPermissive TransitionPolicy = iota
	// 直前の状態を表で制限する
	TransitionStrict
)

// strictで許可する直前の状態
var legalPredecessors = map[OrderEvent][]OrderStatus{
	OrderEventApprove: {OrderStatusPending},
	OrderEventShip:    {OrderStatusPending},
	OrderEventReject:  {OrderStatusPending},
	OrderEventDeliver: {OrderStatusShipping},
}

func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch s {
	case "", "permissive":
		return TransitionPermissive, nil
	case "strict":
		return TransitionStrict, nil
	}
	return TransitionPermissive, fmt.Errorf("unknown transition policy %q", s)
}

func (p TransitionPolicy) String() string {
	if p == TransitionStrict {
		return "strict"
	}
	return "permissive"
}

// Transitionは現在の状態にeventを適用した次の状態を返す
func (p TransitionPolicy) Transition(current OrderStatus, ev OrderEvent) (OrderStatus, error) {
	next, ok := ev.Target()
	if !ok {
		return current, fmt.Errorf("unknown order event %q", ev)
	}
	if p == TransitionPermissive {
		return next, nil
	}

	for _, s := range legalPredecessors[ev] {
		if s == current {
			return next, nil
		}
	}
	return current, &InvalidTransitionError{From: current, Event: ev}
}
