package model

import "time"

type AuditAction string

const (
	AuditActionApproveOrder   AuditAction = "APPROVE_ORDER"
	AuditActionRejectOrder    AuditAction = "REJECT_ORDER"
	AuditActionShipOrder      AuditAction = "SHIP_ORDER"
	AuditActionDeleteCustomer AuditAction = "DELETE_CUSTOMER"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder    AuditResourceType = "order"
	AuditResourceCustomer AuditResourceType = "customer"
)

// 監査ログ（管理者操作ログ）
// 誰がどの対象をどう変えたかを残す
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した管理者
	ActorCustomerID int64 `gorm:"not null;index" json:"actor_customer_id"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	//JSON文字列
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
