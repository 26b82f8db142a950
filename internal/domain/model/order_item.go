package model

import "time"

// 注文時点の単価をそのまま保存する
type OrderItem struct {
	ID        int64     `gorm:"column:order_item_id;primaryKey;autoIncrement" json:"-"`
	OrderID   int64     `gorm:"not null;index" json:"order_id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-"`
}
