package model

import "time"

// 受け取り済みの注文に紐づく商品レビュー
// (customer_id, product_id, order_id)はユニーク
type Comment struct {
	ID         int64     `gorm:"column:comment_id;primaryKey;autoIncrement" json:"comment_id"`
	CustomerID int64     `gorm:"not null;index" json:"customer_id"`
	ProductID  int64     `gorm:"not null;index" json:"product_id"`
	OrderID    int64     `gorm:"not null;index" json:"order_id"`
	Content    string    `gorm:"type:varchar(500);not null" json:"content"`
	Rating     *int      `json:"rating"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
