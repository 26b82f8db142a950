package model

// 管理画面の集計値
type Statistics struct {
	TotalOrders    int64 `json:"total_orders"`
	TotalCustomers int64 `json:"total_customers"`
	TotalProducts  int64 `json:"total_products"`
	TotalRevenue   int64 `json:"total_revenue"`
}
