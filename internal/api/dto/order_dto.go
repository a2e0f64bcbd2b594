package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItemDTO struct {
	OrderItemID uint            `json:"order_item_id"`
	ProductID   uint            `json:"product_id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"` // 商品當下價格
	Quantity    int             `json:"quantity"`
}

type OrderDTO struct {
	OrderID   uint            `json:"order_id"`
	UserID    uint            `json:"user_id"`
	Status    string          `json:"status"`
	TotalSum  decimal.Decimal `json:"total_sum"` // 品項異動時的寫入快照
	Total     decimal.Decimal `json:"total"`     // 即時計算值, 讀取端以此為準
	CreatedAt time.Time       `json:"created_at"`
	Items     []OrderItemDTO  `json:"items"`
}

// Quantity未帶時預設為1, 帶0會被拒絕
type AddOrderItemDTO struct {
	ProductID uint `json:"product_id"`
	Quantity  *int `json:"quantity"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}
