package model

import (
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusOpen       OrderStatus = "open"        // 開放中，可增減品項
	OrderStatusInProgress OrderStatus = "in_progress" // 處理中
	OrderStatusCanceled   OrderStatus = "canceled"    // 已取消
	OrderStatusFinished   OrderStatus = "finished"    // 已完成
)

// 狀態機轉移表，canceled/finished為終態
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusOpen:       {OrderStatusInProgress, OrderStatusCanceled},
	OrderStatusInProgress: {OrderStatusFinished, OrderStatusCanceled},
	OrderStatusCanceled:   {},
	OrderStatusFinished:   {},
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusTransitions[s]
	return ok
}

// CanTransitionTo - 檢查狀態轉移是否合法
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	OrderID uint        `gorm:"primaryKey" json:"order_id"`
	UserID  uint        `gorm:"not null;index" json:"user_id"` // 外鍵，關聯到 User
	Status  OrderStatus `gorm:"not null;type:varchar(20);default:'open'" json:"status"`
	// 寫入快照，品項異動時於同一交易內更新，讀取端一律以即時計算的total為準
	TotalSum   decimal.Decimal `gorm:"not null;type:decimal(10,2);default:0" json:"total_sum"`
	OrderItems []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT" json:"order_items,omitempty"`
	BaseModel
}

// Total - 即時計算訂單總金額，以當下商品價格為準
// 需要OrderItems連同Product一起預載
func (o *Order) Total() decimal.Decimal {
	total := decimal.NewFromInt(0)
	for _, item := range o.OrderItems {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// 同一訂單允許同一商品出現多筆品項，故使用獨立主鍵
type OrderItem struct {
	OrderItemID uint    `gorm:"primaryKey" json:"order_item_id"`
	OrderID     uint    `gorm:"not null;index" json:"order_id"`   // 外鍵，關聯到 Order
	ProductID   uint    `gorm:"not null;index" json:"product_id"` // 外鍵，關聯到 Product
	Product     Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Quantity    int     `gorm:"not null;default:1" json:"quantity"`
	BaseModel
}
