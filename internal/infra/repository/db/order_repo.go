package db

import (
	"context"

	"github.com/RowdyKGZ/python12-shop/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, orderID uint) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status model.OrderStatus) error
	DeleteOrder(ctx context.Context, orderID uint) error
	CountOrderItems(ctx context.Context, orderID uint) (int64, error)
	ComputeOrderTotal(ctx context.Context, orderID uint) (decimal.Decimal, error)
	AddOrderItem(ctx context.Context, item *model.OrderItem) error
	GetOrderItemByID(ctx context.Context, orderItemID uint) (*model.OrderItem, error)
	DeleteOrderItem(ctx context.Context, orderItemID uint) error
}

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateOrder - 創建訂單
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// GetOrderByID - 根據ID查詢訂單, 品項連同商品一起預載
func (s *OrderRepo) GetOrderByID(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems.Product").
		First(&order, "order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByUserID - 根據用戶ID查詢訂單, 新的在前
func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetAllOrders - 查詢所有訂單, 新的在前
func (s *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems.Product").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateOrderStatus - 更新訂單狀態, 轉移合法性由service層把關
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, orderID uint, status model.OrderStatus) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status).Error
}

// DeleteOrder - 硬刪除訂單, 若仍有品項引用, DB會回傳外鍵錯誤
func (s *OrderRepo) DeleteOrder(ctx context.Context, orderID uint) error {
	return s.db.WithContext(ctx).Delete(&model.Order{}, "order_id = ?", orderID).Error
}

// CountOrderItems - 計算訂單目前的品項數
func (s *OrderRepo) CountOrderItems(ctx context.Context, orderID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count, err
}

// ComputeOrderTotal - 以當下商品價格即時計算訂單總金額
// 空訂單回傳0
func (s *OrderRepo) ComputeOrderTotal(ctx context.Context, orderID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.WithContext(ctx).Model(&model.OrderItem{}).
		Select("COALESCE(SUM(products.price * order_items.quantity), 0)").
		Joins("JOIN products ON products.product_id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&total).Error
	if err != nil {
		return decimal.Decimal{}, err
	}
	return total, nil
}

// AddOrderItem - 新增訂單品項, 並於同一交易內回寫total_sum快照
func (s *OrderRepo) AddOrderItem(ctx context.Context, item *model.OrderItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return syncOrderTotalSum(tx, item.OrderID)
	})
}

func (s *OrderRepo) GetOrderItemByID(ctx context.Context, orderItemID uint) (*model.OrderItem, error) {
	var item model.OrderItem
	err := s.db.WithContext(ctx).First(&item, "order_item_id = ?", orderItemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteOrderItem - 刪除訂單品項, 並於同一交易內回寫total_sum快照
func (s *OrderRepo) DeleteOrderItem(ctx context.Context, orderItemID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.OrderItem
		if err := tx.First(&item, "order_item_id = ?", orderItemID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.OrderItem{}, "order_item_id = ?", orderItemID).Error; err != nil {
			return err
		}
		return syncOrderTotalSum(tx, item.OrderID)
	})
}

// 品項異動時的total_sum回寫, 只在這裡更新, 商品價格異動不會回寫
func syncOrderTotalSum(tx *gorm.DB, orderID uint) error {
	return tx.Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Update("total_sum", gorm.Expr(
			"(SELECT COALESCE(SUM(products.price * order_items.quantity), 0) FROM order_items JOIN products ON products.product_id = order_items.product_id WHERE order_items.order_id = ?)",
			orderID,
		)).Error
}
