package service

import (
	"context"
	"errors"

	"github.com/RowdyKGZ/python12-shop/internal/domain/model"
	"github.com/RowdyKGZ/python12-shop/internal/infra/repository/db"
	"github.com/RowdyKGZ/python12-shop/pkg/apperr"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type IOrderService interface {
	CreateOrder(ctx context.Context, actor Actor) (*model.Order, error)
	GetOrder(ctx context.Context, actor Actor, orderID uint) (*model.Order, decimal.Decimal, error)
	ListOrders(ctx context.Context, actor Actor) ([]model.Order, error)
	DeleteOrder(ctx context.Context, actor Actor, orderID uint) error
	AddOrderItem(ctx context.Context, actor Actor, orderID, productID uint, quantity int) (*model.OrderItem, error)
	RemoveOrderItem(ctx context.Context, actor Actor, orderID, orderItemID uint) error
	SetOrderStatus(ctx context.Context, actor Actor, orderID uint, next model.OrderStatus) (*model.Order, error)
	ComputeTotal(ctx context.Context, orderID uint) (decimal.Decimal, error)
}

type OrderService struct {
	orderRepo   db.IOrderRepository
	productRepo db.IProductRepository
}

func NewOrderService(orderRepo db.IOrderRepository, productRepo db.IProductRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, productRepo: productRepo}
}

// CreateOrder - 創建空訂單, 狀態open, total_sum為0
func (o *OrderService) CreateOrder(ctx context.Context, actor Actor) (*model.Order, error) {
	if !CanCreateOrder(actor) {
		return nil, apperr.New(apperr.UnauthenticatedCode, "authentication required")
	}

	order := &model.Order{
		UserID:   actor.UserID,
		Status:   model.OrderStatusOpen,
		TotalSum: decimal.NewFromInt(0),
	}
	if err := o.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder - 查詢訂單, 一併回傳即時計算的總金額
func (o *OrderService) GetOrder(ctx context.Context, actor Actor, orderID uint) (*model.Order, decimal.Decimal, error) {
	order, err := o.loadOrder(ctx, orderID)
	if err != nil {
		return nil, decimal.Decimal{}, err
	}
	if !CanViewOrder(actor, order.UserID) {
		return nil, decimal.Decimal{}, o.permissionErr(actor, "you can only view your own orders")
	}

	total, err := o.orderRepo.ComputeOrderTotal(ctx, orderID)
	if err != nil {
		return nil, decimal.Decimal{}, err
	}
	return order, total, nil
}

// ListOrders - 一般用戶僅能看到自己的訂單, 管理員看到全部, 新的在前
func (o *OrderService) ListOrders(ctx context.Context, actor Actor) ([]model.Order, error) {
	if !actor.Authenticated {
		return nil, apperr.New(apperr.UnauthenticatedCode, "authentication required")
	}
	if actor.IsAdmin {
		return o.orderRepo.GetAllOrders(ctx)
	}
	return o.orderRepo.GetOrdersByUserID(ctx, actor.UserID)
}

// DeleteOrder - 仍有品項的訂單不可刪除
func (o *OrderService) DeleteOrder(ctx context.Context, actor Actor, orderID uint) error {
	order, err := o.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !CanDeleteOrder(actor, order.UserID) {
		return o.permissionErr(actor, "you can only delete your own orders")
	}

	count, err := o.orderRepo.CountOrderItems(ctx, orderID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.New(apperr.ConflictCode, "order still has items")
	}

	err = o.orderRepo.DeleteOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperr.New(apperr.ConflictCode, "order still has items")
		}
		return err
	}
	return nil
}

// AddOrderItem - 新增品項, 僅open狀態可異動, 數量至少為1
// 同商品允許多筆品項, 不做合併
func (o *OrderService) AddOrderItem(ctx context.Context, actor Actor, orderID, productID uint, quantity int) (*model.OrderItem, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.InvalidArgumentCode, "quantity must be at least 1")
	}

	order, err := o.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanModifyOrderItems(actor, order.UserID) {
		return nil, o.permissionErr(actor, "you can only modify your own orders")
	}
	if order.Status != model.OrderStatusOpen {
		return nil, apperr.Newf(apperr.InvalidArgumentCode, "order in status %s cannot be modified", order.Status)
	}

	if _, err := o.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "product not found")
		}
		return nil, err
	}

	item := &model.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := o.orderRepo.AddOrderItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveOrderItem - 移除品項, 僅open狀態可異動
func (o *OrderService) RemoveOrderItem(ctx context.Context, actor Actor, orderID, orderItemID uint) error {
	order, err := o.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !CanModifyOrderItems(actor, order.UserID) {
		return o.permissionErr(actor, "you can only modify your own orders")
	}
	if order.Status != model.OrderStatusOpen {
		return apperr.Newf(apperr.InvalidArgumentCode, "order in status %s cannot be modified", order.Status)
	}

	item, err := o.orderRepo.GetOrderItemByID(ctx, orderItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFoundCode, "order item not found")
		}
		return err
	}
	if item.OrderID != orderID {
		return apperr.New(apperr.NotFoundCode, "order item not found")
	}

	return o.orderRepo.DeleteOrderItem(ctx, orderItemID)
}

// SetOrderStatus - 依狀態機檢查轉移合法性, 不合法一律拒絕
func (o *OrderService) SetOrderStatus(ctx context.Context, actor Actor, orderID uint, next model.OrderStatus) (*model.Order, error) {
	if !next.IsValid() {
		return nil, apperr.Newf(apperr.InvalidArgumentCode, "unknown order status: %s", next)
	}

	order, err := o.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanSetOrderStatus(actor, order.UserID) {
		return nil, o.permissionErr(actor, "you can only update your own orders")
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, apperr.Newf(apperr.InvalidArgumentCode, "illegal status transition: %s -> %s", order.Status, next)
	}

	if err := o.orderRepo.UpdateOrderStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	order.Status = next
	return order, nil
}

// ComputeTotal - 即時計算訂單總金額
func (o *OrderService) ComputeTotal(ctx context.Context, orderID uint) (decimal.Decimal, error) {
	return o.orderRepo.ComputeOrderTotal(ctx, orderID)
}

func (o *OrderService) loadOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "order not found")
		}
		return nil, err
	}
	return order, nil
}

func (o *OrderService) permissionErr(actor Actor, msg string) error {
	if !actor.Authenticated {
		return apperr.New(apperr.UnauthenticatedCode, "authentication required")
	}
	return apperr.New(apperr.UnauthorizedCode, msg)
}
