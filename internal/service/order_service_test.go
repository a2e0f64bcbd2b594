package service

import (
	"context"
	"testing"

	"github.com/RowdyKGZ/python12-shop/internal/domain/model"
	"github.com/RowdyKGZ/python12-shop/pkg/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newOrderServiceForTest(t *testing.T) (*OrderService, *fakeProductRepo, *fakeOrderRepo) {
	t.Helper()
	productRepo := newFakeProductRepo()
	orderRepo := newFakeOrderRepo(productRepo)
	return NewOrderService(orderRepo, productRepo), productRepo, orderRepo
}

func createProduct(t *testing.T, repo *fakeProductRepo, title, price string) *model.Product {
	t.Helper()
	product := &model.Product{Title: title, Price: decimal.RequireFromString(price)}
	require.NoError(t, repo.CreateProduct(context.Background(), product))
	return product
}

func requireAppErrCode(t *testing.T, err error, code apperr.Code) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*apperr.AppError)
	require.True(t, ok, "expected *apperr.AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}

func TestCreateOrderDefaults(t *testing.T) {
	svc, _, _ := newOrderServiceForTest(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusOpen, order.Status)
	require.True(t, order.TotalSum.IsZero())
	require.Empty(t, order.OrderItems)

	_, err = svc.CreateOrder(ctx, anonymous)
	requireAppErrCode(t, err, apperr.UnauthenticatedCode)
}

func TestComputeTotalEmptyOrder(t *testing.T) {
	svc, _, _ := newOrderServiceForTest(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)

	total, err := svc.ComputeTotal(ctx, order.OrderID)
	require.NoError(t, err)
	require.True(t, total.IsZero())
}

func TestComputeTotalScenario(t *testing.T) {
	svc, productRepo, _ := newOrderServiceForTest(t)
	ctx := context.Background()

	productA := createProduct(t, productRepo, "Product A", "10.00")
	productB := createProduct(t, productRepo, "Product B", "5.50")

	order, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)

	_, err = svc.AddOrderItem(ctx, member, order.OrderID, productA.ProductID, 2)
	require.NoError(t, err)
	_, err = svc.AddOrderItem(ctx, member, order.OrderID, productB.ProductID, 1)
	require.NoError(t, err)

	total, err := svc.ComputeTotal(ctx, order.OrderID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("25.50").Equal(total), "got %s", total)
}

func TestComputeTotalFollowsPriceChange(t *testing.T) {
	svc, productRepo, _ := newOrderServiceForTest(t)
	ctx := context.Background()

	product := createProduct(t, productRepo, "Product", "10.00")

	order, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)
	_, err = svc.AddOrderItem(ctx, member, order.OrderID, product.ProductID, 2)
	require.NoError(t, err)

	before, err := svc.ComputeTotal(ctx, order.OrderID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("20.00").Equal(before))

	storedBefore, _, err := svc.GetOrder(ctx, member, order.OrderID)
	require.NoError(t, err)

	// 商品漲價, 即時計算值跟著變, total_sum快照不動
	product.Price = decimal.RequireFromString("12.00")
	require.NoError(t, productRepo.UpdateProduct(ctx, product))

	after, err := svc.ComputeTotal(ctx, order.OrderID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("24.00").Equal(after))

	storedAfter, _, err := svc.GetOrder(ctx, member, order.OrderID)
	require.NoError(t, err)
	require.True(t, storedBefore.TotalSum.Equal(storedAfter.TotalSum))
}

func TestAddOrderItemValidation(t *testing.T) {
	svc, productRepo, _ := newOrderServiceForTest(t)
	ctx := context.Background()

	product := createProduct(t, productRepo, "Product", "10.00")
	order, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)

	// quantity 0 被拒絕
	_, err = svc.AddOrderItem(ctx, member, order.OrderID, product.ProductID, 0)
	requireAppErrCode(t, err, apperr.InvalidArgumentCode)

	_, err = svc.AddOrderItem(ctx, member, order.OrderID, product.ProductID, -3)
	requireAppErrCode(t, err, apperr.InvalidArgumentCode)

	// 不存在的商品
	_, err = svc.AddOrderItem(ctx, member, order.OrderID, 999, 1)
	requireAppErrCode(t, err, apperr.NotFoundCode)

	// 不存在的訂單
	_, err = svc.AddOrderItem(ctx, member, 999, product.ProductID, 1)
	requireAppErrCode(t, err, apperr.NotFoundCode)

	// 其他人的訂單
	other := Actor{UserID: 55, Authenticated: true}
	_, err = svc.AddOrderItem(ctx, other, order.OrderID, product.ProductID, 1)
	requireAppErrCode(t, err, apperr.UnauthorizedCode)
}

func TestAddOrderItemOnlyWhileOpen(t *testing.T) {
	svc, productRepo, _ := newOrderServiceForTest(t)
	ctx := context.Background()

	product := createProduct(t, productRepo, "Product", "10.00")
	order, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)

	_, err = svc.SetOrderStatus(ctx, member, order.OrderID, model.OrderStatusInProgress)
	require.NoError(t, err)

	_, err = svc.AddOrderItem(ctx, member, order.OrderID, product.ProductID, 1)
	requireAppErrCode(t, err, apperr.InvalidArgumentCode)
}

func TestAddOrderItemAllowsDuplicateProduct(t *testing.T) {
	svc, productRepo, orderRepo := newOrderServiceForTest(t)
	ctx := context.Background()

	product := createProduct(t, productRepo, "Product", "2.00")
	order, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)

	_, err = svc.AddOrderItem(ctx, member, order.OrderID, product.ProductID, 1)
	require.NoError(t, err)
	_, err = svc.AddOrderItem(ctx, member, order.OrderID, product.ProductID, 2)
	require.NoError(t, err)

	count, err := orderRepo.CountOrderItems(ctx, order.OrderID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	total, err := svc.ComputeTotal(ctx, order.OrderID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("6.00").Equal(total))
}

func TestTotalSumWriteThrough(t *testing.T) {
	svc, productRepo, _ := newOrderServiceForTest(t)
	ctx := context.Background()

	product := createProduct(t, productRepo, "Product", "4.00")
	order, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)

	item, err := svc.AddOrderItem(ctx, member, order.OrderID, product.ProductID, 3)
	require.NoError(t, err)

	got, _, err := svc.GetOrder(ctx, member, order.OrderID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("12.00").Equal(got.TotalSum))

	require.NoError(t, svc.RemoveOrderItem(ctx, member, order.OrderID, item.OrderItemID))

	got, _, err = svc.GetOrder(ctx, member, order.OrderID)
	require.NoError(t, err)
	require.True(t, got.TotalSum.IsZero())
}

func TestSetOrderStatusTransitions(t *testing.T) {
	svc, _, _ := newOrderServiceForTest(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)

	// open不能直接finished
	_, err = svc.SetOrderStatus(ctx, member, order.OrderID, model.OrderStatusFinished)
	requireAppErrCode(t, err, apperr.InvalidArgumentCode)

	// 未知狀態
	_, err = svc.SetOrderStatus(ctx, member, order.OrderID, model.OrderStatus("shipped"))
	requireAppErrCode(t, err, apperr.InvalidArgumentCode)

	got, err := svc.SetOrderStatus(ctx, member, order.OrderID, model.OrderStatusInProgress)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusInProgress, got.Status)

	got, err = svc.SetOrderStatus(ctx, member, order.OrderID, model.OrderStatusFinished)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusFinished, got.Status)

	// 終態不能再轉移
	_, err = svc.SetOrderStatus(ctx, member, order.OrderID, model.OrderStatusCanceled)
	requireAppErrCode(t, err, apperr.InvalidArgumentCode)
}

func TestDeleteOrderRestrictedByItems(t *testing.T) {
	svc, productRepo, _ := newOrderServiceForTest(t)
	ctx := context.Background()

	product := createProduct(t, productRepo, "Product", "10.00")
	order, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)

	item, err := svc.AddOrderItem(ctx, member, order.OrderID, product.ProductID, 1)
	require.NoError(t, err)

	err = svc.DeleteOrder(ctx, member, order.OrderID)
	requireAppErrCode(t, err, apperr.ConflictCode)

	require.NoError(t, svc.RemoveOrderItem(ctx, member, order.OrderID, item.OrderItemID))
	require.NoError(t, svc.DeleteOrder(ctx, member, order.OrderID))
}

func TestGetOrderPermissions(t *testing.T) {
	svc, _, _ := newOrderServiceForTest(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)

	other := Actor{UserID: 55, Authenticated: true}
	_, _, err = svc.GetOrder(ctx, other, order.OrderID)
	requireAppErrCode(t, err, apperr.UnauthorizedCode)

	_, _, err = svc.GetOrder(ctx, anonymous, order.OrderID)
	requireAppErrCode(t, err, apperr.UnauthenticatedCode)

	// 管理員可讀任何訂單
	_, _, err = svc.GetOrder(ctx, admin, order.OrderID)
	require.NoError(t, err)
}

func TestListOrdersScoping(t *testing.T) {
	svc, _, _ := newOrderServiceForTest(t)
	ctx := context.Background()

	other := Actor{UserID: 55, Authenticated: true}
	_, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, other)
	require.NoError(t, err)

	mine, err := svc.ListOrders(ctx, member)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, member.UserID, mine[0].UserID)

	all, err := svc.ListOrders(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = svc.ListOrders(ctx, anonymous)
	requireAppErrCode(t, err, apperr.UnauthenticatedCode)
}

func TestRemoveOrderItemWrongOrder(t *testing.T) {
	svc, productRepo, _ := newOrderServiceForTest(t)
	ctx := context.Background()

	product := createProduct(t, productRepo, "Product", "1.00")
	orderA, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)
	orderB, err := svc.CreateOrder(ctx, member)
	require.NoError(t, err)

	item, err := svc.AddOrderItem(ctx, member, orderA.OrderID, product.ProductID, 1)
	require.NoError(t, err)

	// 品項不屬於該訂單
	err = svc.RemoveOrderItem(ctx, member, orderB.OrderID, item.OrderItemID)
	requireAppErrCode(t, err, apperr.NotFoundCode)
}
