package service

import (
	"context"
	"sort"
	"strings"

	"github.com/RowdyKGZ/python12-shop/internal/domain/model"
	"github.com/RowdyKGZ/python12-shop/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// in-memory fakes, 模擬repo層的gorm語意 (找不到回gorm.ErrRecordNotFound)

type fakeProductRepo struct {
	products map[uint]model.Product
	reviews  map[uint][]model.ProductReview
	nextID   uint
	refs     func(productID uint) int64 // 供CountOrderItemRefs注入
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: map[uint]model.Product{},
		reviews:  map[uint][]model.ProductReview{},
	}
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	f.nextID++
	product.ProductID = f.nextID
	f.products[product.ProductID] = *product
	return nil
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, productID uint) (*model.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &product, nil
}

func (f *fakeProductRepo) GetProductWithReviews(ctx context.Context, productID uint) (*model.Product, error) {
	product, err := f.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.Reviews = f.reviews[productID]
	return product, nil
}

func (f *fakeProductRepo) ListProducts(ctx context.Context, filter db.ProductFilter) ([]model.Product, int64, error) {
	var result []model.Product
	for _, product := range f.products {
		if filter.PriceFrom != nil && product.Price.LessThan(*filter.PriceFrom) {
			continue
		}
		if filter.PriceTo != nil && product.Price.GreaterThan(*filter.PriceTo) {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(product.Title, filter.Search) &&
			!strings.Contains(product.Description, filter.Search) {
			continue
		}
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProductID < result[j].ProductID })
	return result, int64(len(result)), nil
}

func (f *fakeProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	if _, ok := f.products[product.ProductID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.products[product.ProductID] = *product
	return nil
}

func (f *fakeProductRepo) DeleteProduct(ctx context.Context, productID uint) error {
	delete(f.products, productID)
	return nil
}

func (f *fakeProductRepo) CountOrderItemRefs(ctx context.Context, productID uint) (int64, error) {
	if f.refs != nil {
		return f.refs(productID), nil
	}
	return 0, nil
}

type fakeOrderRepo struct {
	productRepo *fakeProductRepo
	orders      map[uint]model.Order
	items       map[uint]model.OrderItem
	nextOrderID uint
	nextItemID  uint
}

func newFakeOrderRepo(productRepo *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		productRepo: productRepo,
		orders:      map[uint]model.Order{},
		items:       map[uint]model.OrderItem{},
	}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	f.nextOrderID++
	order.OrderID = f.nextOrderID
	f.orders[order.OrderID] = *order
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, orderID uint) (*model.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	order.OrderItems = f.itemsOf(orderID)
	return &order, nil
}

func (f *fakeOrderRepo) itemsOf(orderID uint) []model.OrderItem {
	var items []model.OrderItem
	for _, item := range f.items {
		if item.OrderID != orderID {
			continue
		}
		if product, ok := f.productRepo.products[item.ProductID]; ok {
			item.Product = product
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].OrderItemID < items[j].OrderItemID })
	return items
}

func (f *fakeOrderRepo) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			order.OrderItems = f.itemsOf(order.OrderID)
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderID > orders[j].OrderID })
	return orders, nil
}

func (f *fakeOrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	for _, order := range f.orders {
		order.OrderItems = f.itemsOf(order.OrderID)
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderID > orders[j].OrderID })
	return orders, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, orderID uint, status model.OrderStatus) error {
	order, ok := f.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	f.orders[orderID] = order
	return nil
}

func (f *fakeOrderRepo) DeleteOrder(ctx context.Context, orderID uint) error {
	for _, item := range f.items {
		if item.OrderID == orderID {
			return gorm.ErrForeignKeyViolated
		}
	}
	delete(f.orders, orderID)
	return nil
}

func (f *fakeOrderRepo) CountOrderItems(ctx context.Context, orderID uint) (int64, error) {
	var count int64
	for _, item := range f.items {
		if item.OrderID == orderID {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderRepo) ComputeOrderTotal(ctx context.Context, orderID uint) (decimal.Decimal, error) {
	total := decimal.NewFromInt(0)
	for _, item := range f.items {
		if item.OrderID != orderID {
			continue
		}
		product := f.productRepo.products[item.ProductID]
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

func (f *fakeOrderRepo) AddOrderItem(ctx context.Context, item *model.OrderItem) error {
	f.nextItemID++
	item.OrderItemID = f.nextItemID
	f.items[item.OrderItemID] = *item
	f.syncTotalSum(ctx, item.OrderID)
	return nil
}

func (f *fakeOrderRepo) GetOrderItemByID(ctx context.Context, orderItemID uint) (*model.OrderItem, error) {
	item, ok := f.items[orderItemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (f *fakeOrderRepo) DeleteOrderItem(ctx context.Context, orderItemID uint) error {
	item, ok := f.items[orderItemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.items, orderItemID)
	f.syncTotalSum(ctx, item.OrderID)
	return nil
}

func (f *fakeOrderRepo) syncTotalSum(ctx context.Context, orderID uint) {
	order, ok := f.orders[orderID]
	if !ok {
		return
	}
	total, _ := f.ComputeOrderTotal(ctx, orderID)
	order.TotalSum = total
	f.orders[orderID] = order
}

type fakeUserRepo struct {
	users  map[uint]model.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]model.User{}}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	user.UserID = f.nextID
	f.users[user.UserID] = *user
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, userID uint) error {
	delete(f.users, userID)
	return nil
}

type fakeReviewRepo struct {
	reviews map[uint]model.ProductReview
	nextID  uint
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uint]model.ProductReview{}}
}

func (f *fakeReviewRepo) CreateReview(ctx context.Context, review *model.ProductReview) error {
	f.nextID++
	review.ReviewID = f.nextID
	f.reviews[review.ReviewID] = *review
	return nil
}

func (f *fakeReviewRepo) GetReviewByID(ctx context.Context, reviewID uint) (*model.ProductReview, error) {
	review, ok := f.reviews[reviewID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &review, nil
}

func (f *fakeReviewRepo) GetReviewsByProductID(ctx context.Context, productID uint) ([]model.ProductReview, error) {
	var reviews []model.ProductReview
	for _, review := range f.reviews {
		if review.ProductID == productID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ReviewID < reviews[j].ReviewID })
	return reviews, nil
}

func (f *fakeReviewRepo) UpdateReview(ctx context.Context, review *model.ProductReview) error {
	if _, ok := f.reviews[review.ReviewID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.reviews[review.ReviewID] = *review
	return nil
}

func (f *fakeReviewRepo) DeleteReview(ctx context.Context, reviewID uint) error {
	delete(f.reviews, reviewID)
	return nil
}
