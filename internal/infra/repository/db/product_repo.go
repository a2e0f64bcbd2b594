package db

import (
	"context"

	"github.com/RowdyKGZ/python12-shop/internal/domain/model"
	"github.com/shopspring/decimal"
)

type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID uint) (*model.Product, error)
	GetProductWithReviews(ctx context.Context, productID uint) (*model.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, productID uint) error
	CountOrderItemRefs(ctx context.Context, productID uint) (int64, error)
}

// ProductFilter 商品列表查詢條件
// PriceFrom/PriceTo為閉區間，Search為title/description模糊查詢
type ProductFilter struct {
	PriceFrom *decimal.Decimal
	PriceTo   *decimal.Decimal
	Search    string
	OrderBy   string // title或price, 前綴"-"為降冪
	Page      int
	PageSize  int
}

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductRepo) GetProductByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductWithReviews - 查詢商品明細, 連同評論一起預載
func (s *ProductRepo) GetProductWithReviews(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).Preload("Reviews").First(&product, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts - 依條件分頁查詢商品
func (s *ProductRepo) ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Product{})

	if filter.PriceFrom != nil {
		query = query.Where("price >= ?", *filter.PriceFrom)
	}
	if filter.PriceTo != nil {
		query = query.Where("price <= ?", *filter.PriceTo)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.OrderBy {
	case "title":
		query = query.Order("title ASC")
	case "-title":
		query = query.Order("title DESC")
	case "price":
		query = query.Order("price ASC")
	case "-price":
		query = query.Order("price DESC")
	default:
		query = query.Order("product_id ASC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	err := query.Find(&products).Error
	return products, total, err
}

func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

// DeleteProduct - 硬刪除商品, 若仍被訂單品項引用, DB會回傳外鍵錯誤
func (s *ProductRepo) DeleteProduct(ctx context.Context, productID uint) error {
	return s.db.WithContext(ctx).Delete(&model.Product{}, "product_id = ?", productID).Error
}

// CountOrderItemRefs - 計算商品被多少訂單品項引用
func (s *ProductRepo) CountOrderItemRefs(ctx context.Context, productID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}
