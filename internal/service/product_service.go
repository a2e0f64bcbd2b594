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

type IProductService interface {
	ListProducts(ctx context.Context, filter db.ProductFilter) ([]model.Product, int64, error)
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
	CreateProduct(ctx context.Context, actor Actor, product *model.Product) error
	UpdateProduct(ctx context.Context, actor Actor, productID uint, patch ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, actor Actor, productID uint) error
}

// ProductPatch 部分更新欄位, nil代表不異動
type ProductPatch struct {
	Title       *string
	Price       *decimal.Decimal
	Description *string
}

type ProductService struct {
	productRepo db.IProductRepository
}

func NewProductService(productRepo db.IProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ListProducts - 商品列表, 任何人可讀
func (p *ProductService) ListProducts(ctx context.Context, filter db.ProductFilter) ([]model.Product, int64, error) {
	if filter.PriceFrom != nil && filter.PriceTo != nil && filter.PriceFrom.GreaterThan(*filter.PriceTo) {
		return nil, 0, apperr.New(apperr.InvalidArgumentCode, "price_from must not exceed price_to")
	}
	return p.productRepo.ListProducts(ctx, filter)
}

// GetProduct - 商品明細含評論, 任何人可讀
func (p *ProductService) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	product, err := p.productRepo.GetProductWithReviews(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "product not found")
		}
		return nil, err
	}
	return product, nil
}

// CreateProduct - 僅管理員
func (p *ProductService) CreateProduct(ctx context.Context, actor Actor, product *model.Product) error {
	if !actor.Authenticated {
		return apperr.New(apperr.UnauthenticatedCode, "authentication required")
	}
	if !CanCreateProduct(actor) {
		return apperr.New(apperr.UnauthorizedCode, "only admin can create products")
	}
	if err := validateProduct(product.Title, product.Price); err != nil {
		return err
	}
	return p.productRepo.CreateProduct(ctx, product)
}

// UpdateProduct - 僅管理員
func (p *ProductService) UpdateProduct(ctx context.Context, actor Actor, productID uint, patch ProductPatch) (*model.Product, error) {
	if !actor.Authenticated {
		return nil, apperr.New(apperr.UnauthenticatedCode, "authentication required")
	}
	if !CanUpdateProduct(actor) {
		return nil, apperr.New(apperr.UnauthorizedCode, "only admin can update products")
	}

	product, err := p.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "product not found")
		}
		return nil, err
	}

	if patch.Title != nil {
		product.Title = *patch.Title
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if err := validateProduct(product.Title, product.Price); err != nil {
		return nil, err
	}

	if err := p.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct - 僅管理員, 被訂單品項引用時拒絕刪除
func (p *ProductService) DeleteProduct(ctx context.Context, actor Actor, productID uint) error {
	if !actor.Authenticated {
		return apperr.New(apperr.UnauthenticatedCode, "authentication required")
	}
	if !CanDeleteProduct(actor) {
		return apperr.New(apperr.UnauthorizedCode, "only admin can delete products")
	}

	if _, err := p.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFoundCode, "product not found")
		}
		return err
	}

	refs, err := p.productRepo.CountOrderItemRefs(ctx, productID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperr.New(apperr.ConflictCode, "product is referenced by existing order items")
	}

	err = p.productRepo.DeleteProduct(ctx, productID)
	if err != nil {
		// 前面的計數與刪除非同一交易, 以DB外鍵約束做最後防線
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperr.New(apperr.ConflictCode, "product is referenced by existing order items")
		}
		return err
	}
	return nil
}

func validateProduct(title string, price decimal.Decimal) error {
	if title == "" {
		return apperr.New(apperr.InvalidArgumentCode, "title is required")
	}
	if price.IsNegative() {
		return apperr.New(apperr.InvalidArgumentCode, "price must not be negative")
	}
	return nil
}
