package dto

import (
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ProductID   uint            `json:"product_id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// ProductDetailsDTO 明細多帶評論
type ProductDetailsDTO struct {
	ProductDTO
	Reviews []ReviewDTO `json:"reviews"`
}

type CreateProductDTO struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// UpdateProductDTO 部分更新, 未帶的欄位不異動
type UpdateProductDTO struct {
	Title       *string          `json:"title"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}
