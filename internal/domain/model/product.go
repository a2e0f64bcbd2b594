package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID   uint            `gorm:"primaryKey" json:"product_id"`
	Title       string          `gorm:"not null;type:varchar(255)" json:"title"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Description string          `gorm:"not null;type:text" json:"description"`
	Reviews     []ProductReview `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	OrderItems  []OrderItem     `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"` // 被訂單引用的商品不可刪除
	BaseModel
}

type ProductReview struct {
	ReviewID  uint   `gorm:"primaryKey" json:"review_id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	UserID    uint   `gorm:"not null;index" json:"user_id"` // 評論作者
	Rating    int    `gorm:"not null" json:"rating"`
	Body      string `gorm:"not null;type:text" json:"body"`
	BaseModel
}

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

func IsValidRating(rating int) bool {
	return rating >= MinReviewRating && rating <= MaxReviewRating
}
