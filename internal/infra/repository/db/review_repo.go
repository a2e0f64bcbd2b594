package db

import (
	"context"

	"github.com/RowdyKGZ/python12-shop/internal/domain/model"
)

type IReviewRepository interface {
	CreateReview(ctx context.Context, review *model.ProductReview) error
	GetReviewByID(ctx context.Context, reviewID uint) (*model.ProductReview, error)
	GetReviewsByProductID(ctx context.Context, productID uint) ([]model.ProductReview, error)
	UpdateReview(ctx context.Context, review *model.ProductReview) error
	DeleteReview(ctx context.Context, reviewID uint) error
}

type ReviewRepo struct {
	db *DbDao
}

func NewReviewRepo(db *DbDao) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (s *ReviewRepo) CreateReview(ctx context.Context, review *model.ProductReview) error {
	return s.db.WithContext(ctx).Create(review).Error
}

func (s *ReviewRepo) GetReviewByID(ctx context.Context, reviewID uint) (*model.ProductReview, error) {
	var review model.ProductReview
	err := s.db.WithContext(ctx).First(&review, "review_id = ?", reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetReviewsByProductID - 查詢商品的所有評論, 新的在前
func (s *ReviewRepo) GetReviewsByProductID(ctx context.Context, productID uint) ([]model.ProductReview, error) {
	var reviews []model.ProductReview
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (s *ReviewRepo) UpdateReview(ctx context.Context, review *model.ProductReview) error {
	return s.db.WithContext(ctx).Save(review).Error
}

func (s *ReviewRepo) DeleteReview(ctx context.Context, reviewID uint) error {
	return s.db.WithContext(ctx).Delete(&model.ProductReview{}, "review_id = ?", reviewID).Error
}
