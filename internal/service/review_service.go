package service

import (
	"context"
	"errors"

	"github.com/RowdyKGZ/python12-shop/internal/domain/model"
	"github.com/RowdyKGZ/python12-shop/internal/infra/repository/db"
	"github.com/RowdyKGZ/python12-shop/pkg/apperr"
	"gorm.io/gorm"
)

type IReviewService interface {
	ListProductReviews(ctx context.Context, productID uint) ([]model.ProductReview, error)
	CreateReview(ctx context.Context, actor Actor, productID uint, rating int, body string) (*model.ProductReview, error)
	UpdateReview(ctx context.Context, actor Actor, reviewID uint, patch ReviewPatch) (*model.ProductReview, error)
	DeleteReview(ctx context.Context, actor Actor, reviewID uint) error
}

// ReviewPatch 部分更新欄位, nil代表不異動
type ReviewPatch struct {
	Rating *int
	Body   *string
}

type ReviewService struct {
	reviewRepo  db.IReviewRepository
	productRepo db.IProductRepository
}

func NewReviewService(reviewRepo db.IReviewRepository, productRepo db.IProductRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// ListProductReviews - 商品評論列表, 任何人可讀
func (s *ReviewService) ListProductReviews(ctx context.Context, productID uint) ([]model.ProductReview, error) {
	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "product not found")
		}
		return nil, err
	}
	return s.reviewRepo.GetReviewsByProductID(ctx, productID)
}

// CreateReview - 需登入, 評論一律掛在呼叫者名下
func (s *ReviewService) CreateReview(ctx context.Context, actor Actor, productID uint, rating int, body string) (*model.ProductReview, error) {
	if !CanCreateReview(actor) {
		return nil, apperr.New(apperr.UnauthenticatedCode, "authentication required")
	}
	if err := validateReview(rating, body); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "product not found")
		}
		return nil, err
	}

	review := &model.ProductReview{
		ProductID: productID,
		UserID:    actor.UserID,
		Rating:    rating,
		Body:      body,
	}
	if err := s.reviewRepo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview - 僅作者本人或管理員
func (s *ReviewService) UpdateReview(ctx context.Context, actor Actor, reviewID uint, patch ReviewPatch) (*model.ProductReview, error) {
	if !actor.Authenticated {
		return nil, apperr.New(apperr.UnauthenticatedCode, "authentication required")
	}

	review, err := s.reviewRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "review not found")
		}
		return nil, err
	}

	if !CanModifyReview(actor, review.UserID) {
		return nil, apperr.New(apperr.UnauthorizedCode, "only the author or admin can modify this review")
	}

	if patch.Rating != nil {
		review.Rating = *patch.Rating
	}
	if patch.Body != nil {
		review.Body = *patch.Body
	}
	if err := validateReview(review.Rating, review.Body); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.UpdateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview - 僅作者本人或管理員
func (s *ReviewService) DeleteReview(ctx context.Context, actor Actor, reviewID uint) error {
	if !actor.Authenticated {
		return apperr.New(apperr.UnauthenticatedCode, "authentication required")
	}

	review, err := s.reviewRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFoundCode, "review not found")
		}
		return err
	}

	if !CanModifyReview(actor, review.UserID) {
		return apperr.New(apperr.UnauthorizedCode, "only the author or admin can delete this review")
	}

	return s.reviewRepo.DeleteReview(ctx, reviewID)
}

func validateReview(rating int, body string) error {
	if !model.IsValidRating(rating) {
		return apperr.Newf(apperr.InvalidArgumentCode, "rating must be between %d and %d", model.MinReviewRating, model.MaxReviewRating)
	}
	if body == "" {
		return apperr.New(apperr.InvalidArgumentCode, "body is required")
	}
	return nil
}
