package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RowdyKGZ/python12-shop/internal/api/dto"
	"github.com/RowdyKGZ/python12-shop/internal/service"
	"github.com/RowdyKGZ/python12-shop/internal/util"
	"github.com/RowdyKGZ/python12-shop/pkg/api"
	"github.com/RowdyKGZ/python12-shop/pkg/apperr"
)

type ReviewHandler struct {
	reviewService service.IReviewService
}

func NewReviewHandler(reviewService service.IReviewService) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// @Summary create review
// @use create a review, attributed to the caller
// @Tags review
// @Accept json
// @Produce json
// @Param review body dto.CreateReviewDTO true "review fields"
// @Success 200 {object} api.Response{data=dto.ReviewDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		api.ErrorJSON(w, int(apperr.BadRequestCode), err, apperr.ErrStrMap[apperr.BadRequestCode])
		return
	}

	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	review, err := h.reviewService.CreateReview(ctx, actor, createDTO.ProductID, createDTO.Rating, createDTO.Body)
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertReviewToDTO(review), nil)
}

// @Summary update review
// @use update a review, author or admin only
// @Tags review
// @Accept json
// @Produce json
// @Param id path int true "review id"
// @Param review body dto.UpdateReviewDTO true "fields to update"
// @Success 200 {object} api.Response{data=dto.ReviewDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /reviews/{id} [patch]
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := parseIDParam(r, "id")
	if err != nil {
		appErr := err.(*apperr.AppError)
		api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		return
	}

	var updateDTO dto.UpdateReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		api.ErrorJSON(w, int(apperr.BadRequestCode), err, apperr.ErrStrMap[apperr.BadRequestCode])
		return
	}

	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	review, err := h.reviewService.UpdateReview(ctx, actor, reviewID, service.ReviewPatch{
		Rating: updateDTO.Rating,
		Body:   updateDTO.Body,
	})
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertReviewToDTO(review), nil)
}

// @Summary delete review
// @use delete a review, author or admin only
// @Tags review
// @Accept json
// @Produce json
// @Param id path int true "review id"
// @Success 200 {object} api.Response{data=string} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := parseIDParam(r, "id")
	if err != nil {
		appErr := err.(*apperr.AppError)
		api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		return
	}

	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	if err := h.reviewService.DeleteReview(ctx, actor, reviewID); err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, nil, nil)
}
