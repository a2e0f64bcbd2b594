package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RowdyKGZ/python12-shop/internal/api/dto"
	"github.com/RowdyKGZ/python12-shop/internal/constants"
	"github.com/RowdyKGZ/python12-shop/internal/domain/model"
	"github.com/RowdyKGZ/python12-shop/internal/infra/repository/db"
	"github.com/RowdyKGZ/python12-shop/internal/service"
	"github.com/RowdyKGZ/python12-shop/internal/util"
	"github.com/RowdyKGZ/python12-shop/pkg/api"
	"github.com/RowdyKGZ/python12-shop/pkg/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productService service.IProductService
	reviewService  service.IReviewService
}

func NewProductHandler(productService service.IProductService, reviewService service.IReviewService) *ProductHandler {
	if productService == nil || reviewService == nil {
		panic("productService and reviewService cannot be nil")
	}
	return &ProductHandler{
		productService: productService,
		reviewService:  reviewService,
	}
}

func convertProductToDTO(product *model.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ProductID:   product.ProductID,
		Title:       product.Title,
		Price:       product.Price,
		Description: product.Description,
	}
}

func convertReviewToDTO(review *model.ProductReview) dto.ReviewDTO {
	return dto.ReviewDTO{
		ReviewID:  review.ReviewID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Body:      review.Body,
	}
}

// 解析列表查詢參數, price_from/price_to格式錯誤一律回InvalidArgument
func parseProductFilter(r *http.Request) (db.ProductFilter, error) {
	filter := db.ProductFilter{
		Search:   r.URL.Query().Get("search"),
		OrderBy:  r.URL.Query().Get("ordering"),
		Page:     constants.DefaultPaging,
		PageSize: constants.DefaultPagingSize,
	}

	if v := r.URL.Query().Get("price_from"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return filter, apperr.New(apperr.InvalidArgumentCode, "price_from must be a decimal number")
		}
		filter.PriceFrom = &d
	}
	if v := r.URL.Query().Get("price_to"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return filter, apperr.New(apperr.InvalidArgumentCode, "price_to must be a decimal number")
		}
		filter.PriceTo = &d
	}

	if filter.OrderBy != "" {
		field := filter.OrderBy
		if field[0] == '-' {
			field = field[1:]
		}
		if _, ok := constants.ProductOrderingFields[field]; !ok {
			return filter, apperr.Newf(apperr.InvalidArgumentCode, "unsupported ordering field: %s", field)
		}
	}

	if v := r.URL.Query().Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return filter, apperr.New(apperr.InvalidArgumentCode, "page must be a positive integer")
		}
		filter.Page = page
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil || pageSize < 1 || pageSize > constants.MaxPagingSize {
			return filter, apperr.Newf(apperr.InvalidArgumentCode, "page_size must be between 1 and %d", constants.MaxPagingSize)
		}
		filter.PageSize = pageSize
	}

	return filter, nil
}

func parseIDParam(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil {
		return 0, apperr.Newf(apperr.InvalidArgumentCode, "%s must be a positive integer", name)
	}
	return uint(id), nil
}

// @Summary list products
// @use list products with price range, search and ordering
// @Tags product
// @Accept json
// @Produce json
// @Param price_from query string false "inclusive lower price bound"
// @Param price_to query string false "inclusive upper price bound"
// @Param search query string false "free text search over title and description"
// @Param ordering query string false "title or price, prefix - for descending"
// @Success 200 {object} api.Response{data=[]dto.ProductDTO} "success"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /products [get]
func (p *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	ctx := r.Context()

	products, total, err := p.productService.ListProducts(ctx, filter)
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	productDTOs := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		productDTOs = append(productDTOs, convertProductToDTO(&products[i]))
	}

	api.SuccessJSON(w, productDTOs, dto.Pagination{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	})
}

// @Summary get product details
// @use get one product, reviews included
// @Tags product
// @Accept json
// @Produce json
// @Param id path int true "product id"
// @Success 200 {object} api.Response{data=dto.ProductDetailsDTO} "success"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /products/{id} [get]
func (p *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		appErr := err.(*apperr.AppError)
		api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		return
	}

	ctx := r.Context()

	product, err := p.productService.GetProduct(ctx, productID)
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	details := dto.ProductDetailsDTO{
		ProductDTO: convertProductToDTO(product),
		Reviews:    make([]dto.ReviewDTO, 0, len(product.Reviews)),
	}
	for i := range product.Reviews {
		details.Reviews = append(details.Reviews, convertReviewToDTO(&product.Reviews[i]))
	}

	api.SuccessJSON(w, details, nil)
}

// @Summary create product
// @use create a product, admin only
// @Tags product
// @Accept json
// @Produce json
// @Param product body dto.CreateProductDTO true "product fields"
// @Success 200 {object} api.Response{data=dto.ProductDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /products [post]
func (p *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		api.ErrorJSON(w, int(apperr.BadRequestCode), err, apperr.ErrStrMap[apperr.BadRequestCode])
		return
	}

	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	product := &model.Product{
		Title:       createDTO.Title,
		Price:       createDTO.Price,
		Description: createDTO.Description,
	}
	if err := p.productService.CreateProduct(ctx, actor, product); err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertProductToDTO(product), nil)
}

// @Summary update product
// @use update a product, admin only, omitted fields keep current value
// @Tags product
// @Accept json
// @Produce json
// @Param id path int true "product id"
// @Param product body dto.UpdateProductDTO true "fields to update"
// @Success 200 {object} api.Response{data=dto.ProductDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /products/{id} [patch]
func (p *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		appErr := err.(*apperr.AppError)
		api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		return
	}

	var updateDTO dto.UpdateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		api.ErrorJSON(w, int(apperr.BadRequestCode), err, apperr.ErrStrMap[apperr.BadRequestCode])
		return
	}

	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	product, err := p.productService.UpdateProduct(ctx, actor, productID, service.ProductPatch{
		Title:       updateDTO.Title,
		Price:       updateDTO.Price,
		Description: updateDTO.Description,
	})
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertProductToDTO(product), nil)
}

// @Summary delete product
// @use delete a product, admin only, rejected while referenced by order items
// @Tags product
// @Accept json
// @Produce json
// @Param id path int true "product id"
// @Success 200 {object} api.Response{data=string} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 409 {object} api.ResponseError{data=string} "ConflictCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /products/{id} [delete]
func (p *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		appErr := err.(*apperr.AppError)
		api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		return
	}

	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	if err := p.productService.DeleteProduct(ctx, actor, productID); err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, nil, nil)
}

// @Summary list product reviews
// @use list all reviews of a product
// @Tags product
// @Accept json
// @Produce json
// @Param id path int true "product id"
// @Success 200 {object} api.Response{data=[]dto.ReviewDTO} "success"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /products/{id}/reviews [get]
func (p *ProductHandler) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		appErr := err.(*apperr.AppError)
		api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		return
	}

	ctx := r.Context()

	reviews, err := p.reviewService.ListProductReviews(ctx, productID)
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	reviewDTOs := make([]dto.ReviewDTO, 0, len(reviews))
	for i := range reviews {
		reviewDTOs = append(reviewDTOs, convertReviewToDTO(&reviews[i]))
	}

	api.SuccessJSON(w, reviewDTOs, nil)
}
