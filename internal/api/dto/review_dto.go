package dto

type ReviewDTO struct {
	ReviewID  uint   `json:"review_id"`
	ProductID uint   `json:"product_id"`
	UserID    uint   `json:"user_id"`
	Rating    int    `json:"rating"`
	Body      string `json:"body"`
}

type CreateReviewDTO struct {
	ProductID uint   `json:"product_id"`
	Rating    int    `json:"rating"`
	Body      string `json:"body"`
}

// UpdateReviewDTO 部分更新, 未帶的欄位不異動
type UpdateReviewDTO struct {
	Rating *int    `json:"rating"`
	Body   *string `json:"body"`
}
