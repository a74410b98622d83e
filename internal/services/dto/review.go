package dto

import "quickgig/internal/models"

// CreateReviewRequest - отзыв о пользователе
type CreateReviewRequest struct {
	Binding

	ToUserID *uint   `json:"to_user_id" validate:"required"`
	Rating   *int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  *string `json:"comment" validate:"omitempty,max=1000"`
}

// ReviewResult - созданный отзыв и пересчитанный рейтинг получателя
type ReviewResult struct {
	Review             models.Review `json:"data"`
	TargetRating       float64       `json:"target_rating"`
	TargetReviewsCount int64         `json:"target_reviews_count"`
}
