package dto

import (
	"time"

	"quickgig/internal/models"
)

// UserResponse - профиль пользователя. Rating заполняется для /me и публичного профиля.
type UserResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	Role         models.UserRole `json:"role"`
	Rating       *float64        `json:"rating,omitempty"`
	ReviewsCount *int64          `json:"reviews_count,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// WithRating добавляет рейтинг к профилю
func (r UserResponse) WithRating(stats models.RatingStats) UserResponse {
	rating, count := stats.Rating, stats.ReviewsCount
	r.Rating = &rating
	r.ReviewsCount = &count
	return r
}

// UserSummary - краткие данные пользователя во вложенных объектах
type UserSummary struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Role         models.UserRole `json:"role,omitempty"`
	Rating       float64         `json:"rating"`
	ReviewsCount int64           `json:"reviews_count"`
}

// PublicProfileResponse - GET /users/{id}. Телефон и email не раскрываются.
type PublicProfileResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Role          models.UserRole `json:"role"`
	Rating        float64         `json:"rating"`
	ReviewsCount  int64           `json:"reviews_count"`
	RecentReviews []models.Review `json:"recent_reviews"`
	CreatedAt     time.Time       `json:"created_at"`
}
