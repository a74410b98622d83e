package models

// Review - оценка одного пользователя другим
type Review struct {
	BaseModel
	FromUserID uint    `gorm:"not null;index" json:"from_user_id"`
	ToUserID   uint    `gorm:"not null;index" json:"to_user_id"`
	Rating     int     `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    *string `gorm:"type:text" json:"comment"`
}

// RatingStats - производный рейтинг пользователя, считается при каждом чтении
type RatingStats struct {
	Rating       float64 `json:"rating"`
	ReviewsCount int64   `json:"reviews_count"`
}
