package models

import "time"

// User - работник или работодатель. Рейтинг не хранится, см. RatingStats.
type User struct {
	BaseModel
	Name         string   `gorm:"size:120;not null" json:"name"`
	Phone        string   `gorm:"size:32;uniqueIndex;not null" json:"phone"`
	Email        string   `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
}

// AccessToken - выданный bearer-токен. Удаление строки отзывает токен.
type AccessToken struct {
	BaseModel
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	Name       string     `gorm:"size:64;not null" json:"name"`
	TokenHash  string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	LastUsedAt *time.Time `json:"last_used_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

// Expired сообщает, истек ли срок токена на момент now
func (t *AccessToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
