package repositories

import (
	"errors"
	"time"

	"quickgig/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrAccessTokenNotFound - токен отозван или никогда не выдавался
	ErrAccessTokenNotFound = errors.New("access token not found")
)

// AccessTokenRepository - выданные bearer-токены
type AccessTokenRepository interface {
	Create(db *gorm.DB, token *models.AccessToken) error

	FindByID(db *gorm.DB, id uint) (*models.AccessToken, error)

	// Touch обновляет last_used_at
	Touch(db *gorm.DB, id uint, at time.Time) error

	// DeleteByID отзывает токен
	DeleteByID(db *gorm.DB, id uint) error
}

type accessTokenRepository struct{}

func NewAccessTokenRepository() AccessTokenRepository {
	return &accessTokenRepository{}
}

func (r *accessTokenRepository) Create(db *gorm.DB, token *models.AccessToken) error {
	return db.Create(token).Error
}

func (r *accessTokenRepository) FindByID(db *gorm.DB, id uint) (*models.AccessToken, error) {
	var token models.AccessToken
	if err := db.First(&token, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *accessTokenRepository) Touch(db *gorm.DB, id uint, at time.Time) error {
	return db.Model(&models.AccessToken{}).Where("id = ?", id).UpdateColumn("last_used_at", at).Error
}

func (r *accessTokenRepository) DeleteByID(db *gorm.DB, id uint) error {
	result := db.Delete(&models.AccessToken{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccessTokenNotFound
	}
	return nil
}
