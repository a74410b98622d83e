package repositories

import (
	"quickgig/internal/models"

	"gorm.io/gorm"
)

// RatingRow - сырой агрегат отзывов (без округления)
type RatingRow struct {
	ToUserID     uint    `gorm:"column:to_user_id"`
	AvgRating    float64 `gorm:"column:avg_rating"`
	ReviewsCount int64   `gorm:"column:reviews_count"`
}

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error

	// ListByTarget - последние отзывы о пользователе, новые первыми
	ListByTarget(db *gorm.DB, userID uint, limit int) ([]models.Review, error)

	// Rating operations
	RatingFor(db *gorm.DB, userID uint) (RatingRow, error)
	RatingsFor(db *gorm.DB, userIDs []uint) (map[uint]RatingRow, error)
}

type reviewRepository struct{}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *reviewRepository) ListByTarget(db *gorm.DB, userID uint, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) RatingFor(db *gorm.DB, userID uint) (RatingRow, error) {
	row := RatingRow{ToUserID: userID}
	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS reviews_count").
		Where("to_user_id = ?", userID).
		Scan(&row).Error
	row.ToUserID = userID
	return row, err
}

// RatingsFor считает рейтинги списка пользователей одним запросом.
// Пользователи без отзывов в результат не попадают.
func (r *reviewRepository) RatingsFor(db *gorm.DB, userIDs []uint) (map[uint]RatingRow, error) {
	result := make(map[uint]RatingRow, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []RatingRow
	err := db.Model(&models.Review{}).
		Select("to_user_id, AVG(rating) AS avg_rating, COUNT(*) AS reviews_count").
		Where("to_user_id IN ?", userIDs).
		Group("to_user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ToUserID] = row
	}
	return result, nil
}
