package services

import (
	"quickgig/internal/models"
	"quickgig/internal/repositories"
	"quickgig/pkg/apperrors"

	"gorm.io/gorm"
)

// RatingService считает рейтинг пользователя по отзывам о нем.
// Значение не кешируется и пересчитывается при каждом чтении.
type RatingService interface {
	For(db *gorm.DB, userID uint) (models.RatingStats, error)

	// ForMany возвращает рейтинг для каждого id, без отзывов - нулевой
	ForMany(db *gorm.DB, userIDs []uint) (map[uint]models.RatingStats, error)
}

type RatingServiceImpl struct {
	reviewRepo repositories.ReviewRepository
}

func NewRatingService(reviewRepo repositories.ReviewRepository) RatingService {
	return &RatingServiceImpl{reviewRepo: reviewRepo}
}

func (s *RatingServiceImpl) For(db *gorm.DB, userID uint) (models.RatingStats, error) {
	row, err := s.reviewRepo.RatingFor(db, userID)
	if err != nil {
		return models.RatingStats{}, apperrors.DatabaseError(err)
	}
	return toStats(row), nil
}

func (s *RatingServiceImpl) ForMany(db *gorm.DB, userIDs []uint) (map[uint]models.RatingStats, error) {
	ids := uniqueIDs(userIDs)
	rows, err := s.reviewRepo.RatingsFor(db, ids)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	result := make(map[uint]models.RatingStats, len(ids))
	for _, id := range ids {
		result[id] = toStats(rows[id])
	}
	return result, nil
}

func toStats(row repositories.RatingRow) models.RatingStats {
	if row.ReviewsCount == 0 {
		return models.RatingStats{}
	}
	return models.RatingStats{
		Rating:       roundRating(row.AvgRating),
		ReviewsCount: row.ReviewsCount,
	}
}
