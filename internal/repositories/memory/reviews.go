package memory

import (
	"sort"

	"quickgig/internal/models"
	"quickgig/internal/repositories"

	"gorm.io/gorm"
)

type reviewRepository struct{ s *Store }

func (r *reviewRepository) Create(_ *gorm.DB, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&review.BaseModel, "reviews")
	r.s.reviews[review.ID] = *review
	return nil
}

func (r *reviewRepository) ListByTarget(_ *gorm.DB, userID uint, limit int) ([]models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reviews := make([]models.Review, 0)
	for _, review := range r.s.reviews {
		if review.ToUserID == userID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return newestFirst(reviews[i].BaseModel, reviews[j].BaseModel) })
	if limit > 0 && len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews, nil
}

func (r *reviewRepository) RatingFor(_ *gorm.DB, userID uint) (repositories.RatingRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.aggregate(userID), nil
}

func (r *reviewRepository) RatingsFor(_ *gorm.DB, userIDs []uint) (map[uint]repositories.RatingRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[uint]repositories.RatingRow, len(userIDs))
	for _, id := range userIDs {
		if row := r.aggregate(id); row.ReviewsCount > 0 {
			result[id] = row
		}
	}
	return result, nil
}

func (r *reviewRepository) aggregate(userID uint) repositories.RatingRow {
	row := repositories.RatingRow{ToUserID: userID}
	var sum int64
	for _, review := range r.s.reviews {
		if review.ToUserID == userID {
			sum += int64(review.Rating)
			row.ReviewsCount++
		}
	}
	if row.ReviewsCount > 0 {
		row.AvgRating = float64(sum) / float64(row.ReviewsCount)
	}
	return row
}
