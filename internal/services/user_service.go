package services

import (
	"errors"

	"quickgig/internal/models"
	"quickgig/internal/repositories"
	"quickgig/internal/services/dto"
	"quickgig/pkg/apperrors"

	"gorm.io/gorm"
)

// RecentReviewsLimit - сколько последних отзывов показывать в профиле
const RecentReviewsLimit = 5

type UserService interface {
	// PublicProfile - имя, роль и рейтинг без контактов
	PublicProfile(db *gorm.DB, userID uint) (*dto.PublicProfileResponse, error)
}

type UserServiceImpl struct {
	userRepo   repositories.UserRepository
	reviewRepo repositories.ReviewRepository
	ratings    RatingService
}

func NewUserService(userRepo repositories.UserRepository, reviewRepo repositories.ReviewRepository, ratings RatingService) UserService {
	return &UserServiceImpl{
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		ratings:    ratings,
	}
}

func (s *UserServiceImpl) PublicProfile(db *gorm.DB, userID uint) (*dto.PublicProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}

	stats, err := s.ratings.For(db, user.ID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByTarget(db, user.ID, RecentReviewsLimit)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	return &dto.PublicProfileResponse{
		ID:            user.ID,
		Name:          user.Name,
		Role:          user.Role,
		Rating:        stats.Rating,
		ReviewsCount:  stats.ReviewsCount,
		RecentReviews: reviews,
		CreatedAt:     user.CreatedAt,
	}, nil
}
