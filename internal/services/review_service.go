package services

import (
	"errors"

	"quickgig/internal/auth"
	"quickgig/internal/logger"
	"quickgig/internal/metrics"
	"quickgig/internal/models"
	"quickgig/internal/repositories"
	"quickgig/internal/services/dto"
	"quickgig/internal/validator"
	"quickgig/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	// Submit сохраняет отзыв и возвращает пересчитанный рейтинг получателя
	Submit(db *gorm.DB, principal *auth.Principal, req *dto.CreateReviewRequest) (*dto.ReviewResult, error)
}

type ReviewServiceImpl struct {
	reviewRepo repositories.ReviewRepository
	userRepo   repositories.UserRepository
	ratings    RatingService
	validator  *validator.Validator
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	ratings RatingService,
	v *validator.Validator,
) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		ratings:    ratings,
		validator:  v,
	}
}

func (s *ReviewServiceImpl) Submit(db *gorm.DB, principal *auth.Principal, req *dto.CreateReviewRequest) (*dto.ReviewResult, error) {
	if !principal.Can(auth.PermReviewsWrite) {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	target, err := s.userRepo.FindByID(db, *req.ToUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrReviewTargetNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	if target.ID == principal.UserID {
		return nil, apperrors.ErrCannotReviewSelf
	}

	// TODO: не проверяется, что автор и получатель работали на общей завершенной смене,
	// и повторные отзывы той же паре не запрещены. Ограничения ждут решения продукта.
	review := &models.Review{
		FromUserID: principal.UserID,
		ToUserID:   target.ID,
		Rating:     *req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviewRepo.Create(db, review); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	stats, err := s.ratings.For(db, target.ID)
	if err != nil {
		return nil, err
	}

	metrics.ReviewsCreated.Inc()
	logger.CtxInfo(ctxOf(db), "review created", "review_id", review.ID, "target_id", target.ID)

	return &dto.ReviewResult{
		Review:             *review,
		TargetRating:       stats.Rating,
		TargetReviewsCount: stats.ReviewsCount,
	}, nil
}
