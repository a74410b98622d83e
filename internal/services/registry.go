package services

import (
	"time"

	"quickgig/internal/auth"
	"quickgig/internal/config"
	"quickgig/internal/email"
	"quickgig/internal/repositories"
	"quickgig/internal/validator"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	RatingService       RatingService
	ShiftService        ShiftService
	ApplicationService  ApplicationService
	ReviewService       ReviewService
	NotificationService NotificationService
	EmailService        email.Provider
}

// NewServiceContainer собирает сервисы поверх набора репозиториев
func NewServiceContainer(cfg *config.Config, repos repositories.Set, provider email.Provider) *ServiceContainer {
	v := validator.New(cfg.Identity.PhoneCountryCode)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	ratings := NewRatingService(repos.Reviews)
	notifier := NewNotificationService(provider, repos.Users, cfg.Identity.EmailDomain)

	return &ServiceContainer{
		AuthService:         NewAuthService(repos.Users, repos.Tokens, ratings, tokens, v, cfg.Identity.EmailDomain),
		UserService:         NewUserService(repos.Users, repos.Reviews, ratings),
		RatingService:       ratings,
		ShiftService:        NewShiftService(repos.Shifts, repos.Applications, repos.Users, ratings, v),
		ApplicationService:  NewApplicationService(repos.Applications, repos.Shifts, repos.Users, ratings, notifier, v),
		ReviewService:       NewReviewService(repos.Reviews, repos.Users, ratings, v),
		NotificationService: notifier,
		EmailService:        provider,
	}
}
