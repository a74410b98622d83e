package services

import (
	"errors"
	"strings"
	"time"

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

// DefaultClientName - имя токена, если клиент не прислал X-Client-Name
const DefaultClientName = "api"

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest, clientName string) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest, clientName string) (*dto.AuthResponse, error)

	// Authenticate проверяет bearer-токен и возвращает его владельца
	Authenticate(db *gorm.DB, rawToken string) (*auth.Principal, error)

	// Logout отзывает только токен текущего запроса
	Logout(db *gorm.DB, principal *auth.Principal) error
	Me(db *gorm.DB, principal *auth.Principal) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	tokenRepo   repositories.AccessTokenRepository
	ratings     RatingService
	tokens      *auth.TokenManager
	validator   *validator.Validator
	emailDomain string
	now         func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.AccessTokenRepository,
	ratings RatingService,
	tokens *auth.TokenManager,
	v *validator.Validator,
	emailDomain string,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		ratings:     ratings,
		tokens:      tokens,
		validator:   v,
		emailDomain: emailDomain,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Register - регистрация нового пользователя
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest, clientName string) (*dto.AuthResponse, error) {
	// пустая строка в email - то же, что отсутствующее поле
	if req.Email != nil && strings.TrimSpace(*req.Email) == "" {
		req.Email = nil
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	address := s.SynthesizedEmail(req.Phone)
	if req.Email != nil {
		address = strings.TrimSpace(*req.Email)
	}

	// Уникальность проверяется как часть валидации, чтобы вернуть ошибки по полям
	taken, err := s.takenFields(db, req.Phone, address)
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		return nil, apperrors.ValidationError(taken...)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Phone:        req.Phone,
		Email:        address,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		// проиграли гонку с параллельной регистрацией
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			taken, lookupErr := s.takenFields(db, req.Phone, address)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if len(taken) == 0 {
				taken = []apperrors.FieldError{phoneTakenError}
			}
			return nil, apperrors.ValidationError(taken...)
		}
		return nil, apperrors.DatabaseError(err)
	}

	token, err := s.issueToken(db, user, clientName)
	if err != nil {
		return nil, err
	}

	metrics.AuthEvents.WithLabelValues("register").Inc()
	logger.CtxInfo(ctxOf(db), "user registered", "new_user_id", user.ID, "role", user.Role)

	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

var (
	phoneTakenError = apperrors.FieldError{Field: "phone", Message: "The phone has already been taken."}
	emailTakenError = apperrors.FieldError{Field: "email", Message: "The email has already been taken."}
)

// takenFields - занятые телефон и email, в порядке полей формы
func (s *AuthServiceImpl) takenFields(db *gorm.DB, phone, address string) ([]apperrors.FieldError, error) {
	var taken []apperrors.FieldError

	phoneTaken, err := s.userRepo.ExistsByPhone(db, phone)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if phoneTaken {
		taken = append(taken, phoneTakenError)
	}

	emailTaken, err := s.userRepo.ExistsByEmail(db, address)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if emailTaken {
		taken = append(taken, emailTakenError)
	}
	return taken, nil
}

// Login - аутентификация по телефону и паролю
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest, clientName string) (*dto.AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByPhone(db, req.Phone)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			metrics.AuthEvents.WithLabelValues("login_failed").Inc()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		metrics.AuthEvents.WithLabelValues("login_failed").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(db, user, clientName)
	if err != nil {
		return nil, err
	}

	metrics.AuthEvents.WithLabelValues("login").Inc()
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

func (s *AuthServiceImpl) Authenticate(db *gorm.DB, rawToken string) (*auth.Principal, error) {
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}
	tokenID, err := claims.TokenID()
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	record, err := s.tokenRepo.FindByID(db, tokenID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccessTokenNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, apperrors.DatabaseError(err)
	}

	now := s.now()
	if record.UserID != claims.UserID || !auth.NonceMatches(claims.Nonce, record.TokenHash) || record.Expired(now) {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(db, record.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, apperrors.DatabaseError(err)
	}

	if err := s.tokenRepo.Touch(db, record.ID, now); err != nil {
		logger.CtxWithError(ctxOf(db), "failed to touch access token", err, "token_id", record.ID)
	}

	return &auth.Principal{UserID: user.ID, Role: user.Role, TokenID: record.ID}, nil
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, principal *auth.Principal) error {
	if principal == nil {
		return apperrors.ErrUnauthenticated
	}

	err := s.tokenRepo.DeleteByID(db, principal.TokenID)
	if err != nil && !errors.Is(err, repositories.ErrAccessTokenNotFound) {
		return apperrors.DatabaseError(err)
	}

	metrics.AuthEvents.WithLabelValues("logout").Inc()
	return nil
}

func (s *AuthServiceImpl) Me(db *gorm.DB, principal *auth.Principal) (*dto.UserResponse, error) {
	if principal == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(db, principal.UserID)
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

	resp := dto.NewUserResponse(user).WithRating(stats)
	return &resp, nil
}

// SynthesizedEmail - адрес для пользователя, не указавшего email
func (s *AuthServiceImpl) SynthesizedEmail(phone string) string {
	return phone + "@" + s.emailDomain
}

func (s *AuthServiceImpl) issueToken(db *gorm.DB, user *models.User, clientName string) (string, error) {
	if clientName == "" {
		clientName = DefaultClientName
	}
	if len(clientName) > 64 {
		clientName = clientName[:64]
	}

	nonce, hash, err := s.tokens.NewNonce()
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	now := s.now()
	record := &models.AccessToken{
		UserID:    user.ID,
		Name:      clientName,
		TokenHash: hash,
		ExpiresAt: s.tokens.ExpiresAt(now),
	}
	if err := s.tokenRepo.Create(db, record); err != nil {
		return "", apperrors.DatabaseError(err)
	}

	token, err := s.tokens.Sign(user.ID, record.ID, nonce, now, record.ExpiresAt)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return token, nil
}
