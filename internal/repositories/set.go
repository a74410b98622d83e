package repositories

// Set - репозитории, с которыми работают сервисы
type Set struct {
	Users        UserRepository
	Tokens       AccessTokenRepository
	Shifts       ShiftRepository
	Applications ApplicationRepository
	Reviews      ReviewRepository
}

// NewGormSet возвращает репозитории поверх gorm
func NewGormSet() Set {
	return Set{
		Users:        NewUserRepository(),
		Tokens:       NewAccessTokenRepository(),
		Shifts:       NewShiftRepository(),
		Applications: NewApplicationRepository(),
		Reviews:      NewReviewRepository(),
	}
}
