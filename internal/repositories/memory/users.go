package memory

import (
	"time"

	"quickgig/internal/models"
	"quickgig/internal/repositories"

	"gorm.io/gorm"
)

type userRepository struct{ s *Store }

func (r *userRepository) Create(_ *gorm.DB, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Phone == user.Phone || u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.s.stamp(&user.BaseModel, "users")
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) FindByID(_ *gorm.DB, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepository) FindByPhone(_ *gorm.DB, phone string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Phone == phone {
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *userRepository) ExistsByPhone(_ *gorm.DB, phone string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) ExistsByEmail(_ *gorm.DB, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) FindByIDs(_ *gorm.DB, ids []uint) (map[uint]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[uint]models.User, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			result[id] = u
		}
	}
	return result, nil
}

func (r *userRepository) Count(_ *gorm.DB) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}

type accessTokenRepository struct{ s *Store }

func (r *accessTokenRepository) Create(_ *gorm.DB, token *models.AccessToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&token.BaseModel, "access_tokens")
	r.s.tokens[token.ID] = *token
	return nil
}

func (r *accessTokenRepository) FindByID(_ *gorm.DB, id uint) (*models.AccessToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tokens[id]
	if !ok {
		return nil, repositories.ErrAccessTokenNotFound
	}
	return &t, nil
}

func (r *accessTokenRepository) Touch(_ *gorm.DB, id uint, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tokens[id]
	if !ok {
		return repositories.ErrAccessTokenNotFound
	}
	t.LastUsedAt = &at
	r.s.tokens[id] = t
	return nil
}

func (r *accessTokenRepository) DeleteByID(_ *gorm.DB, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tokens[id]; !ok {
		return repositories.ErrAccessTokenNotFound
	}
	delete(r.s.tokens, id)
	return nil
}
