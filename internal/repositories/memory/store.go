// Package memory - реализация репозиториев в памяти процесса.
// Используется драйвером "memory" и в тестах сервисов и хендлеров.
package memory

import (
	"sort"
	"sync"
	"time"

	"quickgig/internal/models"
	"quickgig/internal/repositories"
)

// Store хранит все таблицы под одной блокировкой
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	users        map[uint]models.User
	tokens       map[uint]models.AccessToken
	shifts       map[uint]models.Shift
	applications map[uint]models.Application
	reviews      map[uint]models.Review

	nextID map[string]uint
}

func NewStore() *Store {
	return &Store{
		now:          func() time.Time { return time.Now().UTC() },
		users:        make(map[uint]models.User),
		tokens:       make(map[uint]models.AccessToken),
		shifts:       make(map[uint]models.Shift),
		applications: make(map[uint]models.Application),
		reviews:      make(map[uint]models.Review),
		nextID:       make(map[string]uint),
	}
}

// SetClock подменяет источник времени (для тестов)
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Repositories возвращает набор репозиториев поверх хранилища
func (s *Store) Repositories() repositories.Set {
	return repositories.Set{
		Users:        &userRepository{s},
		Tokens:       &accessTokenRepository{s},
		Shifts:       &shiftRepository{s},
		Applications: &applicationRepository{s},
		Reviews:      &reviewRepository{s},
	}
}

func (s *Store) id(table string) uint {
	s.nextID[table]++
	return s.nextID[table]
}

func (s *Store) stamp(base *models.BaseModel, table string) {
	now := s.now()
	base.ID = s.id(table)
	base.CreatedAt = now
	base.UpdatedAt = now
}

// newestFirst сортирует по created_at, затем по id, по убыванию
func newestFirst(a, b models.BaseModel) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func oldestFirst(a, b models.BaseModel) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func sortApplications(apps []models.Application, less func(a, b models.BaseModel) bool) {
	sort.Slice(apps, func(i, j int) bool { return less(apps[i].BaseModel, apps[j].BaseModel) })
}
