package database

import (
	"fmt"
	"time"

	"quickgig/internal/auth"
	"quickgig/internal/logger"
	"quickgig/internal/models"
	"quickgig/internal/repositories"

	"gorm.io/gorm"
)

// DemoPassword - пароль обоих демо-пользователей
const DemoPassword = "123456"

// SeedDemo заполняет пустую базу демо-данными: работодатель, работник,
// три смены, один отклик и один отзыв. Непустая база не меняется.
func SeedDemo(db *gorm.DB, repos repositories.Set, now time.Time) error {
	count, err := repos.Users.Count(db)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		logger.Info("Demo data skipped: users table is not empty", "users", count)
		return nil
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	employer := &models.User{
		Name:         "Cafe Central",
		Phone:        "380671112233",
		Email:        "cafe@quickgig.app",
		PasswordHash: hash,
		Role:         models.UserRoleEmployer,
	}
	worker := &models.User{
		Name:         "Alex Ivanov",
		Phone:        "380673334455",
		Email:        "alex@quickgig.app",
		PasswordHash: hash,
		Role:         models.UserRoleWorker,
	}
	for _, u := range []*models.User{employer, worker} {
		if err := repos.Users.Create(db, u); err != nil {
			return fmt.Errorf("create demo user %s: %w", u.Phone, err)
		}
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	at := func(days, hour int) time.Time {
		return day.AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
	}

	shifts := []*models.Shift{
		{
			EmployerID:      employer.ID,
			Title:           "Бариста на утро",
			Details:         strPtr("Смена в кофейне, нужен опыт с кассой"),
			Address:         "м. Київ, вул. Велика Васильківська, 55",
			PayPerHour:      120,
			StartAt:         at(1, 8),
			EndAt:           at(1, 16),
			Latitude:        50.4308,
			Longitude:       30.5164,
			WorkFormat:      models.WorkFormatOffline,
			RequiredWorkers: 2,
		},
		{
			EmployerID:      employer.ID,
			Title:           "Промо у ТЦ",
			Details:         strPtr("Раздача листовок и консультации"),
			Address:         "м. Київ, ТРЦ Ocean Plaza",
			PayPerHour:      110,
			StartAt:         at(2, 11),
			EndAt:           at(2, 18),
			Latitude:        50.4128,
			Longitude:       30.5226,
			WorkFormat:      models.WorkFormatOffline,
			RequiredWorkers: 3,
		},
		{
			EmployerID:      employer.ID,
			Title:           "Оператор чату",
			Details:         strPtr("Відповіді клієнтам у чаті підтримки, готові скрипти."),
			Address:         "Онлайн",
			PayPerHour:      175,
			StartAt:         at(1, 10),
			EndAt:           at(1, 17),
			Latitude:        50.4501,
			Longitude:       30.5234,
			WorkFormat:      models.WorkFormatOnline,
			RequiredWorkers: 2,
		},
	}
	for _, s := range shifts {
		s.Status = models.ShiftStatusOpen
		if err := repos.Shifts.Create(db, s); err != nil {
			return fmt.Errorf("create demo shift: %w", err)
		}
	}

	_, _, err = repos.Applications.CreateOrGet(db, &models.Application{
		ShiftID:  shifts[0].ID,
		WorkerID: worker.ID,
		Status:   models.ApplicationStatusPending,
	})
	if err != nil {
		return fmt.Errorf("create demo application: %w", err)
	}

	err = repos.Reviews.Create(db, &models.Review{
		FromUserID: worker.ID,
		ToUserID:   employer.ID,
		Rating:     5,
		Comment:    strPtr("Выплата вовремя, четкая постановка задачи"),
	})
	if err != nil {
		return fmt.Errorf("create demo review: %w", err)
	}

	logger.Info("Demo data seeded", "employer_id", employer.ID, "worker_id", worker.ID, "shifts", len(shifts))
	return nil
}

func strPtr(s string) *string {
	return &s
}
