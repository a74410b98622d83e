package repositories

import (
	"errors"

	"quickgig/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
)

// StatusCounts - количество откликов смены по статусам
type StatusCounts struct {
	Total    int64
	Pending  int64
	Accepted int64
	Rejected int64
}

type ApplicationRepository interface {
	// CreateOrGet создает отклик или возвращает уже существующий для пары (shift, worker).
	// created == false, если отклик уже был.
	CreateOrGet(db *gorm.DB, app *models.Application) (result *models.Application, created bool, err error)
	FindByID(db *gorm.DB, id uint) (*models.Application, error)
	FindByShiftAndWorker(db *gorm.DB, shiftID, workerID uint) (*models.Application, error)
	UpdateStatus(db *gorm.DB, id uint, status models.ApplicationStatus) error

	// ListByShift - отклики на смену в порядке подачи
	ListByShift(db *gorm.DB, shiftID uint) ([]models.Application, error)

	// ListByWorker - отклики работника, новые первыми
	ListByWorker(db *gorm.DB, workerID uint) ([]models.Application, error)

	// CountByShifts считает отклики по статусам для набора смен одним запросом
	CountByShifts(db *gorm.DB, shiftIDs []uint) (map[uint]StatusCounts, error)
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) CreateOrGet(db *gorm.DB, app *models.Application) (*models.Application, bool, error) {
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shift_id"}, {Name: "worker_id"}},
		DoNothing: true,
	}).Create(app)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return app, true, nil
	}

	existing, err := r.FindByShiftAndWorker(db, app.ShiftID, app.WorkerID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *applicationRepository) FindByID(db *gorm.DB, id uint) (*models.Application, error) {
	var app models.Application
	if err := db.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindByShiftAndWorker(db *gorm.DB, shiftID, workerID uint) (*models.Application, error) {
	var app models.Application
	err := db.Where("shift_id = ? AND worker_id = ?", shiftID, workerID).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) UpdateStatus(db *gorm.DB, id uint, status models.ApplicationStatus) error {
	result := db.Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepository) ListByShift(db *gorm.DB, shiftID uint) ([]models.Application, error) {
	var apps []models.Application
	err := db.Where("shift_id = ?", shiftID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ListByWorker(db *gorm.DB, workerID uint) ([]models.Application, error) {
	var apps []models.Application
	err := db.Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) CountByShifts(db *gorm.DB, shiftIDs []uint) (map[uint]StatusCounts, error) {
	result := make(map[uint]StatusCounts, len(shiftIDs))
	if len(shiftIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ShiftID uint
		Status  models.ApplicationStatus
		Total   int64
	}
	err := db.Model(&models.Application{}).
		Select("shift_id, status, COUNT(*) AS total").
		Where("shift_id IN ?", shiftIDs).
		Group("shift_id, status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts := result[row.ShiftID]
		counts.Add(row.Status, row.Total)
		result[row.ShiftID] = counts
	}
	return result, nil
}

// Add учитывает n откликов со статусом status
func (c *StatusCounts) Add(status models.ApplicationStatus, n int64) {
	c.Total += n
	switch status {
	case models.ApplicationStatusPending:
		c.Pending += n
	case models.ApplicationStatusAccepted:
		c.Accepted += n
	case models.ApplicationStatusRejected:
		c.Rejected += n
	}
}
