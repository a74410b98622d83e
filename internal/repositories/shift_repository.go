package repositories

import (
	"errors"

	"quickgig/internal/models"

	"gorm.io/gorm"
)

var (
	ErrShiftNotFound = errors.New("shift not found")
)

type ShiftRepository interface {
	Create(db *gorm.DB, shift *models.Shift) error
	FindByID(db *gorm.DB, id uint) (*models.Shift, error)
	FindByIDs(db *gorm.DB, ids []uint) (map[uint]models.Shift, error)

	// Update меняет только переданные колонки
	Update(db *gorm.DB, id uint, changes map[string]interface{}) error

	// ListOpen - открытые смены по возрастанию start_at
	ListOpen(db *gorm.DB) ([]models.Shift, error)

	// ListByEmployer - все смены работодателя, новые первыми
	ListByEmployer(db *gorm.DB, employerID uint) ([]models.Shift, error)
}

type shiftRepository struct{}

func NewShiftRepository() ShiftRepository {
	return &shiftRepository{}
}

func (r *shiftRepository) Create(db *gorm.DB, shift *models.Shift) error {
	return db.Create(shift).Error
}

func (r *shiftRepository) FindByID(db *gorm.DB, id uint) (*models.Shift, error) {
	var shift models.Shift
	if err := db.First(&shift, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) FindByIDs(db *gorm.DB, ids []uint) (map[uint]models.Shift, error) {
	result := make(map[uint]models.Shift, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var shifts []models.Shift
	if err := db.Where("id IN ?", ids).Find(&shifts).Error; err != nil {
		return nil, err
	}
	for _, s := range shifts {
		result[s.ID] = s
	}
	return result, nil
}

func (r *shiftRepository) Update(db *gorm.DB, id uint, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	result := db.Model(&models.Shift{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShiftNotFound
	}
	return nil
}

func (r *shiftRepository) ListOpen(db *gorm.DB) ([]models.Shift, error) {
	var shifts []models.Shift
	err := db.Where("status = ?", models.ShiftStatusOpen).
		Order("start_at ASC").
		Order("id ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepository) ListByEmployer(db *gorm.DB, employerID uint) ([]models.Shift, error) {
	var shifts []models.Shift
	err := db.Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&shifts).Error
	return shifts, err
}
