package memory

import (
	"fmt"
	"sort"
	"time"

	"quickgig/internal/models"
	"quickgig/internal/repositories"

	"gorm.io/gorm"
)

type shiftRepository struct{ s *Store }

func (r *shiftRepository) Create(_ *gorm.DB, shift *models.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&shift.BaseModel, "shifts")
	r.s.shifts[shift.ID] = *shift
	return nil
}

func (r *shiftRepository) FindByID(_ *gorm.DB, id uint) (*models.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	shift, ok := r.s.shifts[id]
	if !ok {
		return nil, repositories.ErrShiftNotFound
	}
	return &shift, nil
}

func (r *shiftRepository) FindByIDs(_ *gorm.DB, ids []uint) (map[uint]models.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[uint]models.Shift, len(ids))
	for _, id := range ids {
		if shift, ok := r.s.shifts[id]; ok {
			result[id] = shift
		}
	}
	return result, nil
}

func (r *shiftRepository) Update(_ *gorm.DB, id uint, changes map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	shift, ok := r.s.shifts[id]
	if !ok {
		return repositories.ErrShiftNotFound
	}
	for column, value := range changes {
		if err := setShiftColumn(&shift, column, value); err != nil {
			return err
		}
	}
	shift.UpdatedAt = r.s.now()
	r.s.shifts[id] = shift
	return nil
}

// setShiftColumn повторяет набор колонок, которые меняет ShiftService.Update
func setShiftColumn(shift *models.Shift, column string, value interface{}) error {
	var ok bool
	switch column {
	case "title":
		shift.Title, ok = value.(string)
	case "details":
		shift.Details, ok = value.(*string)
	case "address":
		shift.Address, ok = value.(string)
	case "pay_per_hour":
		shift.PayPerHour, ok = value.(int)
	case "start_at":
		shift.StartAt, ok = value.(time.Time)
	case "end_at":
		shift.EndAt, ok = value.(time.Time)
	case "latitude":
		shift.Latitude, ok = value.(float64)
	case "longitude":
		shift.Longitude, ok = value.(float64)
	case "work_format":
		shift.WorkFormat, ok = value.(models.WorkFormat)
	case "required_workers":
		shift.RequiredWorkers, ok = value.(int)
	case "status":
		shift.Status, ok = value.(models.ShiftStatus)
	default:
		return fmt.Errorf("unknown shift column %q", column)
	}
	if !ok {
		return fmt.Errorf("unexpected value type %T for shift column %q", value, column)
	}
	return nil
}

func (r *shiftRepository) ListOpen(_ *gorm.DB) ([]models.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	shifts := make([]models.Shift, 0)
	for _, shift := range r.s.shifts {
		if shift.IsOpen() {
			shifts = append(shifts, shift)
		}
	}
	sort.Slice(shifts, func(i, j int) bool {
		if !shifts[i].StartAt.Equal(shifts[j].StartAt) {
			return shifts[i].StartAt.Before(shifts[j].StartAt)
		}
		return shifts[i].ID < shifts[j].ID
	})
	return shifts, nil
}

func (r *shiftRepository) ListByEmployer(_ *gorm.DB, employerID uint) ([]models.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	shifts := make([]models.Shift, 0)
	for _, shift := range r.s.shifts {
		if shift.EmployerID == employerID {
			shifts = append(shifts, shift)
		}
	}
	sort.Slice(shifts, func(i, j int) bool { return newestFirst(shifts[i].BaseModel, shifts[j].BaseModel) })
	return shifts, nil
}
