package memory

import (
	"quickgig/internal/models"
	"quickgig/internal/repositories"

	"gorm.io/gorm"
)

type applicationRepository struct{ s *Store }

func (r *applicationRepository) CreateOrGet(_ *gorm.DB, app *models.Application) (*models.Application, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.applications {
		if existing.ShiftID == app.ShiftID && existing.WorkerID == app.WorkerID {
			return &existing, false, nil
		}
	}
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	r.s.stamp(&app.BaseModel, "applications")
	r.s.applications[app.ID] = *app
	return app, true, nil
}

func (r *applicationRepository) FindByID(_ *gorm.DB, id uint) (*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	app, ok := r.s.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	return &app, nil
}

func (r *applicationRepository) FindByShiftAndWorker(_ *gorm.DB, shiftID, workerID uint) (*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, app := range r.s.applications {
		if app.ShiftID == shiftID && app.WorkerID == workerID {
			return &app, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *applicationRepository) UpdateStatus(_ *gorm.DB, id uint, status models.ApplicationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	app, ok := r.s.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	app.Status = status
	app.UpdatedAt = r.s.now()
	r.s.applications[id] = app
	return nil
}

func (r *applicationRepository) ListByShift(_ *gorm.DB, shiftID uint) ([]models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	apps := make([]models.Application, 0)
	for _, app := range r.s.applications {
		if app.ShiftID == shiftID {
			apps = append(apps, app)
		}
	}
	sortApplications(apps, oldestFirst)
	return apps, nil
}

func (r *applicationRepository) ListByWorker(_ *gorm.DB, workerID uint) ([]models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	apps := make([]models.Application, 0)
	for _, app := range r.s.applications {
		if app.WorkerID == workerID {
			apps = append(apps, app)
		}
	}
	sortApplications(apps, newestFirst)
	return apps, nil
}

func (r *applicationRepository) CountByShifts(_ *gorm.DB, shiftIDs []uint) (map[uint]repositories.StatusCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wanted := make(map[uint]bool, len(shiftIDs))
	for _, id := range shiftIDs {
		wanted[id] = true
	}

	result := make(map[uint]repositories.StatusCounts, len(shiftIDs))
	for _, app := range r.s.applications {
		if !wanted[app.ShiftID] {
			continue
		}
		counts := result[app.ShiftID]
		counts.Add(app.Status, 1)
		result[app.ShiftID] = counts
	}
	return result, nil
}
