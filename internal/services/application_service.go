package services

import (
	"errors"

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

type ApplicationService interface {
	// Apply создает отклик или возвращает существующий без изменений.
	// created == false для повторного отклика.
	Apply(db *gorm.DB, principal *auth.Principal, shiftID uint, req *dto.ApplyRequest) (app *models.Application, created bool, err error)
	UpdateStatus(db *gorm.DB, principal *auth.Principal, applicationID uint, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	ListMine(db *gorm.DB, principal *auth.Principal) ([]dto.ApplicationResponse, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	shiftRepo       repositories.ShiftRepository
	userRepo        repositories.UserRepository
	ratings         RatingService
	notifier        NotificationService
	validator       *validator.Validator
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	shiftRepo repositories.ShiftRepository,
	userRepo repositories.UserRepository,
	ratings RatingService,
	notifier NotificationService,
	v *validator.Validator,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		shiftRepo:       shiftRepo,
		userRepo:        userRepo,
		ratings:         ratings,
		notifier:        notifier,
		validator:       v,
	}
}

func (s *ApplicationServiceImpl) Apply(db *gorm.DB, principal *auth.Principal, shiftID uint, req *dto.ApplyRequest) (*models.Application, bool, error) {
	shift, err := s.findShift(db, shiftID)
	if err != nil {
		return nil, false, err
	}
	if !principal.Can(auth.PermApplicationsCreate) {
		return nil, false, apperrors.ErrOnlyWorkerCanApply
	}
	// недостижимо при проверке роли выше, но правило сохраняется отдельно
	if shift.OwnedBy(principal.UserID) {
		return nil, false, apperrors.ErrCannotApplyToOwnShift
	}
	if req == nil {
		req = &dto.ApplyRequest{}
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, false, err
	}

	app, created, err := s.applicationRepo.CreateOrGet(db, &models.Application{
		ShiftID:  shift.ID,
		WorkerID: principal.UserID,
		Status:   models.ApplicationStatusPending,
		Message:  req.Message,
	})
	if err != nil {
		return nil, false, apperrors.DatabaseError(err)
	}

	if created {
		metrics.ApplicationsCreated.Inc()
		logger.CtxInfo(ctxOf(db), "application created", "application_id", app.ID, "shift_id", shift.ID)
		if s.notifier != nil {
			s.notifier.ApplicationCreated(ctxOf(db), db, shift, app)
		}
	}
	return app, created, nil
}

func (s *ApplicationServiceImpl) UpdateStatus(db *gorm.DB, principal *auth.Principal, applicationID uint, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	app, err := s.findApplication(db, applicationID)
	if err != nil {
		return nil, err
	}
	if !principal.Can(auth.PermApplicationsReview) {
		return nil, apperrors.ErrOnlyEmployerCanChangeStatus
	}

	shift, err := s.findShift(db, app.ShiftID)
	if err != nil {
		return nil, err
	}
	if !shift.OwnedBy(principal.UserID) {
		return nil, apperrors.ErrNotApplicationOwner
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// TODO: переходы статусов не ограничены: accepted/rejected можно вернуть в pending
	// и переключать между собой. Нужен явный граф переходов, когда он будет согласован с продуктом.
	if app.Status == req.Status {
		return app, nil
	}

	if err := s.applicationRepo.UpdateStatus(db, app.ID, req.Status); err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}

	updated, err := s.findApplication(db, app.ID)
	if err != nil {
		return nil, err
	}

	metrics.ApplicationStatusChanges.WithLabelValues(string(updated.Status)).Inc()
	logger.CtxInfo(ctxOf(db), "application status changed",
		"application_id", updated.ID, "from", app.Status, "to", updated.Status)
	if s.notifier != nil {
		s.notifier.ApplicationStatusChanged(ctxOf(db), db, shift, updated)
	}
	return updated, nil
}

func (s *ApplicationServiceImpl) ListMine(db *gorm.DB, principal *auth.Principal) ([]dto.ApplicationResponse, error) {
	if !principal.Can(auth.PermApplicationsOwn) {
		return nil, apperrors.ErrWorkersOnly
	}

	apps, err := s.applicationRepo.ListByWorker(db, principal.UserID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	shiftIDs := make([]uint, 0, len(apps))
	for _, a := range apps {
		shiftIDs = append(shiftIDs, a.ShiftID)
	}
	shifts, err := s.shiftRepo.FindByIDs(db, uniqueIDs(shiftIDs))
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	employerIDs := make([]uint, 0, len(shifts))
	for _, sh := range shifts {
		employerIDs = append(employerIDs, sh.EmployerID)
	}
	employers, err := buildSummaries(db, s.userRepo, s.ratings, employerIDs)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		item := dto.ApplicationResponse{Application: a}
		if sh, ok := shifts[a.ShiftID]; ok {
			item.Shift = &dto.ShiftResponse{
				Shift:    sh,
				Employer: employers[sh.EmployerID],
			}
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *ApplicationServiceImpl) findShift(db *gorm.DB, id uint) (*models.Shift, error) {
	shift, err := s.shiftRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrShiftNotFound) {
			return nil, apperrors.ErrShiftNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return shift, nil
}

func (s *ApplicationServiceImpl) findApplication(db *gorm.DB, id uint) (*models.Application, error) {
	app, err := s.applicationRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return app, nil
}
