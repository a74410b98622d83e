package services

import (
	"errors"
	"math"
	"strings"

	"quickgig/internal/auth"
	"quickgig/internal/discovery"
	"quickgig/internal/logger"
	"quickgig/internal/metrics"
	"quickgig/internal/models"
	"quickgig/internal/repositories"
	"quickgig/internal/services/dto"
	"quickgig/internal/validator"
	"quickgig/pkg/apperrors"

	"gorm.io/gorm"
)

type ShiftService interface {
	Create(db *gorm.DB, principal *auth.Principal, req *dto.CreateShiftRequest) (*models.Shift, error)

	// Update меняет только переданные поля
	Update(db *gorm.DB, principal *auth.Principal, shiftID uint, req *dto.UpdateShiftRequest) (*models.Shift, error)

	// ListOpen - лента открытых смен с фильтрами
	ListOpen(db *gorm.DB, params discovery.Params) ([]dto.ShiftResponse, error)

	// Get - карточка смены. viewer может быть nil.
	Get(db *gorm.DB, shiftID uint, viewer *auth.Principal) (*dto.ShiftViewResponse, error)
	ListMine(db *gorm.DB, principal *auth.Principal) (*dto.MyShiftsResponse, error)
}

type ShiftServiceImpl struct {
	shiftRepo       repositories.ShiftRepository
	applicationRepo repositories.ApplicationRepository
	userRepo        repositories.UserRepository
	ratings         RatingService
	validator       *validator.Validator
}

func NewShiftService(
	shiftRepo repositories.ShiftRepository,
	applicationRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	ratings RatingService,
	v *validator.Validator,
) ShiftService {
	return &ShiftServiceImpl{
		shiftRepo:       shiftRepo,
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		ratings:         ratings,
		validator:       v,
	}
}

var errEndBeforeStart = apperrors.FieldInvalid("end_at", "The end at field must be a date after start at.")

func (s *ShiftServiceImpl) Create(db *gorm.DB, principal *auth.Principal, req *dto.CreateShiftRequest) (*models.Shift, error) {
	if !principal.Can(auth.PermShiftsWrite) {
		return nil, apperrors.ErrOnlyEmployerCanCreateShift
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	start, _ := validator.ParseDateTime(req.StartAt)
	end, _ := validator.ParseDateTime(req.EndAt)
	if !end.After(start) {
		return nil, errEndBeforeStart
	}

	shift := &models.Shift{
		EmployerID:      principal.UserID,
		Title:           strings.TrimSpace(req.Title),
		Details:         req.Details,
		PayPerHour:      *req.PayPerHour,
		StartAt:         start,
		EndAt:           end,
		Latitude:        *req.Latitude,
		Longitude:       *req.Longitude,
		WorkFormat:      models.DefaultWorkFormat,
		RequiredWorkers: models.DefaultRequiredWorkers,
		Status:          models.ShiftStatusOpen,
	}
	if req.Address != nil {
		shift.Address = *req.Address
	}
	if req.WorkFormat != nil {
		shift.WorkFormat = *req.WorkFormat
	}
	if req.RequiredWorkers != nil {
		shift.RequiredWorkers = *req.RequiredWorkers
	}

	if err := s.shiftRepo.Create(db, shift); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	metrics.ShiftsCreated.Inc()
	logger.CtxInfo(ctxOf(db), "shift created", "shift_id", shift.ID)
	return shift, nil
}

func (s *ShiftServiceImpl) Update(db *gorm.DB, principal *auth.Principal, shiftID uint, req *dto.UpdateShiftRequest) (*models.Shift, error) {
	shift, err := s.findShift(db, shiftID)
	if err != nil {
		return nil, err
	}
	if !principal.Can(auth.PermShiftsWrite) {
		return nil, apperrors.ErrOnlyEmployerCanEditShift
	}
	if !shift.OwnedBy(principal.UserID) {
		return nil, apperrors.ErrNotShiftOwner
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	changes := make(map[string]interface{})
	if req.Title != nil {
		changes["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Details != nil {
		changes["details"] = req.Details
	}
	if req.Address != nil {
		changes["address"] = *req.Address
	}
	if req.PayPerHour != nil {
		changes["pay_per_hour"] = *req.PayPerHour
	}
	if req.Latitude != nil {
		changes["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		changes["longitude"] = *req.Longitude
	}
	if req.WorkFormat != nil {
		changes["work_format"] = *req.WorkFormat
	}
	if req.RequiredWorkers != nil {
		changes["required_workers"] = *req.RequiredWorkers
	}
	if req.Status != nil {
		changes["status"] = *req.Status
	}

	// Интервал проверяется по итоговой паре: новое значение или текущее
	if req.StartAt != nil || req.EndAt != nil {
		start, end := shift.StartAt, shift.EndAt
		if req.StartAt != nil {
			start, _ = validator.ParseDateTime(*req.StartAt)
			changes["start_at"] = start
		}
		if req.EndAt != nil {
			end, _ = validator.ParseDateTime(*req.EndAt)
			changes["end_at"] = end
		}
		if !end.After(start) {
			return nil, errEndBeforeStart
		}
	}

	if len(changes) == 0 {
		return shift, nil
	}
	if err := s.shiftRepo.Update(db, shift.ID, changes); err != nil {
		if errors.Is(err, repositories.ErrShiftNotFound) {
			return nil, apperrors.ErrShiftNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}

	return s.findShift(db, shift.ID)
}

func (s *ShiftServiceImpl) ListOpen(db *gorm.DB, params discovery.Params) ([]dto.ShiftResponse, error) {
	if err := s.validator.Validate(&params); err != nil {
		return nil, err
	}
	filter, err := params.Filter()
	if err != nil {
		return nil, err
	}

	shifts, err := s.shiftRepo.ListOpen(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	matches := discovery.Apply(shifts, filter)

	shiftIDs := make([]uint, 0, len(matches))
	employerIDs := make([]uint, 0, len(matches))
	for _, m := range matches {
		shiftIDs = append(shiftIDs, m.Shift.ID)
		employerIDs = append(employerIDs, m.Shift.EmployerID)
	}

	counts, err := s.applicationRepo.CountByShifts(db, shiftIDs)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	employers, err := s.summaries(db, employerIDs)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ShiftResponse, 0, len(matches))
	for _, m := range matches {
		total := counts[m.Shift.ID].Total
		result = append(result, dto.ShiftResponse{
			Shift:             m.Shift,
			Employer:          employers[m.Shift.EmployerID],
			ApplicationsCount: &total,
			DistanceKm:        m.DistanceKm,
		})
	}
	return result, nil
}

func (s *ShiftServiceImpl) Get(db *gorm.DB, shiftID uint, viewer *auth.Principal) (*dto.ShiftViewResponse, error) {
	shift, err := s.findShift(db, shiftID)
	if err != nil {
		return nil, err
	}

	apps, err := s.applicationRepo.ListByShift(db, shift.ID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	userIDs := []uint{shift.EmployerID}
	for _, a := range apps {
		userIDs = append(userIDs, a.WorkerID)
	}
	people, err := s.summaries(db, userIDs)
	if err != nil {
		return nil, err
	}

	total := int64(len(apps))
	view := &dto.ShiftViewResponse{
		Data: dto.ShiftDetailResponse{
			ShiftResponse: dto.ShiftResponse{
				Shift:             *shift,
				Employer:          people[shift.EmployerID],
				ApplicationsCount: &total,
			},
			Applications: make([]dto.ApplicationResponse, 0, len(apps)),
		},
	}

	for i := range apps {
		view.Data.Applications = append(view.Data.Applications, dto.ApplicationResponse{
			Application: apps[i],
			Worker:      people[apps[i].WorkerID],
		})
		if viewer != nil && apps[i].WorkerID == viewer.UserID {
			mine := apps[i]
			view.MyApplication = &mine
		}
	}

	return view, nil
}

func (s *ShiftServiceImpl) ListMine(db *gorm.DB, principal *auth.Principal) (*dto.MyShiftsResponse, error) {
	if !principal.Can(auth.PermShiftsOwnList) {
		return nil, apperrors.ErrEmployersOnly
	}

	shifts, err := s.shiftRepo.ListByEmployer(db, principal.UserID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	shiftIDs := make([]uint, 0, len(shifts))
	for _, sh := range shifts {
		shiftIDs = append(shiftIDs, sh.ID)
	}
	counts, err := s.applicationRepo.CountByShifts(db, shiftIDs)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	resp := &dto.MyShiftsResponse{
		Data: make([]dto.MyShiftResponse, 0, len(shifts)),
	}
	var totals repositories.StatusCounts
	for _, sh := range shifts {
		c := counts[sh.ID]
		resp.Data = append(resp.Data, dto.MyShiftResponse{
			Shift:             sh,
			ApplicationsCount: c.Total,
			PendingCount:      c.Pending,
			AcceptedCount:     c.Accepted,
			RejectedCount:     c.Rejected,
		})
		totals.Total += c.Total
		totals.Pending += c.Pending
		totals.Accepted += c.Accepted
		totals.Rejected += c.Rejected
	}

	resp.Stats = dto.FunnelStats{
		Shifts:         int64(len(shifts)),
		Applications:   totals.Total,
		Pending:        totals.Pending,
		Accepted:       totals.Accepted,
		Rejected:       totals.Rejected,
		AcceptanceRate: acceptanceRate(totals.Accepted, totals.Total),
	}
	return resp, nil
}

// acceptanceRate - доля принятых откликов в процентах, округленная до целого
func acceptanceRate(accepted, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(accepted) * 100 / float64(total)))
}

func (s *ShiftServiceImpl) findShift(db *gorm.DB, id uint) (*models.Shift, error) {
	shift, err := s.shiftRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrShiftNotFound) {
			return nil, apperrors.ErrShiftNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return shift, nil
}

// summaries - имена и рейтинги пользователей двумя запросами на весь список
func (s *ShiftServiceImpl) summaries(db *gorm.DB, ids []uint) (map[uint]*dto.UserSummary, error) {
	return buildSummaries(db, s.userRepo, s.ratings, ids)
}

func buildSummaries(db *gorm.DB, userRepo repositories.UserRepository, ratings RatingService, ids []uint) (map[uint]*dto.UserSummary, error) {
	ids = uniqueIDs(ids)
	users, err := userRepo.FindByIDs(db, ids)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	stats, err := ratings.ForMany(db, ids)
	if err != nil {
		return nil, err
	}

	result := make(map[uint]*dto.UserSummary, len(users))
	for id, u := range users {
		result[id] = &dto.UserSummary{
			ID:           u.ID,
			Name:         u.Name,
			Role:         u.Role,
			Rating:       stats[id].Rating,
			ReviewsCount: stats[id].ReviewsCount,
		}
	}
	return result, nil
}
