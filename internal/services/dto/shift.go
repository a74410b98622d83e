package dto

import (
	"quickgig/internal/models"
)

// CreateShiftRequest - публикация смены. Время - строки в одном из поддерживаемых форматов.
type CreateShiftRequest struct {
	Binding

	Title           string             `json:"title" validate:"required,filled,max=120"`
	Details         *string            `json:"details" validate:"omitempty,max=1000"`
	Address         *string            `json:"address" validate:"omitempty,max=255"`
	PayPerHour      *int               `json:"pay_per_hour" validate:"required,min=1"`
	StartAt         string             `json:"start_at" validate:"required,datetime-any"`
	EndAt           string             `json:"end_at" validate:"required,datetime-any"`
	Latitude        *float64           `json:"latitude" validate:"required"`
	Longitude       *float64           `json:"longitude" validate:"required"`
	WorkFormat      *models.WorkFormat `json:"work_format" validate:"omitempty,work-format"`
	RequiredWorkers *int               `json:"required_workers" validate:"omitempty,min=1,max=100"`
}

// UpdateShiftRequest - частичное обновление, nil - поле не передано
type UpdateShiftRequest struct {
	Binding

	Title           *string             `json:"title" validate:"omitempty,filled,max=120"`
	Details         *string             `json:"details" validate:"omitempty,max=1000"`
	Address         *string             `json:"address" validate:"omitempty,max=255"`
	PayPerHour      *int                `json:"pay_per_hour" validate:"omitempty,min=1"`
	StartAt         *string             `json:"start_at" validate:"omitempty,datetime-any"`
	EndAt           *string             `json:"end_at" validate:"omitempty,datetime-any"`
	Latitude        *float64            `json:"latitude"`
	Longitude       *float64            `json:"longitude"`
	WorkFormat      *models.WorkFormat  `json:"work_format" validate:"omitempty,work-format"`
	RequiredWorkers *int                `json:"required_workers" validate:"omitempty,min=1,max=100"`
	Status          *models.ShiftStatus `json:"status" validate:"omitempty,shift-status"`
}

// ShiftResponse - смена в ленте и в карточке
type ShiftResponse struct {
	models.Shift
	Employer          *UserSummary `json:"employer,omitempty"`
	ApplicationsCount *int64       `json:"applications_count,omitempty"`
	DistanceKm        *float64     `json:"distance_km,omitempty"`
}

// ShiftDetailResponse - карточка смены со всеми откликами
type ShiftDetailResponse struct {
	ShiftResponse
	Applications []ApplicationResponse `json:"applications"`
}

// ShiftViewResponse - ответ GET /shifts/{id}
type ShiftViewResponse struct {
	Data          ShiftDetailResponse  `json:"data"`
	MyApplication *models.Application `json:"my_application"`
}

// MyShiftResponse - смена работодателя с воронкой откликов
type MyShiftResponse struct {
	models.Shift
	ApplicationsCount int64 `json:"applications_count"`
	PendingCount      int64 `json:"pending_count"`
	AcceptedCount     int64 `json:"accepted_count"`
	RejectedCount     int64 `json:"rejected_count"`
}

// FunnelStats - сводка по всем сменам работодателя
type FunnelStats struct {
	Shifts         int64 `json:"shifts"`
	Applications   int64 `json:"applications"`
	Pending        int64 `json:"pending"`
	Accepted       int64 `json:"accepted"`
	Rejected       int64 `json:"rejected"`
	AcceptanceRate int   `json:"acceptance_rate"`
}

// MyShiftsResponse - ответ GET /my/shifts
type MyShiftsResponse struct {
	Data  []MyShiftResponse `json:"data"`
	Stats FunnelStats       `json:"stats"`
}
