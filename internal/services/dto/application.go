package dto

import (
	"quickgig/internal/models"
)

// ApplyRequest - отклик на смену, тело необязательно
type ApplyRequest struct {
	Binding

	Message *string `json:"message" validate:"omitempty,max=1000"`
}

// UpdateApplicationStatusRequest - решение работодателя
type UpdateApplicationStatusRequest struct {
	Binding

	Status models.ApplicationStatus `json:"status" validate:"required,application-status"`
}

// ApplicationResponse - отклик с вложенным работником или сменой
type ApplicationResponse struct {
	models.Application
	Worker *UserSummary   `json:"worker,omitempty"`
	Shift  *ShiftResponse `json:"shift,omitempty"`
}
