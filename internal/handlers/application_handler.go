package handlers

import (
	"net/http"

	"quickgig/internal/middleware"
	"quickgig/internal/services"
	"quickgig/internal/services/dto"
	"quickgig/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup, guards middleware.Guards) {
	authed := rg.Group("")
	authed.Use(guards.Required)
	{
		authed.POST("/shifts/:id/apply", h.Apply)
		authed.PATCH("/applications/:id/status", h.UpdateStatus)
		authed.GET("/my/applications", h.ListMine)
	}
}

// Apply godoc
// @Summary Отклик на смену
// @Description Повторный отклик возвращает существующий без изменений (200)
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID смены"
// @Param request body dto.ApplyRequest false "Сообщение работодателю"
// @Success 201 {object} map[string]models.Application
// @Success 200 {object} map[string]models.Application
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Router /shifts/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	shiftID, ok := h.ParseIDParam(c, "id", apperrors.ErrShiftNotFound)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	app, created, err := h.applicationService.Apply(h.GetDB(c), h.Principal(c), shiftID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": app})
}

// UpdateStatus godoc
// @Summary Решение работодателя по отклику
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID отклика"
// @Param request body dto.UpdateApplicationStatusRequest true "Новый статус"
// @Success 200 {object} map[string]models.Application
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Router /applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id", apperrors.ErrApplicationNotFound)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	app, err := h.applicationService.UpdateStatus(h.GetDB(c), h.Principal(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": app})
}

// ListMine godoc
// @Summary Отклики работника
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]dto.ApplicationResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /my/applications [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.applicationService.ListMine(h.GetDB(c), h.Principal(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": apps})
}
