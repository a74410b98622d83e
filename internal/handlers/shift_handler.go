package handlers

import (
	"net/http"

	"quickgig/internal/discovery"
	"quickgig/internal/middleware"
	"quickgig/internal/services"
	"quickgig/internal/services/dto"
	"quickgig/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ShiftHandler struct {
	*BaseHandler
	shiftService services.ShiftService
}

func NewShiftHandler(base *BaseHandler, shiftService services.ShiftService) *ShiftHandler {
	return &ShiftHandler{
		BaseHandler:  base,
		shiftService: shiftService,
	}
}

func (h *ShiftHandler) RegisterRoutes(rg *gin.RouterGroup, guards middleware.Guards) {
	shifts := rg.Group("/shifts")
	{
		shifts.GET("", h.ListOpen)
		shifts.GET("/:id", guards.Optional, h.Get)
		shifts.POST("", guards.Required, h.Create)
		shifts.PATCH("/:id", guards.Required, h.Update)
	}

	rg.GET("/my/shifts", guards.Required, h.ListMine)
}

// ListOpen godoc
// @Summary Лента открытых смен
// @Tags shifts
// @Produce json
// @Param q query string false "Поиск по названию, описанию и адресу"
// @Param min_pay query int false "Минимальная оплата в час"
// @Param date_from query string false "Начало не раньше (YYYY-MM-DD)"
// @Param date_to query string false "Начало не позже (YYYY-MM-DD)"
// @Param lat query number false "Широта зрителя"
// @Param lng query number false "Долгота зрителя"
// @Param radius_km query number false "Радиус, км"
// @Param work_format query string false "online или offline"
// @Success 200 {object} map[string][]dto.ShiftResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Router /shifts [get]
func (h *ShiftHandler) ListOpen(c *gin.Context) {
	var params discovery.Params
	if !h.BindQuery(c, &params) {
		return
	}

	shifts, err := h.shiftService.ListOpen(h.GetDB(c), params)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": shifts})
}

// Get godoc
// @Summary Карточка смены
// @Description С токеном дополнительно возвращает отклик текущего пользователя
// @Tags shifts
// @Produce json
// @Param id path int true "ID смены"
// @Success 200 {object} dto.ShiftViewResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /shifts/{id} [get]
func (h *ShiftHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id", apperrors.ErrShiftNotFound)
	if !ok {
		return
	}

	view, err := h.shiftService.Get(h.GetDB(c), id, h.Principal(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Create godoc
// @Summary Публикация смены
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateShiftRequest true "Смена"
// @Success 201 {object} map[string]models.Shift
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Router /shifts [post]
func (h *ShiftHandler) Create(c *gin.Context) {
	var req dto.CreateShiftRequest
	if !h.BindJSON(c, &req) {
		return
	}

	shift, err := h.shiftService.Create(h.GetDB(c), h.Principal(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": shift})
}

// Update godoc
// @Summary Частичное обновление смены
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID смены"
// @Param request body dto.UpdateShiftRequest true "Изменяемые поля"
// @Success 200 {object} map[string]models.Shift
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Router /shifts/{id} [patch]
func (h *ShiftHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id", apperrors.ErrShiftNotFound)
	if !ok {
		return
	}

	var req dto.UpdateShiftRequest
	if !h.BindJSON(c, &req) {
		return
	}

	shift, err := h.shiftService.Update(h.GetDB(c), h.Principal(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": shift})
}

// ListMine godoc
// @Summary Смены работодателя с воронкой откликов
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MyShiftsResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /my/shifts [get]
func (h *ShiftHandler) ListMine(c *gin.Context) {
	resp, err := h.shiftService.ListMine(h.GetDB(c), h.Principal(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
