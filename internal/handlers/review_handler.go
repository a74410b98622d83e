package handlers

import (
	"net/http"

	"quickgig/internal/middleware"
	"quickgig/internal/services"
	"quickgig/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, guards middleware.Guards) {
	rg.POST("/reviews", guards.Required, h.Create)
}

// Create godoc
// @Summary Отзыв о пользователе
// @Description Возвращает отзыв и пересчитанный рейтинг получателя
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Отзыв"
// @Success 201 {object} dto.ReviewResult
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Router /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.reviewService.Submit(h.GetDB(c), h.Principal(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
