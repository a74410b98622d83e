package handlers

import (
	"net/http"

	"quickgig/internal/middleware"
	"quickgig/internal/services"
	"quickgig/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, _ middleware.Guards) {
	rg.GET("/users/:id", h.GetPublicProfile)
}

// GetPublicProfile godoc
// @Summary Публичный профиль пользователя
// @Description Имя, роль, рейтинг и последние отзывы, без контактов
// @Tags users
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} map[string]dto.PublicProfileResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id", apperrors.ErrUserNotFound)
	if !ok {
		return
	}

	profile, err := h.userService.PublicProfile(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}
