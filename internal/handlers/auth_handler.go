package handlers

import (
	"net/http"

	"quickgig/internal/middleware"
	"quickgig/internal/services"
	"quickgig/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const clientNameHeader = "X-Client-Name"

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, guards middleware.Guards) {
	rg.POST("/register", guards.Throttle, h.Register)
	rg.POST("/login", guards.Throttle, h.Login)

	authed := rg.Group("")
	authed.Use(guards.Required)
	{
		authed.GET("/me", h.Me)
		authed.POST("/logout", h.Logout)
	}
}

// Register godoc
// @Summary Регистрация
// @Description Создает работника или работодателя и выдает токен
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Client-Name header string false "Имя клиента для токена"
// @Param request body dto.RegisterRequest true "Данные пользователя"
// @Success 201 {object} dto.AuthResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Failure 429 {object} apperrors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(h.GetDB(c), &req, c.GetHeader(clientNameHeader))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Вход по телефону и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Client-Name header string false "Имя клиента для токена"
// @Param request body dto.LoginRequest true "Телефон и пароль"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req, c.GetHeader(clientNameHeader))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Текущий пользователь с рейтингом
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]dto.UserResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(h.GetDB(c), h.Principal(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout godoc
// @Summary Отзыв текущего токена
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(h.GetDB(c), h.Principal(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
