package handlers

import (
	"quickgig/internal/middleware"
	"quickgig/internal/services"

	"github.com/gin-gonic/gin"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	ShiftHandler       *ShiftHandler
	ApplicationHandler *ApplicationHandler
	ReviewHandler      *ReviewHandler
	HealthHandler      *HealthHandler
}

// NewAppHandlers создает хэндлеры поверх контейнера сервисов
func NewAppHandlers(sc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler()
	return &AppHandlers{
		AuthHandler:        NewAuthHandler(base, sc.AuthService),
		UserHandler:        NewUserHandler(base, sc.UserService),
		ShiftHandler:       NewShiftHandler(base, sc.ShiftService),
		ApplicationHandler: NewApplicationHandler(base, sc.ApplicationService),
		ReviewHandler:      NewReviewHandler(base, sc.ReviewService),
		HealthHandler:      NewHealthHandler(),
	}
}

// routeRegistrar - хэндлер, который сам регистрирует свои маршруты
type routeRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup, guards middleware.Guards)
}

// RegisterAll регистрирует маршруты всех хэндлеров в группе API
func (h *AppHandlers) RegisterAll(rg *gin.RouterGroup, guards middleware.Guards) {
	for _, r := range []routeRegistrar{
		h.AuthHandler,
		h.UserHandler,
		h.ShiftHandler,
		h.ApplicationHandler,
		h.ReviewHandler,
	} {
		r.RegisterRoutes(rg, guards)
	}
}
