package routes

import (
	"quickgig/internal/handlers"
	"quickgig/internal/logger"
	"quickgig/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
// API живет под prefix, служебные маршруты - в корне.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	guards middleware.Guards,
	prefix string,
) {
	SetupPublicRoutes(ginRouter, appHandlers.HealthHandler)

	api := ginRouter.Group(prefix)
	{
		api.GET("/health", appHandlers.HealthHandler.Health)
		appHandlers.RegisterAll(api, guards)
	}

	logger.Info("HTTP routes registered", "prefix", prefix, "routes", len(ginRouter.Routes()))
}
