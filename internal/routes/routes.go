package routes

import (
	"github.com/gin-gonic/gin"

	"internship_admin/internal/handlers"
	"internship_admin/internal/logger"
	"internship_admin/ws"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
) {
	ginRouter.GET("/health", appHandlers.SummaryHandler.Health)

	admin := ginRouter.Group("/admin")
	{
		appHandlers.SummaryHandler.RegisterRoutes(admin)
		appHandlers.EntityHandler.RegisterRoutes(admin)
		appHandlers.ApplicationHandler.RegisterRoutes(admin)
		appHandlers.NotificationHandler.RegisterRoutes(admin)
	}

	ginRouter.GET("/ws", wsHandler.ServeWS)
	logger.Info("WebSocket route /ws registered")
}
