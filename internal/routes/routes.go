package routes

import (
	"net/http"

	"sublet_backend/internal/handlers"
	"sublet_backend/internal/logger"
	"sublet_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokens middleware.TokenParser,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ReferenceHandler.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		appHandlers.UserHandler.RegisterRoutes(protected)
		appHandlers.ListingHandler.RegisterRoutes(protected)
		appHandlers.RenterHandler.RegisterRoutes(protected)
		appHandlers.MatchingHandler.RegisterRoutes(protected)
		appHandlers.ReferenceHandler.RegisterProtectedRoutes(protected)
	}

	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
