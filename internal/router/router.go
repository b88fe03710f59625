package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Brownie44l1/waste-api/internal/handlers"
	"github.com/Brownie44l1/waste-api/internal/metrics"
	"github.com/Brownie44l1/waste-api/internal/middleware"
)

// Setup creates the Gin engine serving h.
func Setup(h *handlers.Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/labels", h.Labels)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.OPTIONS("/predict", h.PredictOptions)
	router.POST("/predict", h.Predict)

	return router
}
