package handlers

import (
	"thinqkitchen/internal/config"
	"thinqkitchen/internal/logger"
	"thinqkitchen/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to the services, the credential store and
// logging.
type Handler struct {
	services *service.Service
	store    config.Store
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, store config.Store, log *logger.Logger) *Handler {
	return &Handler{services: services, store: store, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Appliance view and actions
	router.GET("/", h.index)
	router.POST("/save-config", h.saveConfig)
	router.POST("/preheat", h.preheat)
	router.POST("/oven-action", h.ovenAction)
	router.POST("/refresh", h.refresh)

	return router
}
