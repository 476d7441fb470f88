package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/reelgate-inc/reelgate/internal/interfaces/http/middleware"
	"github.com/reelgate-inc/reelgate/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	c.engine.GET("/health", c.healthHandler.Health)

	routes.SetupPurchaseRoutes(c.engine, &routes.PurchaseRouteConfig{
		PurchaseHandler:  c.purchaseHandler,
		AuthMiddleware:   c.authMiddleware,
		RateLimiter:      c.rateLimiter,
		WebhookPerMinute: c.cfg.RateLimit.WebhookPerMinute,
	})

	routes.SetupContentRoutes(c.engine, &routes.ContentRouteConfig{
		ContentHandler:    c.contentHandler,
		AccessHandler:     c.accessHandler,
		TierHandler:       c.tierHandler,
		AuthMiddleware:    c.authMiddleware,
		RateLimiter:       c.rateLimiter,
		PlaybackPerMinute: c.cfg.RateLimit.PlaybackPerMinute,
	})

	routes.SetupAdminRoutes(c.engine, &routes.AdminRouteConfig{
		AdminHandler:         c.adminHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// GetEngine returns the gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}
