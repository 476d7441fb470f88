package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reelgate-inc/reelgate/internal/interfaces/http/handlers"
	"github.com/reelgate-inc/reelgate/internal/interfaces/http/middleware"
)

// ContentRouteConfig holds dependencies for content and access routes.
type ContentRouteConfig struct {
	ContentHandler    *handlers.ContentHandler
	AccessHandler     *handlers.AccessHandler
	TierHandler       *handlers.TierHandler
	AuthMiddleware    *middleware.AuthMiddleware
	RateLimiter       *middleware.RateLimiter
	PlaybackPerMinute int
}

func SetupContentRoutes(engine *gin.Engine, cfg *ContentRouteConfig) {
	engine.GET("/tiers", cfg.TierHandler.ListTiers)

	content := engine.Group("/content")
	content.Use(cfg.AuthMiddleware.RequireAuth())
	{
		content.POST("/playback-url",
			cfg.RateLimiter.PerUser("playback", cfg.PlaybackPerMinute),
			cfg.ContentHandler.PlaybackURL)
	}

	access := engine.Group("/access")
	access.Use(cfg.AuthMiddleware.RequireAuth())
	{
		access.GET("/me", cfg.AccessHandler.GetMyAccess)
	}
}
