package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reelgate-inc/reelgate/internal/interfaces/http/handlers"
	"github.com/reelgate-inc/reelgate/internal/interfaces/http/middleware"
)

// PurchaseRouteConfig holds dependencies for purchase routes.
type PurchaseRouteConfig struct {
	PurchaseHandler  *handlers.PurchaseHandler
	AuthMiddleware   *middleware.AuthMiddleware
	RateLimiter      *middleware.RateLimiter
	WebhookPerMinute int
}

// SetupPurchaseRoutes configures purchase routes. The webhook is
// authenticated by its processor signature, not by a bearer token.
func SetupPurchaseRoutes(engine *gin.Engine, cfg *PurchaseRouteConfig) {
	purchases := engine.Group("/purchases")
	{
		purchases.POST("/webhook",
			cfg.RateLimiter.PerIP("webhook", cfg.WebhookPerMinute),
			cfg.PurchaseHandler.Webhook)

		purchasesProtected := purchases.Group("")
		purchasesProtected.Use(cfg.AuthMiddleware.RequireAuth())
		{
			purchasesProtected.POST("/validate", cfg.PurchaseHandler.Validate)
			purchasesProtected.POST("/checkout", cfg.PurchaseHandler.Checkout)
		}
	}
}
