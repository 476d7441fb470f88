package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reelgate-inc/reelgate/internal/infrastructure/permission"
	"github.com/reelgate-inc/reelgate/internal/interfaces/http/handlers"
	"github.com/reelgate-inc/reelgate/internal/interfaces/http/middleware"
)

type AdminRouteConfig struct {
	AdminHandler         *handlers.AdminHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	{
		admin.GET("/users/:user_id/entitlements",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceEntitlements, permission.ActionRead),
			cfg.AdminHandler.GetUserEntitlements)
		admin.POST("/notifier/run",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceNotifier, permission.ActionRun),
			cfg.AdminHandler.RunNotifier)
	}
}
