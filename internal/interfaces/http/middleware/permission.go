package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelgate-inc/reelgate/internal/shared/logger"
	"github.com/reelgate-inc/reelgate/internal/shared/utils"
)

type permissionEnforcer interface {
	// EnforceUser checks a user ID through its assigned roles.
	EnforceUser(userID string, resource string, action string) (bool, error)
	// Enforce checks a role name.
	Enforce(role string, resource string, action string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer permissionEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer permissionEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission allows the request when either the caller (through roles
// assigned to its user ID) or its role claim holds the permission. User IDs
// and role names are checked in separate namespaces.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		checks := []func() (bool, error){
			func() (bool, error) { return m.enforcer.EnforceUser(userID, resource, action) },
		}
		if role := CurrentUserRole(c); role != "" {
			checks = append(checks, func() (bool, error) { return m.enforcer.Enforce(role, resource, action) })
		}

		for _, check := range checks {
			allowed, err := check()
			if err != nil {
				m.logger.Errorw("permission check failed", "error", err, "user_id", userID, "resource", resource, "action", action)
				utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
				c.Abort()
				return
			}
			if allowed {
				c.Next()
				return
			}
		}

		m.logger.Warnw("permission denied", "user_id", userID, "resource", resource, "action", action)
		utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
		c.Abort()
	}
}
