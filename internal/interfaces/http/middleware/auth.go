package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reelgate-inc/reelgate/internal/application/user/usecases"
	"github.com/reelgate-inc/reelgate/internal/domain/user"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/auth"
	"github.com/reelgate-inc/reelgate/internal/shared/constants"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
	"github.com/reelgate-inc/reelgate/internal/shared/utils"
)

type tokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

type profileSyncer interface {
	Execute(ctx context.Context, cmd usecases.SyncProfileCommand) (*user.Profile, error)
}

type AuthMiddleware struct {
	verifier tokenVerifier
	profiles profileSyncer
	logger   logger.Interface
}

func NewAuthMiddleware(verifier tokenVerifier, profiles profileSyncer, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		profiles: profiles,
		logger:   logger,
	}
}

// RequireAuth verifies the bearer token and stores the caller identity in
// the gin context. The local contact profile is refreshed from the claims.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID())
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Set(constants.ContextKeyUserName, claims.Name)
		c.Set(constants.ContextKeyUserRole, claims.Role)

		if m.profiles != nil {
			// Contact data only feeds emails, so a failed sync never blocks the request.
			if _, err := m.profiles.Execute(c.Request.Context(), usecases.SyncProfileCommand{
				UserID:      claims.UserID(),
				Email:       claims.Email,
				DisplayName: claims.Name,
			}); err != nil {
				m.logger.Warnw("failed to sync user profile", "user_id", claims.UserID(), "error", err)
			}
		}

		c.Next()
	}
}

// CurrentUserID returns the authenticated subject set by RequireAuth.
func CurrentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// CurrentUserRole returns the role claim of the caller, if any.
func CurrentUserRole(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserRole)
}
