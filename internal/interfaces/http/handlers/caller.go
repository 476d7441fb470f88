package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelgate-inc/reelgate/internal/interfaces/http/middleware"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
	"github.com/reelgate-inc/reelgate/internal/shared/utils"
)

// requireSelf checks that the user named in a request body is the caller.
// It writes the error response and returns false otherwise.
func requireSelf(c *gin.Context, log logger.Interface, requested string) (string, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return "", false
	}
	if requested != userID {
		log.Warnw("request names a different user",
			"security_event", true,
			"user_id", userID,
			"requested_user_id", requested,
			"path", c.Request.URL.Path,
		)
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("user mismatch"))
		return "", false
	}
	return userID, true
}
