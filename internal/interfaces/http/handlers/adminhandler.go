package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelgate-inc/reelgate/internal/application/notification/dto"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
	"github.com/reelgate-inc/reelgate/internal/shared/utils"
)

// AdminHandler serves operator endpoints. Routes are guarded by casbin.
type AdminHandler struct {
	getUserEntitlementsUC getUserEntitlementsUseCase
	notifier              batchJob
	logger                logger.Interface
}

func NewAdminHandler(
	getUserEntitlementsUC getUserEntitlementsUseCase,
	notifier batchJob,
	logger logger.Interface,
) *AdminHandler {
	return &AdminHandler{
		getUserEntitlementsUC: getUserEntitlementsUC,
		notifier:              notifier,
		logger:                logger,
	}
}

// GetUserEntitlements handles GET /admin/users/:user_id/entitlements
//
//	@Summary		Entitlement history
//	@Tags			admin
//	@Produce		json
//	@Security		Bearer
//	@Param			user_id	path		string	true	"User ID"
//	@Success		200		{object}	utils.APIResponse	"Current holding and history"
//	@Failure		403		{object}	utils.APIResponse	"Forbidden"
//	@Router			/admin/users/{user_id}/entitlements [get]
func (h *AdminHandler) GetUserEntitlements(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "user_id is required")
		return
	}

	result, err := h.getUserEntitlementsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RunNotifier runs one expiration-notifier pass synchronously.
//
//	@Summary		Run expiration notifier
//	@Tags			admin
//	@Produce		json
//	@Security		Bearer
//	@Success		200	{object}	utils.APIResponse	"Notices sent"
//	@Failure		403	{object}	utils.APIResponse	"Forbidden"
//	@Router			/admin/notifier/run [post]
func (h *AdminHandler) RunNotifier(c *gin.Context) {
	sent, err := h.notifier.Execute(c.Request.Context())
	result := dto.RunResult{Sent: sent, Incomplete: err != nil}
	if err != nil {
		h.logger.Errorw("manual notifier run finished with errors", "sent", sent, "error", err)
		utils.SuccessResponse(c, http.StatusOK, "notifier run finished with errors", result)
		return
	}

	h.logger.Infow("manual notifier run finished", "sent", sent)
	utils.SuccessResponse(c, http.StatusOK, "notifier run finished", result)
}
