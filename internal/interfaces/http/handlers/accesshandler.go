package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelgate-inc/reelgate/internal/application/access/usecases"
	"github.com/reelgate-inc/reelgate/internal/interfaces/http/middleware"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
	"github.com/reelgate-inc/reelgate/internal/shared/utils"
)

type AccessHandler struct {
	checkAccessUC checkAccessUseCase
	logger        logger.Interface
}

func NewAccessHandler(checkAccessUC checkAccessUseCase, logger logger.Interface) *AccessHandler {
	return &AccessHandler{
		checkAccessUC: checkAccessUC,
		logger:        logger,
	}
}

// GetMyAccess reports the caller's effective access to one content category.
//
//	@Summary		Effective access
//	@Tags			content
//	@Produce		json
//	@Security		Bearer
//	@Param			category	query		string	true	"episode or extra"
//	@Success		200			{object}	utils.APIResponse	"Access decision"
//	@Failure		400			{object}	utils.APIResponse	"Missing or unknown category"
//	@Failure		401			{object}	utils.APIResponse	"Unauthorized"
//	@Router			/access/me [get]
func (h *AccessHandler) GetMyAccess(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	category := c.Query("category")
	if category == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "category query parameter is required")
		return
	}

	result, err := h.checkAccessUC.Execute(c.Request.Context(), usecases.CheckAccessQuery{
		UserID:   userID,
		Category: category,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
