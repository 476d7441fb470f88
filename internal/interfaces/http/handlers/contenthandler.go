package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelgate-inc/reelgate/internal/application/access/usecases"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
	"github.com/reelgate-inc/reelgate/internal/shared/utils"
)

type ContentHandler struct {
	mintPlaybackURLUC mintPlaybackURLUseCase
	logger            logger.Interface
}

func NewContentHandler(mintPlaybackURLUC mintPlaybackURLUseCase, logger logger.Interface) *ContentHandler {
	return &ContentHandler{
		mintPlaybackURLUC: mintPlaybackURLUC,
		logger:            logger,
	}
}

type PlaybackURLRequest struct {
	UserID    string `json:"user_id" binding:"required" validate:"max=128"`
	ContentID string `json:"content_id" binding:"required" validate:"max=64"`
	Category  string `json:"category" validate:"max=32"`
}

type PlaybackURLResponse struct {
	ContentID string    `json:"content_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PlaybackURL issues a short-lived signed URL when the caller has access
// to the content's category.
//
//	@Summary		Mint playback URL
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		PlaybackURLRequest	true	"User and content"
//	@Success		200		{object}	utils.APIResponse	"Signed URL"
//	@Failure		400		{object}	utils.APIResponse	"Malformed request"
//	@Failure		401		{object}	utils.APIResponse	"Unauthorized"
//	@Failure		403		{object}	utils.APIResponse	"No access"
//	@Failure		404		{object}	utils.APIResponse	"Unknown content"
//	@Failure		429		{object}	utils.APIResponse	"Rate limited"
//	@Router			/content/playback-url [post]
func (h *ContentHandler) PlaybackURL(c *gin.Context) {
	var req PlaybackURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid playback request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: user_id and content_id are required")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, ok := requireSelf(c, h.logger, req.UserID)
	if !ok {
		return
	}

	result, err := h.mintPlaybackURLUC.Execute(c.Request.Context(), usecases.MintPlaybackURLCommand{
		UserID:    userID,
		ContentID: req.ContentID,
		Category:  req.Category,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if !result.Granted {
		utils.DeniedResponse(c, result.Reason)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", PlaybackURLResponse{
		ContentID: result.ContentID,
		URL:       result.URL,
		ExpiresAt: result.ExpiresAt,
	})
}
