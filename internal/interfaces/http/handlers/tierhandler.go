package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelgate-inc/reelgate/internal/application/purchase/dto"
	"github.com/reelgate-inc/reelgate/internal/domain/tier"
	"github.com/reelgate-inc/reelgate/internal/shared/utils"
)

type TierHandler struct {
	tiers []dto.TierResponse
}

// NewTierHandler renders the catalog once; it never changes at runtime.
func NewTierHandler() *TierHandler {
	return &TierHandler{tiers: dto.ToTierResponses(tier.All())}
}

// ListTiers returns the public tier catalog in display order.
//
//	@Summary		List tiers
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	utils.APIResponse	"Tier catalog"
//	@Router			/tiers [get]
func (h *TierHandler) ListTiers(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.tiers)
}
