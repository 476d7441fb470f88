package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelgate-inc/reelgate/internal/application/purchase/usecases"
	"github.com/reelgate-inc/reelgate/internal/shared/constants"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
	"github.com/reelgate-inc/reelgate/internal/shared/utils"
)

type PurchaseHandler struct {
	checkEligibilityUC checkEligibilityUseCase
	createCheckoutUC   createCheckoutUseCase
	handleWebhookUC    handleWebhookUseCase
	logger             logger.Interface
}

func NewPurchaseHandler(
	checkEligibilityUC checkEligibilityUseCase,
	createCheckoutUC createCheckoutUseCase,
	handleWebhookUC handleWebhookUseCase,
	logger logger.Interface,
) *PurchaseHandler {
	return &PurchaseHandler{
		checkEligibilityUC: checkEligibilityUC,
		createCheckoutUC:   createCheckoutUC,
		handleWebhookUC:    handleWebhookUC,
		logger:             logger,
	}
}

type PurchaseRequest struct {
	UserID string `json:"user_id" binding:"required" validate:"max=128"`
	Tier   string `json:"tier" binding:"required" validate:"max=32"`
}

type CheckoutSessionResponse struct {
	Reference   string `json:"reference"`
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

// Validate answers whether the caller may buy a tier right now.
//
//	@Summary		Check purchase eligibility
//	@Description	Reports whether the caller may buy the tier given what they already own
//	@Tags			purchases
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		PurchaseRequest	true	"User and tier"
//	@Success		200		{object}	utils.APIResponse	"Eligibility result"
//	@Failure		400		{object}	utils.APIResponse	"Malformed request or unknown tier"
//	@Failure		401		{object}	utils.APIResponse	"Unauthorized"
//	@Failure		403		{object}	utils.APIResponse	"User mismatch"
//	@Router			/purchases/validate [post]
func (h *PurchaseHandler) Validate(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid purchase validation request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: user_id and tier are required")
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

	result, err := h.checkEligibilityUC.Execute(c.Request.Context(), usecases.CheckEligibilityCommand{
		UserID: userID,
		Tier:   req.Tier,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Checkout opens a hosted payment session when the caller is eligible.
//
//	@Summary		Create checkout session
//	@Description	Opens a hosted payment session for an eligible caller
//	@Tags			purchases
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		PurchaseRequest	true	"User and tier"
//	@Success		200		{object}	utils.APIResponse	"Checkout created"
//	@Failure		400		{object}	utils.APIResponse	"Malformed request or unknown tier"
//	@Failure		401		{object}	utils.APIResponse	"Unauthorized"
//	@Failure		403		{object}	utils.APIResponse	"Purchase not allowed"
//	@Failure		502		{object}	utils.APIResponse	"Payment processor unavailable"
//	@Router			/purchases/checkout [post]
func (h *PurchaseHandler) Checkout(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid checkout request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: user_id and tier are required")
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

	result, err := h.createCheckoutUC.Execute(c.Request.Context(), usecases.CreateCheckoutCommand{
		UserID: userID,
		Tier:   req.Tier,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if !result.Allowed {
		utils.DeniedResponse(c, result.Reason)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "checkout created", CheckoutSessionResponse{
		Reference:   result.Reference,
		SessionID:   result.SessionID,
		RedirectURL: result.RedirectURL,
	})
}

// Webhook receives payment processor events. Any 2xx tells the processor
// to stop retrying, so only failures worth retrying answer with 5xx.
//
//	@Summary		Payment processor webhook
//	@Tags			purchases
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string	true	"Processor signature"
//	@Success		200				{object}	utils.APIResponse	"Event acknowledged"
//	@Failure		400				{object}	utils.APIResponse	"Invalid signature, amount or payload"
//	@Failure		413				{object}	utils.APIResponse	"Payload too large"
//	@Failure		500				{object}	utils.APIResponse	"Retry later"
//	@Router			/purchases/webhook [post]
func (h *PurchaseHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, constants.MaxWebhookBodyBytes+1))
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "unreadable request body")
		return
	}
	if len(payload) > constants.MaxWebhookBodyBytes {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	result, err := h.handleWebhookUC.Execute(c.Request.Context(), payload, c.GetHeader(constants.HeaderStripeSignature))
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Code < http.StatusInternalServerError {
			utils.ErrorResponseWithError(c, appErr)
			return
		}
		h.logger.Errorw("webhook processing failed, processor will retry", "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("webhook processing failed"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
