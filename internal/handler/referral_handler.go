package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hackreg-api/internal/service"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
)

// ReferralHandler exposes referral code validation.
type ReferralHandler struct {
	referrals *service.ReferralService
}

// NewReferralHandler constructs ReferralHandler.
func NewReferralHandler(referrals *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{referrals: referrals}
}

type validateReferralRequest struct {
	Code  string `json:"code"`
	Email string `json:"email"`
}

// Validate godoc
// @Summary Validate a referral code
// @Tags Registration
// @Accept json
// @Produce json
// @Param payload body validateReferralRequest true "Referral payload"
// @Success 200 {object} service.ValidateResult
// @Router /validate-referral [post]
func (h *ReferralHandler) Validate(c *gin.Context) {
	var req validateReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "invalid payload"})
		return
	}
	result, err := h.referrals.Validate(c.Request.Context(), req.Code, req.Email)
	if err != nil {
		// Store failures must not crash the caller; they surface as a
		// non-2xx with the validation verdict shape.
		appErr := appErrors.FromError(err)
		c.JSON(appErr.Status, gin.H{"valid": false, "error": appErr.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
