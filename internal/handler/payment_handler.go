package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hackreg-api/internal/service"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
	"github.com/noah-isme/hackreg-api/pkg/response"
)

// PaymentHandler exposes payment-reference linking and context lookup.
type PaymentHandler struct {
	payments *service.PaymentService
	metrics  *service.MetricsService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService, metrics *service.MetricsService) *PaymentHandler {
	return &PaymentHandler{payments: payments, metrics: metrics}
}

// UpdateReference godoc
// @Summary Link a payment provider order id to an applicant
// @Tags Payment
// @Accept json
// @Produce json
// @Param payload body service.LinkPaymentRequest true "Link payload"
// @Success 200 {object} map[string]bool
// @Router /register/update-ref [post]
func (h *PaymentHandler) UpdateReference(c *gin.Context) {
	var req service.LinkPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.payments.LinkPaymentReference(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountPaymentLink()
	response.JSON(c, http.StatusOK, gin.H{"success": true})
}

// Context godoc
// @Summary Fetch the payment context projection for an applicant
// @Tags Payment
// @Produce json
// @Param id query string true "Applicant ID"
// @Success 200 {object} models.PaymentContext
// @Router /payment-context [get]
func (h *PaymentHandler) Context(c *gin.Context) {
	pc, err := h.payments.PaymentContext(c.Request.Context(), c.Query("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pc)
}
