package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hackreg-api/internal/service"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
	"github.com/noah-isme/hackreg-api/pkg/response"
)

// ReminderHandler exposes the payment-pending reminder endpoint.
type ReminderHandler struct {
	reminders *service.ReminderService
}

// NewReminderHandler constructs ReminderHandler.
func NewReminderHandler(reminders *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

type sendReminderRequest struct {
	ApplicantID string `json:"applicantId"`
}

// Send godoc
// @Summary Send a payment-pending reminder to an applicant
// @Tags Payment
// @Accept json
// @Produce json
// @Param payload body sendReminderRequest true "Reminder payload"
// @Success 200 {object} map[string]interface{}
// @Router /send-payment-reminder [post]
func (h *ReminderHandler) Send(c *gin.Context) {
	var req sendReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.reminders.SendReminder(c.Request.Context(), req.ApplicantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.AlreadyPaid {
		response.JSON(c, http.StatusOK, gin.H{"message": "already paid"})
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true})
}
