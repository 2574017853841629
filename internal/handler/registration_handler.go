package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hackreg-api/internal/service"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
	"github.com/noah-isme/hackreg-api/pkg/response"
)

// RegistrationHandler exposes the applicant intake endpoint.
type RegistrationHandler struct {
	registrations *service.RegistrationService
	metrics       *service.MetricsService
}

// NewRegistrationHandler constructs RegistrationHandler.
func NewRegistrationHandler(registrations *service.RegistrationService, metrics *service.MetricsService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, metrics: metrics}
}

// Register godoc
// @Summary Register an applicant
// @Tags Registration
// @Accept json
// @Produce json
// @Param payload body service.RegisterRequest true "Registration payload"
// @Success 201 {object} models.Applicant
// @Router /register [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	applicant, err := h.registrations.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountRegistration()
	response.Created(c, applicant)
}
