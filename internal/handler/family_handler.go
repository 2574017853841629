package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hackreg-api/internal/service"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
	"github.com/noah-isme/hackreg-api/pkg/response"
)

// FamilyHandler exposes the family context endpoint.
type FamilyHandler struct {
	families *service.FamilyService
}

// NewFamilyHandler constructs FamilyHandler.
func NewFamilyHandler(families *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{families: families}
}

// Record godoc
// @Summary Record guardian and income data for an applicant
// @Tags Registration
// @Accept json
// @Produce json
// @Param payload body service.RecordFamilyRequest true "Family payload"
// @Success 200 {object} map[string]string
// @Router /register/family [post]
func (h *FamilyHandler) Record(c *gin.Context) {
	var req service.RecordFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.families.Record(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}
