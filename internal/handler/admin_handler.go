package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hackreg-api/internal/models"
	"github.com/noah-isme/hackreg-api/internal/service"
	"github.com/noah-isme/hackreg-api/pkg/response"
)

// AdminHandler exposes the operator verification endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// List godoc
// @Summary List applicants
// @Tags Admin
// @Produce json
// @Param search query string false "Search by name or email"
// @Param track query string false "Filter by track"
// @Param paymentStatus query string false "Filter by payment status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/applicants [get]
func (h *AdminHandler) List(c *gin.Context) {
	var filter models.ApplicantFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Track = c.Query("track")
	filter.PaymentStatus = c.Query("paymentStatus")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	applicants, pagination, err := h.admin.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"applicants": applicants, "pagination": pagination})
}

// Export godoc
// @Summary Export the applicant roster
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /admin/applicants/export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	roster, err := h.admin.ExportRoster(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+roster.FileName)
	c.Data(http.StatusOK, roster.ContentType, roster.Data)
}
