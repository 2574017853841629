package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hackreg-api/internal/service"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
	"github.com/noah-isme/hackreg-api/pkg/response"
)

// AuthHandler exposes operator login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Operator login
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.LoginRequest true "Credentials"
// @Success 200 {object} service.LoginResponse
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
