package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/hackreg-api/internal/models"
	"github.com/noah-isme/hackreg-api/internal/service"
)

type applicantCreatorStub struct {
	calls int
}

func (s *applicantCreatorStub) Create(ctx context.Context, applicant *models.Applicant) error {
	s.calls++
	applicant.ID = "generated-id"
	return nil
}

func registrationRouter(stub *applicantCreatorStub) *gin.Engine {
	svc := service.NewRegistrationService(stub, nil, nil, nil)
	h := NewRegistrationHandler(svc, nil)
	r := gin.New()
	r.POST("/api/register", h.Register)
	return r
}

func TestRegistrationHandlerRegister(t *testing.T) {
	stub := &applicantCreatorStub{}
	r := registrationRouter(stub)

	w := performRequest(r, http.MethodPost, "/api/register", gin.H{
		"full_name": "Jane Doe",
		"email":     "jane@x.com",
		"phone":     "9876543210",
		"track":     "ai-ml",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "generated-id", body["id"])
	assert.Equal(t, "", body["payment_status"])
	assert.Equal(t, "submitted", body["application_status"])
	assert.Equal(t, 1, stub.calls)
}

func TestRegistrationHandlerRegisterInvalidPayload(t *testing.T) {
	stub := &applicantCreatorStub{}
	r := registrationRouter(stub)

	w := performRequest(r, http.MethodPost, "/api/register", gin.H{"email": "jane@x.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, 0, stub.calls)
}
