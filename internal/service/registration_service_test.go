package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hackreg-api/internal/models"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
)

type mockApplicantCreator struct {
	createFn func(ctx context.Context, applicant *models.Applicant) error
	calls    int
}

func (m *mockApplicantCreator) Create(ctx context.Context, applicant *models.Applicant) error {
	m.calls++
	if m.createFn != nil {
		return m.createFn(ctx, applicant)
	}
	applicant.ID = "generated-id"
	return nil
}

type spySheetSink struct {
	appended []models.Applicant
}

func (s *spySheetSink) AppendApplicant(applicant models.Applicant) {
	s.appended = append(s.appended, applicant)
}

func TestRegistrationServiceRegister(t *testing.T) {
	repo := &mockApplicantCreator{}
	sink := &spySheetSink{}
	svc := NewRegistrationService(repo, sink, nil, nil)

	applicant, err := svc.Register(context.Background(), RegisterRequest{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		Phone:    "9876543210",
		Track:    "ai-ml",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, models.PaymentStatusUnset, applicant.PaymentStatus)
	assert.Equal(t, models.ApplicationStatusSubmitted, applicant.ApplicationStatus)
	assert.Equal(t, 1, applicant.TeamSize)
	assert.Nil(t, applicant.ReferralCode)

	require.Len(t, sink.appended, 1)
	assert.Equal(t, "jane@x.com", sink.appended[0].Email)
}

func TestRegistrationServiceRegisterCarriesReferralCode(t *testing.T) {
	repo := &mockApplicantCreator{}
	svc := NewRegistrationService(repo, nil, nil, nil)

	applicant, err := svc.Register(context.Background(), RegisterRequest{
		FullName:     "Jane Doe",
		Email:        "jane@x.com",
		Phone:        "9876543210",
		Track:        "web",
		TeamSize:     3,
		ReferralCode: "CAMPUS20",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, applicant.TeamSize)
	require.NotNil(t, applicant.ReferralCode)
	assert.Equal(t, "CAMPUS20", *applicant.ReferralCode)
}

func TestRegistrationServiceRegisterValidation(t *testing.T) {
	repo := &mockApplicantCreator{}
	sink := &spySheetSink{}
	svc := NewRegistrationService(repo, sink, nil, nil)

	cases := []RegisterRequest{
		{Email: "jane@x.com", Phone: "9876543210", Track: "ai-ml"},
		{FullName: "Jane", Email: "not-an-email", Phone: "9876543210", Track: "ai-ml"},
		{FullName: "Jane", Email: "jane@x.com", Track: "ai-ml"},
		{FullName: "Jane", Email: "jane@x.com", Phone: "9876543210"},
		{FullName: "Jane", Email: "jane@x.com", Phone: "9876543210", Track: "ai-ml", TeamSize: 9},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
	assert.Equal(t, 0, repo.calls)
	assert.Empty(t, sink.appended)
}

func TestRegistrationServiceRegisterStoreFailure(t *testing.T) {
	repo := &mockApplicantCreator{createFn: func(ctx context.Context, applicant *models.Applicant) error {
		return errors.New("connection refused")
	}}
	sink := &spySheetSink{}
	svc := NewRegistrationService(repo, sink, nil, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		FullName: "Jane",
		Email:    "jane@x.com",
		Phone:    "9876543210",
		Track:    "ai-ml",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Status, appErrors.FromError(err).Status)
	assert.Empty(t, sink.appended)
}

func TestRegistrationServiceRegisterWithoutSink(t *testing.T) {
	svc := NewRegistrationService(&mockApplicantCreator{}, nil, nil, nil)
	_, err := svc.Register(context.Background(), RegisterRequest{
		FullName: "Jane",
		Email:    "jane@x.com",
		Phone:    "9876543210",
		Track:    "ai-ml",
	})
	require.NoError(t, err)
}
