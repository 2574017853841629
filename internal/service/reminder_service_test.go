package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hackreg-api/internal/models"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
)

type mockReminderRepo struct {
	fetchFn func(ctx context.Context, id string) (*models.ReminderContext, error)
	calls   int
}

func (m *mockReminderRepo) FetchForReminder(ctx context.Context, id string) (*models.ReminderContext, error) {
	m.calls++
	return m.fetchFn(ctx, id)
}

type spyDispatcher struct {
	calls     int
	lastEmail string
	lastLink  string
	err       error
}

func (s *spyDispatcher) SendPaymentPending(ctx context.Context, email, phone, name, resumeLink string) error {
	s.calls++
	s.lastEmail = email
	s.lastLink = resumeLink
	return s.err
}

func pendingContext(id string) *models.ReminderContext {
	return &models.ReminderContext{ID: id, Email: "jane@x.com", Phone: "9876543210", FullName: "Jane", PaymentStatus: models.PaymentStatusPending}
}

func TestReminderServiceSendReminder(t *testing.T) {
	repo := &mockReminderRepo{fetchFn: func(ctx context.Context, id string) (*models.ReminderContext, error) {
		return pendingContext(id), nil
	}}
	dispatcher := &spyDispatcher{}
	svc := NewReminderService(repo, dispatcher, "https://reg.example.com/resume", 0, nil)

	result, err := svc.SendReminder(context.Background(), "id1")
	require.NoError(t, err)
	assert.False(t, result.AlreadyPaid)
	assert.Equal(t, 1, dispatcher.calls)
	assert.Equal(t, "jane@x.com", dispatcher.lastEmail)
	assert.Equal(t, "https://reg.example.com/resume", dispatcher.lastLink)
}

func TestReminderServiceSendReminderMissingID(t *testing.T) {
	repo := &mockReminderRepo{}
	svc := NewReminderService(repo, &spyDispatcher{}, "", 0, nil)

	_, err := svc.SendReminder(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.Equal(t, 0, repo.calls)
}

func TestReminderServiceSendReminderAlreadyPaid(t *testing.T) {
	repo := &mockReminderRepo{fetchFn: func(ctx context.Context, id string) (*models.ReminderContext, error) {
		rc := pendingContext(id)
		rc.PaymentStatus = models.PaymentStatusPaid
		return rc, nil
	}}
	dispatcher := &spyDispatcher{}
	svc := NewReminderService(repo, dispatcher, "", 0, nil)

	result, err := svc.SendReminder(context.Background(), "id1")
	require.NoError(t, err)
	assert.True(t, result.AlreadyPaid)
	assert.Equal(t, 0, dispatcher.calls)
}

func TestReminderServiceSendReminderUnknownApplicant(t *testing.T) {
	repo := &mockReminderRepo{fetchFn: func(ctx context.Context, id string) (*models.ReminderContext, error) {
		return nil, sql.ErrNoRows
	}}
	svc := NewReminderService(repo, &spyDispatcher{}, "", 0, nil)

	_, err := svc.SendReminder(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestReminderServiceSendReminderDispatchFailureSwallowed(t *testing.T) {
	repo := &mockReminderRepo{fetchFn: func(ctx context.Context, id string) (*models.ReminderContext, error) {
		return pendingContext(id), nil
	}}
	dispatcher := &spyDispatcher{err: errors.New("ses throttled")}
	svc := NewReminderService(repo, dispatcher, "", 0, nil)

	result, err := svc.SendReminder(context.Background(), "id1")
	require.NoError(t, err)
	assert.False(t, result.AlreadyPaid)
	assert.Equal(t, 1, dispatcher.calls)
}

func TestReminderServiceSendReminderWithoutDispatcher(t *testing.T) {
	repo := &mockReminderRepo{fetchFn: func(ctx context.Context, id string) (*models.ReminderContext, error) {
		return pendingContext(id), nil
	}}
	svc := NewReminderService(repo, nil, "", 0, nil)

	result, err := svc.SendReminder(context.Background(), "id1")
	require.NoError(t, err)
	assert.False(t, result.AlreadyPaid)
}
