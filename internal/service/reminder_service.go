package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hackreg-api/internal/models"
	"github.com/noah-isme/hackreg-api/internal/notify"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
)

type reminderRepository interface {
	FetchForReminder(ctx context.Context, id string) (*models.ReminderContext, error)
}

// ReminderResult reports the outcome of a reminder request.
type ReminderResult struct {
	AlreadyPaid bool
}

// ReminderService sends payment-pending nudges. Dispatch failure is
// logged and swallowed; the reminder is a secondary effect and never
// fails the request.
type ReminderService struct {
	repo       reminderRepository
	dispatcher notify.Dispatcher
	resumeURL  string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewReminderService constructs the reminder service.
func NewReminderService(repo reminderRepository, dispatcher notify.Dispatcher, resumeURL string, timeout time.Duration, logger *zap.Logger) *ReminderService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{repo: repo, dispatcher: dispatcher, resumeURL: resumeURL, timeout: timeout, logger: logger}
}

// SendReminder looks up the applicant and dispatches a payment-pending
// notification. An already-paid applicant short-circuits with zero
// dispatcher calls.
func (s *ReminderService) SendReminder(ctx context.Context, applicantID string) (*ReminderResult, error) {
	if applicantID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "applicantId is required")
	}

	rc, err := s.repo.FetchForReminder(ctx, applicantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "applicant not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applicant")
	}

	if rc.PaymentStatus == models.PaymentStatusPaid {
		return &ReminderResult{AlreadyPaid: true}, nil
	}

	if s.dispatcher != nil {
		dispatchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		if err := s.dispatcher.SendPaymentPending(dispatchCtx, rc.Email, rc.Phone, rc.FullName, s.resumeURL); err != nil {
			s.logger.Warn("payment reminder dispatch failed",
				zap.String("applicant_id", rc.ID),
				zap.Error(err))
		}
	}

	return &ReminderResult{}, nil
}
