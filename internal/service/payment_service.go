package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/hackreg-api/internal/models"
	"github.com/noah-isme/hackreg-api/internal/repository"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
)

type applicantPaymentRepository interface {
	UpdatePaymentReference(ctx context.Context, id, paymentReference string) error
	FetchPaymentContext(ctx context.Context, id string) (*models.PaymentContext, error)
}

// LinkPaymentRequest carries the provider order id to record before the
// client is redirected to the payment provider.
type LinkPaymentRequest struct {
	ID               string `json:"id" validate:"required"`
	PaymentReference string `json:"payment_reference" validate:"required"`
}

// PaymentService links provider references and serves payment context.
type PaymentService struct {
	repo      applicantPaymentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs the payment service.
func NewPaymentService(repo applicantPaymentRepository, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{repo: repo, validator: validate, logger: logger}
}

// LinkPaymentReference records the provider order id and moves the row
// to pending. The write runs on the elevated credential; its absence is
// a server misconfiguration, not a client error.
func (s *PaymentService) LinkPaymentReference(ctx context.Context, req LinkPaymentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "id and payment_reference are required")
	}

	if err := s.repo.UpdatePaymentReference(ctx, req.ID, req.PaymentReference); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoElevatedCredential):
			s.logger.Error("payment link attempted without elevated credential")
			return appErrors.Clone(appErrors.ErrConfig, "payment service credential not configured")
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "applicant not found")
		case errors.Is(err, repository.ErrPaymentFinalized):
			return appErrors.Clone(appErrors.ErrConflict, "payment already completed")
		default:
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to link payment reference")
		}
	}

	s.logger.Info("payment reference linked",
		zap.String("applicant_id", req.ID),
		zap.String("payment_reference", req.PaymentReference))

	return nil
}

// PaymentContext returns the projection a payment integration needs.
func (s *PaymentService) PaymentContext(ctx context.Context, id string) (*models.PaymentContext, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}

	pc, err := s.repo.FetchPaymentContext(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "applicant not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment context")
	}
	return pc, nil
}
