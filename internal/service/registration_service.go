package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/hackreg-api/internal/models"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
)

type applicantCreator interface {
	Create(ctx context.Context, applicant *models.Applicant) error
}

// SheetSink receives a copy of every created applicant. Delivery is
// fire-and-forget; the sink never influences the registration outcome.
type SheetSink interface {
	AppendApplicant(applicant models.Applicant)
}

// RegisterRequest holds the applicant intake payload.
type RegisterRequest struct {
	FullName     string `json:"full_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	Track        string `json:"track" validate:"required"`
	TeamSize     int    `json:"team_size" validate:"omitempty,gte=1,lte=6"`
	ReferralCode string `json:"referral_code"`
}

// RegistrationService handles applicant intake.
type RegistrationService struct {
	repo      applicantCreator
	sheet     SheetSink
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService constructs the registration service.
func NewRegistrationService(repo applicantCreator, sheet SheetSink, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{repo: repo, sheet: sheet, validator: validate, logger: logger}
}

// Register creates the applicant row. The payment fields stay unset
// until a payment reference is linked.
func (s *RegistrationService) Register(ctx context.Context, req RegisterRequest) (*models.Applicant, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	applicant := &models.Applicant{
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		Track:             req.Track,
		TeamSize:          req.TeamSize,
		PaymentStatus:     models.PaymentStatusUnset,
		ApplicationStatus: models.ApplicationStatusSubmitted,
	}
	if applicant.TeamSize == 0 {
		applicant.TeamSize = 1
	}
	if req.ReferralCode != "" {
		code := req.ReferralCode
		applicant.ReferralCode = &code
	}

	if err := s.repo.Create(ctx, applicant); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create applicant")
	}

	if s.sheet != nil {
		s.sheet.AppendApplicant(*applicant)
	}

	s.logger.Info("applicant registered",
		zap.String("applicant_id", applicant.ID),
		zap.String("track", applicant.Track))

	return applicant, nil
}
