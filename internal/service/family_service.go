package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/hackreg-api/internal/models"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
)

type familyRepository interface {
	Insert(ctx context.Context, fc *models.FamilyContext) error
}

// RecordFamilyRequest holds the guardian/income payload.
type RecordFamilyRequest struct {
	ApplicantID        string `json:"applicant_id" validate:"required"`
	GuardianName       string `json:"guardian_name"`
	GuardianProfession string `json:"guardian_profession"`
	IncomeRange        string `json:"income_range"`
}

// FamilyService records supplementary family context. The applicant id
// is not verified against the applicants table here; referential
// integrity, where wanted, lives in the schema.
type FamilyService struct {
	repo      familyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFamilyService constructs the family service.
func NewFamilyService(repo familyRepository, validate *validator.Validate, logger *zap.Logger) *FamilyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FamilyService{repo: repo, validator: validate, logger: logger}
}

// Record inserts one family context row.
func (s *FamilyService) Record(ctx context.Context, req RecordFamilyRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "applicant_id is required")
	}

	fc := &models.FamilyContext{
		ApplicantID:        req.ApplicantID,
		GuardianName:       req.GuardianName,
		GuardianProfession: req.GuardianProfession,
		IncomeRange:        req.IncomeRange,
	}
	if err := s.repo.Insert(ctx, fc); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record family context")
	}
	return nil
}
