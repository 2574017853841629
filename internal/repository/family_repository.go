package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/hackreg-api/internal/models"
	"github.com/noah-isme/hackreg-api/pkg/database"
)

// FamilyRepository persists guardian/income rows. Referential integrity
// against applicants is left to the store schema; one applicant may hold
// several rows.
type FamilyRepository struct {
	db *database.Dual
}

// NewFamilyRepository constructs a FamilyRepository.
func NewFamilyRepository(db *database.Dual) *FamilyRepository {
	return &FamilyRepository{db: db}
}

func (r *FamilyRepository) writer() *sqlx.DB {
	if r.db.Admin != nil {
		return r.db.Admin
	}
	return r.db.Public
}

// Insert stores one family context row.
func (r *FamilyRepository) Insert(ctx context.Context, fc *models.FamilyContext) error {
	if fc.ID == "" {
		fc.ID = uuid.NewString()
	}
	if fc.CreatedAt.IsZero() {
		fc.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO family_contexts (id, applicant_id, guardian_name, guardian_profession, income_range, created_at)
        VALUES (:id, :applicant_id, :guardian_name, :guardian_profession, :income_range, :created_at)`
	if _, err := r.writer().NamedExecContext(ctx, query, fc); err != nil {
		return fmt.Errorf("insert family context: %w", err)
	}
	return nil
}
