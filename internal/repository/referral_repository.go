package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/hackreg-api/internal/models"
	"github.com/noah-isme/hackreg-api/pkg/database"
)

// ReferralRepository reads the referrer registry. Codes are provisioned
// out of band; this service never writes them.
type ReferralRepository struct {
	db *database.Dual
}

// NewReferralRepository constructs a ReferralRepository.
func NewReferralRepository(db *database.Dual) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// FindActiveByCode returns the active code row for an exact code match.
// sql.ErrNoRows when absent or inactive.
func (r *ReferralRepository) FindActiveByCode(ctx context.Context, code string) (*models.ReferralCode, error) {
	const query = `SELECT id, code, referrer_name, discount_percent, active, max_uses, expires_at, created_at
        FROM referral_codes WHERE code = $1 AND active = true`
	var rc models.ReferralCode
	if err := r.db.Public.GetContext(ctx, &rc, query, code); err != nil {
		return nil, err
	}
	return &rc, nil
}

// CountUses counts applicants registered with the code.
func (r *ReferralRepository) CountUses(ctx context.Context, code string) (int, error) {
	var count int
	if err := r.db.Public.GetContext(ctx, &count, "SELECT COUNT(*) FROM applicants WHERE referral_code = $1", code); err != nil {
		return 0, fmt.Errorf("count code uses: %w", err)
	}
	return count, nil
}

// UsedByEmail reports whether the email already registered with the code.
func (r *ReferralRepository) UsedByEmail(ctx context.Context, code, email string) (bool, error) {
	var count int
	const query = "SELECT COUNT(*) FROM applicants WHERE referral_code = $1 AND email = $2"
	if err := r.db.Public.GetContext(ctx, &count, query, code, email); err != nil {
		return false, fmt.Errorf("check code usage: %w", err)
	}
	return count > 0, nil
}
