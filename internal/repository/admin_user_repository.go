package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/hackreg-api/internal/models"
	"github.com/noah-isme/hackreg-api/pkg/database"
)

// AdminUserRepository manages operator accounts.
type AdminUserRepository struct {
	db *database.Dual
}

// NewAdminUserRepository constructs an AdminUserRepository.
func NewAdminUserRepository(db *database.Dual) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// FindByEmail fetches an admin account by email.
func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	const query = `SELECT id, email, password_hash, active, created_at, last_login_at
        FROM admin_users WHERE email = $1`
	var user models.AdminUser
	if err := r.db.Public.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin stamps the last successful login.
func (r *AdminUserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	if _, err := r.db.Public.ExecContext(ctx, "UPDATE admin_users SET last_login_at = $2 WHERE id = $1", id, ts); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
