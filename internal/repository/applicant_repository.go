package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/hackreg-api/internal/models"
	"github.com/noah-isme/hackreg-api/pkg/database"
)

// ErrNoElevatedCredential signals that a write requiring the elevated
// database credential was attempted without one configured.
var ErrNoElevatedCredential = errors.New("elevated database credential not configured")

// ErrPaymentFinalized signals an attempt to move a paid applicant back
// to pending.
var ErrPaymentFinalized = errors.New("payment already completed")

// ApplicantRepository manages persistence for applicant records.
type ApplicantRepository struct {
	db *database.Dual
}

// NewApplicantRepository constructs an ApplicantRepository.
func NewApplicantRepository(db *database.Dual) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

// writer prefers the elevated handle so inserts succeed even when
// row-level restrictions block the anonymous role.
func (r *ApplicantRepository) writer() *sqlx.DB {
	if r.db.Admin != nil {
		return r.db.Admin
	}
	return r.db.Public
}

// Create inserts a new applicant row. Payment fields start empty; the
// row stays in submitted state until a payment reference is linked.
func (r *ApplicantRepository) Create(ctx context.Context, applicant *models.Applicant) error {
	if applicant.ID == "" {
		applicant.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if applicant.CreatedAt.IsZero() {
		applicant.CreatedAt = now
	}
	applicant.UpdatedAt = now
	if applicant.ApplicationStatus == "" {
		applicant.ApplicationStatus = models.ApplicationStatusSubmitted
	}
	const query = `INSERT INTO applicants (id, full_name, email, phone, track, team_size, referral_code, payment_status, application_status, created_at, updated_at)
        VALUES (:id, :full_name, :email, :phone, :track, :team_size, :referral_code, :payment_status, :application_status, :created_at, :updated_at)`
	if _, err := r.writer().NamedExecContext(ctx, query, applicant); err != nil {
		return fmt.Errorf("create applicant: %w", err)
	}
	return nil
}

// UpdatePaymentReference links a provider order id and marks the row
// pending. Requires the elevated credential: the caller is anonymous and
// holds only the applicant id, so row-level restrictions would block the
// write on the public role. The predicate excludes paid rows so a
// completed payment never regresses; between two pending writes the last
// one wins.
func (r *ApplicantRepository) UpdatePaymentReference(ctx context.Context, id, paymentReference string) error {
	if r.db.Admin == nil {
		return ErrNoElevatedCredential
	}

	const query = `UPDATE applicants
        SET payment_order_id = $2, payment_status = $3, application_status = $4, updated_at = $5
        WHERE id = $1 AND payment_status <> $6`
	res, err := r.db.Admin.ExecContext(ctx, query, id,
		paymentReference, models.PaymentStatusPending, models.ApplicationStatusPendingPayment,
		time.Now().UTC(), models.PaymentStatusPaid)
	if err != nil {
		return fmt.Errorf("link payment reference: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("link payment reference: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Zero rows means either an unknown id or a row already paid.
	var status string
	err = r.db.Admin.GetContext(ctx, &status, "SELECT payment_status FROM applicants WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("check applicant: %w", err)
	}
	if status == models.PaymentStatusPaid {
		return ErrPaymentFinalized
	}
	return fmt.Errorf("link payment reference: update affected no rows")
}

// FetchPaymentContext returns the projection a payment integration needs.
func (r *ApplicantRepository) FetchPaymentContext(ctx context.Context, id string) (*models.PaymentContext, error) {
	const query = `SELECT id, full_name, email, phone, payment_status, amount_paid, track
        FROM applicants WHERE id = $1`
	var pc models.PaymentContext
	if err := r.db.Public.GetContext(ctx, &pc, query, id); err != nil {
		return nil, err
	}
	return &pc, nil
}

// FetchForReminder returns the contact projection used by the reminder flow.
func (r *ApplicantRepository) FetchForReminder(ctx context.Context, id string) (*models.ReminderContext, error) {
	const query = `SELECT id, email, phone, full_name, payment_status
        FROM applicants WHERE id = $1`
	var rc models.ReminderContext
	if err := r.db.Public.GetContext(ctx, &rc, query, id); err != nil {
		return nil, err
	}
	return &rc, nil
}

// List returns applicants matching the provided filters.
func (r *ApplicantRepository) List(ctx context.Context, filter models.ApplicantFilter) ([]models.Applicant, int, error) {
	base := "FROM applicants"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Track != "" {
		conditions = append(conditions, fmt.Sprintf("track = $%d", len(args)+1))
		args = append(args, filter.Track)
	}
	if filter.PaymentStatus != "" {
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", len(args)+1))
		args = append(args, filter.PaymentStatus)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, full_name, email, phone, track, team_size, referral_code, payment_status, payment_order_id, amount_paid, application_status, created_at, updated_at, paid_at
        %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, base, size, offset)

	var applicants []models.Applicant
	if err := r.db.Public.SelectContext(ctx, &applicants, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list applicants: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.Public.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count applicants: %w", err)
	}
	return applicants, total, nil
}

// StalePending returns applicants that have been sitting in pending
// state longer than the cutoff. Used by the operator tooling.
func (r *ApplicantRepository) StalePending(ctx context.Context, olderThan time.Duration) ([]models.ReminderContext, error) {
	const query = `SELECT id, email, phone, full_name, payment_status
        FROM applicants WHERE payment_status = $1 AND updated_at < $2 ORDER BY updated_at ASC`
	cutoff := time.Now().UTC().Add(-olderThan)
	var rows []models.ReminderContext
	if err := r.db.Public.SelectContext(ctx, &rows, query, models.PaymentStatusPending, cutoff); err != nil {
		return nil, fmt.Errorf("stale pending: %w", err)
	}
	return rows, nil
}

// PurgeTestRows deletes applicants whose email belongs to the given test
// domain. The one sanctioned hard-delete path; requires the elevated
// credential.
func (r *ApplicantRepository) PurgeTestRows(ctx context.Context, domain string) (int64, error) {
	if r.db.Admin == nil {
		return 0, ErrNoElevatedCredential
	}
	res, err := r.db.Admin.ExecContext(ctx, "DELETE FROM applicants WHERE email LIKE $1", "%@"+domain)
	if err != nil {
		return 0, fmt.Errorf("purge test rows: %w", err)
	}
	return res.RowsAffected()
}
