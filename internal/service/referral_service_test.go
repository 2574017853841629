package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hackreg-api/internal/models"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
)

type mockReferralRepo struct {
	findFn     func(ctx context.Context, code string) (*models.ReferralCode, error)
	countFn    func(ctx context.Context, code string) (int, error)
	usedFn     func(ctx context.Context, code, email string) (bool, error)
	findCalls  int
	countCalls int
	usedCalls  int
}

func (m *mockReferralRepo) FindActiveByCode(ctx context.Context, code string) (*models.ReferralCode, error) {
	m.findCalls++
	return m.findFn(ctx, code)
}

func (m *mockReferralRepo) CountUses(ctx context.Context, code string) (int, error) {
	m.countCalls++
	return m.countFn(ctx, code)
}

func (m *mockReferralRepo) UsedByEmail(ctx context.Context, code, email string) (bool, error) {
	m.usedCalls++
	return m.usedFn(ctx, code, email)
}

func activeCode(code string, discount int) *models.ReferralCode {
	return &models.ReferralCode{ID: "rc1", Code: code, ReferrerName: "Alumni Cell", DiscountPercent: discount, Active: true}
}

func TestReferralServiceValidateEmptyCodeSkipsStore(t *testing.T) {
	repo := &mockReferralRepo{}
	svc := NewReferralService(repo, nil, 0, nil, nil)

	for _, code := range []string{"", "   "} {
		result, err := svc.Validate(context.Background(), code, "jane@x.com")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, "Code is required", result.Message)
	}
	assert.Equal(t, 0, repo.findCalls)
}

func TestReferralServiceValidateUnknownCode(t *testing.T) {
	repo := &mockReferralRepo{findFn: func(ctx context.Context, code string) (*models.ReferralCode, error) {
		return nil, sql.ErrNoRows
	}}
	svc := NewReferralService(repo, nil, 0, nil, nil)

	result, err := svc.Validate(context.Background(), "NOPE", "jane@x.com")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Invalid referral code", result.Message)
	assert.Nil(t, result.DiscountPercent)
}

func TestReferralServiceValidateCaseSensitive(t *testing.T) {
	repo := &mockReferralRepo{findFn: func(ctx context.Context, code string) (*models.ReferralCode, error) {
		if code == "CAMPUS20" {
			return activeCode(code, 20), nil
		}
		return nil, sql.ErrNoRows
	}}
	svc := NewReferralService(repo, nil, 0, nil, nil)

	result, err := svc.Validate(context.Background(), "campus20", "")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Invalid referral code", result.Message)
}

func TestReferralServiceValidateExpiredCode(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	repo := &mockReferralRepo{findFn: func(ctx context.Context, code string) (*models.ReferralCode, error) {
		rc := activeCode(code, 20)
		rc.ExpiresAt = &past
		return rc, nil
	}}
	svc := NewReferralService(repo, nil, 0, nil, nil)

	result, err := svc.Validate(context.Background(), "CAMPUS20", "jane@x.com")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Referral code expired", result.Message)
	assert.Equal(t, 0, repo.countCalls)
}

func TestReferralServiceValidateLimitReached(t *testing.T) {
	maxUses := 10
	repo := &mockReferralRepo{
		findFn: func(ctx context.Context, code string) (*models.ReferralCode, error) {
			rc := activeCode(code, 20)
			rc.MaxUses = &maxUses
			return rc, nil
		},
		countFn: func(ctx context.Context, code string) (int, error) { return 10, nil },
	}
	svc := NewReferralService(repo, nil, 0, nil, nil)

	result, err := svc.Validate(context.Background(), "CAMPUS20", "jane@x.com")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Referral code limit reached", result.Message)
	assert.Equal(t, 0, repo.usedCalls)
}

func TestReferralServiceValidateAlreadyUsedByEmail(t *testing.T) {
	repo := &mockReferralRepo{
		findFn: func(ctx context.Context, code string) (*models.ReferralCode, error) {
			return activeCode(code, 20), nil
		},
		usedFn: func(ctx context.Context, code, email string) (bool, error) { return true, nil },
	}
	svc := NewReferralService(repo, nil, 0, nil, nil)

	result, err := svc.Validate(context.Background(), "CAMPUS20", "jane@x.com")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Code already used with this email", result.Message)
}

func TestReferralServiceValidateSuccess(t *testing.T) {
	repo := &mockReferralRepo{
		findFn: func(ctx context.Context, code string) (*models.ReferralCode, error) {
			return activeCode(code, 15), nil
		},
		usedFn: func(ctx context.Context, code, email string) (bool, error) { return false, nil },
	}
	svc := NewReferralService(repo, nil, 0, nil, nil)

	result, err := svc.Validate(context.Background(), "CAMPUS20", "jane@x.com")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "Referral code applied", result.Message)
	require.NotNil(t, result.DiscountPercent)
	assert.Equal(t, 15, *result.DiscountPercent)
}

func TestReferralServiceValidateSkipsEmailCheckWhenEmailEmpty(t *testing.T) {
	repo := &mockReferralRepo{
		findFn: func(ctx context.Context, code string) (*models.ReferralCode, error) {
			return activeCode(code, 15), nil
		},
	}
	svc := NewReferralService(repo, nil, 0, nil, nil)

	result, err := svc.Validate(context.Background(), "CAMPUS20", "")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 0, repo.usedCalls)
}

func TestReferralServiceValidateStoreFailure(t *testing.T) {
	repo := &mockReferralRepo{findFn: func(ctx context.Context, code string) (*models.ReferralCode, error) {
		return nil, errors.New("connection refused")
	}}
	svc := NewReferralService(repo, nil, 0, nil, nil)

	_, err := svc.Validate(context.Background(), "CAMPUS20", "jane@x.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Status, appErrors.FromError(err).Status)
}
