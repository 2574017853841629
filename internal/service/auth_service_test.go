package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/hackreg-api/internal/models"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
)

type mockAdminUserRepo struct {
	findFn          func(ctx context.Context, email string) (*models.AdminUser, error)
	lastLoginCalled bool
}

func (m *mockAdminUserRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return m.findFn(ctx, email)
}

func (m *mockAdminUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginCalled = true
	return nil
}

func adminUser(t *testing.T, password string) *models.AdminUser {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.AdminUser{ID: "admin1", Email: "ops@x.com", PasswordHash: string(hash), Active: true}
}

func TestAuthServiceLogin(t *testing.T) {
	user := adminUser(t, "s3cret")
	repo := &mockAdminUserRepo{findFn: func(ctx context.Context, email string) (*models.AdminUser, error) {
		return user, nil
	}}
	svc := NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "hackreg"})

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "ops@x.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, repo.lastLoginCalled)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin1", claims.UserID)
	assert.Equal(t, "ops@x.com", claims.Email)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	user := adminUser(t, "s3cret")
	repo := &mockAdminUserRepo{findFn: func(ctx context.Context, email string) (*models.AdminUser, error) {
		return user, nil
	}}
	svc := NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ops@x.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	repo := &mockAdminUserRepo{findFn: func(ctx context.Context, email string) (*models.AdminUser, error) {
		return nil, sql.ErrNoRows
	}}
	svc := NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@x.com", Password: "s3cret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactiveUser(t *testing.T) {
	user := adminUser(t, "s3cret")
	user.Active = false
	repo := &mockAdminUserRepo{findFn: func(ctx context.Context, email string) (*models.AdminUser, error) {
		return user, nil
	}}
	svc := NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ops@x.com", Password: "s3cret"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}

func TestAuthServiceValidateTokenWrongSecret(t *testing.T) {
	user := adminUser(t, "s3cret")
	repo := &mockAdminUserRepo{findFn: func(ctx context.Context, email string) (*models.AdminUser, error) {
		return user, nil
	}}
	issuer := NewAuthService(repo, nil, nil, AuthConfig{Secret: "secret-a"})
	verifier := NewAuthService(repo, nil, nil, AuthConfig{Secret: "secret-b"})

	resp, err := issuer.Login(context.Background(), LoginRequest{Email: "ops@x.com", Password: "s3cret"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(resp.Token)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}
