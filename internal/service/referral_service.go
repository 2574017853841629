package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/hackreg-api/internal/models"
	appErrors "github.com/noah-isme/hackreg-api/pkg/errors"
)

type referralRepository interface {
	FindActiveByCode(ctx context.Context, code string) (*models.ReferralCode, error)
	CountUses(ctx context.Context, code string) (int, error)
	UsedByEmail(ctx context.Context, code, email string) (bool, error)
}

// ValidateResult is the outcome of a referral code check.
type ValidateResult struct {
	Valid           bool   `json:"valid"`
	Message         string `json:"message,omitempty"`
	DiscountPercent *int   `json:"discount_percent,omitempty"`
}

// ReferralService validates codes against the referrer registry. Code
// rows are cached briefly; usage counters always hit the store.
type ReferralService struct {
	repo     referralRepository
	cache    *redis.Client
	cacheTTL time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewReferralService constructs the referral service. The cache client
// and metrics may be nil, in which case every lookup goes to the store
// unrecorded.
func NewReferralService(repo referralRepository, cache *redis.Client, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *ReferralService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferralService{repo: repo, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger}
}

// Validate checks a code for the given email. An empty code
// short-circuits without touching the store.
func (s *ReferralService) Validate(ctx context.Context, code, email string) (*ValidateResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return &ValidateResult{Valid: false, Message: "Code is required"}, nil
	}

	rc, err := s.lookup(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &ValidateResult{Valid: false, Message: "Invalid referral code"}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate referral code")
	}

	if rc.Expired(time.Now().UTC()) {
		return &ValidateResult{Valid: false, Message: "Referral code expired"}, nil
	}

	if rc.MaxUses != nil {
		uses, err := s.repo.CountUses(ctx, rc.Code)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate referral code")
		}
		if uses >= *rc.MaxUses {
			return &ValidateResult{Valid: false, Message: "Referral code limit reached"}, nil
		}
	}

	if email != "" {
		used, err := s.repo.UsedByEmail(ctx, rc.Code, email)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate referral code")
		}
		if used {
			return &ValidateResult{Valid: false, Message: "Code already used with this email"}, nil
		}
	}

	discount := rc.DiscountPercent
	return &ValidateResult{Valid: true, Message: "Referral code applied", DiscountPercent: &discount}, nil
}

func (s *ReferralService) lookup(ctx context.Context, code string) (*models.ReferralCode, error) {
	key := "referral:" + code

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var rc models.ReferralCode
			if jsonErr := json.Unmarshal([]byte(raw), &rc); jsonErr == nil {
				s.metrics.RecordCacheLookup(true)
				return &rc, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("referral cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheLookup(false)
	}

	rc, err := s.repo.FindActiveByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(rc); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("referral cache write failed", zap.Error(err))
			}
		}
	}

	return rc, nil
}
