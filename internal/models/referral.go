package models

import "time"

// ReferralCode is a row in the referrer registry. Read-only from this
// service's perspective; codes are provisioned out of band.
type ReferralCode struct {
	ID              string     `db:"id" json:"id"`
	Code            string     `db:"code" json:"code"`
	ReferrerName    string     `db:"referrer_name" json:"referrer_name"`
	DiscountPercent int        `db:"discount_percent" json:"discount_percent"`
	Active          bool       `db:"active" json:"active"`
	MaxUses         *int       `db:"max_uses" json:"max_uses,omitempty"`
	ExpiresAt       *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// Expired reports whether the code's expiry, when set, has passed.
func (r *ReferralCode) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}
