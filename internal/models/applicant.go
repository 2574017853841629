package models

import "time"

// Payment lifecycle. A row starts with no payment status at all; the
// pending marker is written when a provider order id is linked, and the
// confirmation webhook (outside this service) moves it to paid or failed.
// A paid row never regresses to pending.
const (
	PaymentStatusUnset   = ""
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Application lifecycle mirrored alongside the payment status.
const (
	ApplicationStatusSubmitted      = "submitted"
	ApplicationStatusPendingPayment = "pending_payment"
	ApplicationStatusConfirmed      = "confirmed"
)

// Applicant is a person's registration record for the program.
type Applicant struct {
	ID                string     `db:"id" json:"id"`
	FullName          string     `db:"full_name" json:"full_name"`
	Email             string     `db:"email" json:"email"`
	Phone             string     `db:"phone" json:"phone"`
	Track             string     `db:"track" json:"track"`
	TeamSize          int        `db:"team_size" json:"team_size"`
	ReferralCode      *string    `db:"referral_code" json:"referral_code,omitempty"`
	PaymentStatus     string     `db:"payment_status" json:"payment_status"`
	PaymentOrderID    *string    `db:"payment_order_id" json:"payment_order_id,omitempty"`
	AmountPaid        *float64   `db:"amount_paid" json:"amount_paid,omitempty"`
	ApplicationStatus string     `db:"application_status" json:"application_status"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
	PaidAt            *time.Time `db:"paid_at" json:"paid_at,omitempty"`
}

// PaymentContext is the minimal projection a payment provider
// integration needs before redirecting.
type PaymentContext struct {
	ID            string   `db:"id" json:"id"`
	FullName      string   `db:"full_name" json:"full_name"`
	Email         string   `db:"email" json:"email"`
	Phone         string   `db:"phone" json:"phone"`
	PaymentStatus string   `db:"payment_status" json:"payment_status"`
	AmountPaid    *float64 `db:"amount_paid" json:"amount_paid,omitempty"`
	Track         string   `db:"track" json:"track"`
}

// ReminderContext carries the fields needed for a payment-pending nudge.
type ReminderContext struct {
	ID            string `db:"id" json:"id"`
	Email         string `db:"email" json:"email"`
	Phone         string `db:"phone" json:"phone"`
	FullName      string `db:"full_name" json:"full_name"`
	PaymentStatus string `db:"payment_status" json:"payment_status"`
}

// ApplicantFilter encapsulates allowed search parameters for the admin list.
type ApplicantFilter struct {
	Search        string
	Track         string
	PaymentStatus string
	Page          int
	PageSize      int
}
