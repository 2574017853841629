package models

import "time"

// FamilyContext stores supplementary guardian and income data linked to
// an applicant. One applicant may carry several rows; no uniqueness is
// enforced here.
type FamilyContext struct {
	ID                 string    `db:"id" json:"id"`
	ApplicantID        string    `db:"applicant_id" json:"applicant_id"`
	GuardianName       string    `db:"guardian_name" json:"guardian_name"`
	GuardianProfession string    `db:"guardian_profession" json:"guardian_profession"`
	IncomeRange        string    `db:"income_range" json:"income_range"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}
