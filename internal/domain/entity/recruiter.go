package entity

import "time"

// Recruiter is an employer account. Unlike User it carries an email
// verification gate: login is refused until IsEmailVerified is set, and the
// flag never transitions back to false.
type Recruiter struct {
	ID        string
	Name      string
	Email     string
	Password  string
	ContactNo string
	Address   string

	IsEmailVerified bool

	VerifyOTPHash      *string
	VerifyOTPExpiresAt *time.Time
	ResetOTPHash       *string
	ResetOTPExpiresAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
