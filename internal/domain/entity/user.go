package entity

import "time"

// User is a job seeker account.
// Password holds a bcrypt hash; OTP fields are populated only while a
// password-reset cycle is outstanding and are loaded by dedicated queries,
// never by the default projections.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	ContactNo string

	ResetOTPHash      *string
	ResetOTPExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
