package entity

import "time"

// Admin accounts are provisioned by cmd/seed, never via registration.
type Admin struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}
