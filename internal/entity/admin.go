package entity

import "time"

const RoleAdmin = "admin"

// Admin is a back-office account. PasswordHash is a bcrypt hash.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
