package domain

import "time"

// Role enumerates caller roles carried inside bearer tokens.
type Role string

const (
	RoleAdmin Role = "admin"
)

// Admin is the domain model for back-office administrators.
type Admin struct {
	ID           string
	Login        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
