package dto

import (
	"time"

	"github.com/spec-kit/church-cms/internal/domain"
)

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResponse standard response for a successful login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AdminRequest payload for creating or updating administrators. Both fields
// are optional on update (partial semantics).
type AdminRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AdminResponse is the public projection of an administrator: the password
// hash never leaves the server.
type AdminResponse struct {
	ID    string `json:"id"`
	Login string `json:"login"`
}

// NewAdminResponse projects a domain admin.
func NewAdminResponse(admin *domain.Admin) AdminResponse {
	return AdminResponse{ID: admin.ID, Login: admin.Login}
}
