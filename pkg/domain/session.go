package domain

import "time"

// Role is the authorization level of a session.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Session is an authenticated user session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// Sealed carries the encrypted session when the store is wrapped by a sealing
	// middleware. Identity fields are blank in that case.
	Sealed string `json:"sealed,omitempty"`
}

// Expired reports whether the session is no longer valid at the given instant.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}

// IsAdmin reports whether the session carries administrator rights.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
