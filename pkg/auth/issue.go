package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/admission/pkg/domain"
	"github.com/aretw0/admission/pkg/ports"
)

// Issue creates and stores a new session. A zero ttl never expires.
func Issue(ctx context.Context, store ports.SessionStore, userID string, role domain.Role, ttl time.Duration) (*domain.Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	switch role {
	case domain.RoleAdmin, domain.RoleStaff:
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	now := time.Now().UTC().Truncate(time.Second)
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
	}
	if ttl > 0 {
		session.ExpiresAt = now.Add(ttl)
	}

	if err := store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}
