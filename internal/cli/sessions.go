package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aretw0/admission/internal/config"
	"github.com/aretw0/admission/pkg/auth"
	"github.com/aretw0/admission/pkg/domain"
	"github.com/aretw0/admission/pkg/ports"
)

// ErrEphemeralStore is returned by session commands when the configured store
// does not outlive the process.
var ErrEphemeralStore = errors.New("session commands require the redis store (session.store: redis)")

// RequirePersistentStore rejects configurations whose sessions vanish with the CLI process.
func RequirePersistentStore(cfg config.Config) error {
	if !strings.EqualFold(cfg.Session.Store, config.StoreRedis) {
		return ErrEphemeralStore
	}
	return nil
}

// ErrNoSessionSource is returned when the server would start with a store nothing can write to.
var ErrNoSessionSource = errors.New("the memory session store starts empty and no command can reach it; pass --grant-admin USER or set session.store: redis")

// BootstrapAdmin readies the store before serving. With userID set it issues an admin
// session and prints the cookie to send. Without it, only a persistent store is accepted.
func BootstrapAdmin(ctx context.Context, cfg config.Config, store ports.SessionStore, out io.Writer, userID string) (*domain.Session, error) {
	if userID == "" {
		if RequirePersistentStore(cfg) != nil {
			return nil, ErrNoSessionSource
		}
		return nil, nil
	}

	session, err := auth.Issue(ctx, store, userID, domain.RoleAdmin, cfg.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue bootstrap session: %w", err)
	}
	fmt.Fprintf(out, "Admin session for %s: %s=%s\n", userID, cfg.Session.CookieName, session.ID)
	return session, nil
}

// GrantSession issues a session and prints its ID.
func GrantSession(ctx context.Context, store ports.SessionStore, out io.Writer, userID, role string, ttl time.Duration) (*domain.Session, error) {
	session, err := auth.Issue(ctx, store, userID, domain.Role(strings.ToLower(role)), ttl)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(out, session.ID)
	return session, nil
}

// RevokeSession deletes a session. Unknown IDs are reported.
func RevokeSession(ctx context.Context, store ports.SessionStore, out io.Writer, sessionID string) error {
	if _, err := store.Load(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session %s: %w", sessionID, err)
	}
	if err := store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session %s: %w", sessionID, err)
	}
	fmt.Fprintf(out, "Session %s revoked.\n", sessionID)
	return nil
}

// ListSessions prints the active sessions as a table.
func ListSessions(ctx context.Context, store ports.SessionStore, out io.Writer) error {
	ids, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, "No active sessions found.")
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		}).
		Headers("ID", "USER", "ROLE", "EXPIRES")
	for _, id := range ids {
		s, err := store.Load(ctx, id)
		if errors.Is(err, domain.ErrSessionNotFound) {
			// Expired between List and Load.
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load session %s: %w", id, err)
		}
		expires := "never"
		if !s.ExpiresAt.IsZero() {
			expires = s.ExpiresAt.Format(time.RFC3339)
		}
		t.Row(s.ID, s.UserID, string(s.Role), expires)
	}
	_, err = fmt.Fprintln(out, t.Render())
	return err
}

var cellStyle = lipgloss.NewStyle().Padding(0, 1)
