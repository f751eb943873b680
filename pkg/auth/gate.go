package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/admission/internal/logging"
	"github.com/aretw0/admission/pkg/domain"
	"github.com/aretw0/admission/pkg/ports"
)

// DefaultCookieName is the cookie holding the session ID.
const DefaultCookieName = "admission_session"

// Denial reasons reported to the DenialObserver.
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonExpired         = "expired"
	ReasonForbidden       = "forbidden"
	ReasonStoreError      = "store_error"
	ReasonTampered        = "tampered"
)

// DenialObserver is notified of every rejected request. Implemented by observability.Metrics.
type DenialObserver interface {
	AuthDenied(reason string)
}

type contextKey struct{}

// SessionFromContext returns the session attached by the gate, if any.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*domain.Session)
	return s, ok
}

// WithSession attaches a session to the context.
func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// Gate guards handlers behind an administrator session.
type Gate struct {
	store      ports.SessionStore
	cookieName string
	loginURL   string
	now        func() time.Time
	observer   DenialObserver
	logger     *slog.Logger
}

// Option configures the Gate.
type Option func(*Gate)

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(g *Gate) {
		g.cookieName = name
	}
}

// WithLoginURL sets where unauthenticated requests are redirected. Empty answers 401.
func WithLoginURL(url string) Option {
	return func(g *Gate) {
		g.loginURL = url
	}
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// WithObserver registers a denial observer.
func WithObserver(o DenialObserver) Option {
	return func(g *Gate) {
		g.observer = o
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// NewGate creates a Gate backed by the given session store.
func NewGate(store ports.SessionStore, opts ...Option) *Gate {
	g := &Gate{
		store:      store,
		cookieName: DefaultCookieName,
		now:        time.Now,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize resolves the request's session and checks administrator rights.
// It returns domain.ErrUnauthenticated, domain.ErrSessionExpired or domain.ErrForbidden
// on rejection; other errors come from the store.
func (g *Gate) Authorize(r *http.Request) (*domain.Session, error) {
	cookie, err := r.Cookie(g.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, domain.ErrUnauthenticated
	}

	session, err := g.store.Load(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		if errors.Is(err, domain.ErrSessionTampered) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
		}
		return nil, err
	}
	if session.Expired(g.now()) {
		return nil, domain.ErrSessionExpired
	}
	if !session.IsAdmin() {
		return session, domain.ErrForbidden
	}
	return session, nil
}

// RequireAdmin wraps next so that it only runs for administrator sessions.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := g.Authorize(r)
		if err != nil {
			g.deny(w, r, session, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// deny writes status and headers only; no body reaches the client.
func (g *Gate) deny(w http.ResponseWriter, r *http.Request, session *domain.Session, err error) {
	var reason string
	switch {
	case errors.Is(err, domain.ErrForbidden):
		reason = ReasonForbidden
	case errors.Is(err, domain.ErrSessionExpired):
		reason = ReasonExpired
	case errors.Is(err, domain.ErrSessionTampered):
		reason = ReasonTampered
	case errors.Is(err, domain.ErrUnauthenticated):
		reason = ReasonUnauthenticated
	default:
		reason = ReasonStoreError
	}

	if g.observer != nil {
		g.observer.AuthDenied(reason)
	}

	attrs := []any{"reason", reason, "path", r.URL.Path}
	if session != nil {
		attrs = append(attrs, "user_id", session.UserID)
	}

	switch reason {
	case ReasonForbidden:
		g.logger.Warn("Admin gate: access denied", attrs...)
		w.WriteHeader(http.StatusForbidden)
	case ReasonTampered:
		g.logger.Warn("Admin gate: rejected tampered session", append(attrs, "error", err)...)
		g.redirectToLogin(w)
	case ReasonStoreError:
		g.logger.Error("Admin gate: session lookup failed", append(attrs, "error", err)...)
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		g.logger.Info("Admin gate: login required", attrs...)
		g.redirectToLogin(w)
	}
}

func (g *Gate) redirectToLogin(w http.ResponseWriter) {
	if g.loginURL == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	w.Header().Set("Location", g.loginURL)
	w.WriteHeader(http.StatusSeeOther)
}
