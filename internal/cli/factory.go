package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/admission"
	"github.com/aretw0/admission/internal/config"
	"github.com/aretw0/admission/internal/logging"
	httpAdapter "github.com/aretw0/admission/pkg/adapters/http"
	"github.com/aretw0/admission/pkg/adapters/memory"
	"github.com/aretw0/admission/pkg/adapters/redis"
	"github.com/aretw0/admission/pkg/auth"
	"github.com/aretw0/admission/pkg/generator"
	"github.com/aretw0/admission/pkg/observability"
	"github.com/aretw0/admission/pkg/persistence/middleware"
	"github.com/aretw0/admission/pkg/ports"
)

// CreateLogger configures the application logger. levelOverride wins over the config when set.
func CreateLogger(cfg config.LogConfig, levelOverride string) (*slog.Logger, error) {
	name := cfg.Level
	if levelOverride != "" {
		name = levelOverride
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return logging.New(level, cfg.Format), nil
}

// CreateStore opens the configured session store, sealed when a key is configured.
// The returned closer releases it.
func CreateStore(cfg config.Config) (ports.SessionStore, io.Closer, error) {
	var (
		store  ports.SessionStore
		closer io.Closer
	)
	switch strings.ToLower(cfg.Session.Store) {
	case config.StoreRedis:
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Session.TTL),
		)
		store, closer = rs, rs
	case config.StoreMemory:
		store, closer = memory.NewStore(), io.NopCloser(nil)
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}

	active, fallback, err := cfg.Session.SealingKeys()
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	if active == nil {
		return store, closer, nil
	}

	seal, err := middleware.NewSealingMiddleware(middleware.SealingConfig{
		ActiveKey:    active,
		FallbackKeys: fallback,
	})
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return middleware.Chain(store, seal), closer, nil
}

// Components bundles everything the HTTP server needs.
type Components struct {
	Generator *generator.Generator
	Gate      *auth.Gate
	Metrics   *observability.Metrics
	Handler   http.Handler
}

// CreateComponents wires generator, gate, metrics and router.
func CreateComponents(cfg config.Config, store ports.SessionStore, logger *slog.Logger) *Components {
	metrics := observability.NewMetrics()

	gen := admission.NewGenerator(
		generator.WithObserver(metrics),
		generator.WithLogger(logger),
	)

	gate := auth.NewGate(store,
		auth.WithCookieName(cfg.Session.CookieName),
		auth.WithLoginURL(cfg.Session.LoginURL),
		auth.WithObserver(metrics),
		auth.WithLogger(logger),
	)

	handler := httpAdapter.NewHandler(gen,
		httpAdapter.WithGate(gate.RequireAdmin),
		httpAdapter.WithMetricsHandler(metrics.Handler()),
		httpAdapter.WithVersion(admission.Version),
		httpAdapter.WithLogger(logger),
	)

	return &Components{
		Generator: gen,
		Gate:      gate,
		Metrics:   metrics,
		Handler:   handler,
	}
}
