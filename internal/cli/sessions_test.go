package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/admission/internal/config"
	"github.com/aretw0/admission/pkg/adapters/memory"
	"github.com/aretw0/admission/pkg/domain"
)

func TestRequirePersistentStore(t *testing.T) {
	cfg := config.Default()
	assert.ErrorIs(t, RequirePersistentStore(cfg), ErrEphemeralStore)

	cfg.Session.Store = config.StoreRedis
	assert.NoError(t, RequirePersistentStore(cfg))
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	var out bytes.Buffer

	session, err := GrantSession(ctx, store, &out, "registrar", "ADMIN", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, session.Role)
	assert.Equal(t, session.ID+"\n", out.String())

	out.Reset()
	require.NoError(t, ListSessions(ctx, store, &out))
	var row string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.Contains(line, session.ID) {
			row = line
		}
	}
	assert.Contains(t, out.String(), "EXPIRES")
	assert.Contains(t, row, "registrar")
	assert.Contains(t, row, "admin")
	assert.NotContains(t, out.String(), "\x1b[", "no styling codes outside a terminal")

	out.Reset()
	require.NoError(t, RevokeSession(ctx, store, &out, session.ID))
	assert.Contains(t, out.String(), "revoked")

	err = RevokeSession(ctx, store, &out, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	out.Reset()
	require.NoError(t, ListSessions(ctx, store, &out))
	assert.Equal(t, "No active sessions found.\n", out.String())
}

func TestGrantSession_Invalid(t *testing.T) {
	store := memory.NewStore()

	_, err := GrantSession(context.Background(), store, &bytes.Buffer{}, "", "admin", time.Hour)
	assert.Error(t, err)

	_, err = GrantSession(context.Background(), store, &bytes.Buffer{}, "registrar", "root", time.Hour)
	assert.Error(t, err)
}

func TestListSessions_NoExpiry(t *testing.T) {
	store := memory.NewStore()
	var out bytes.Buffer

	_, err := GrantSession(context.Background(), store, &out, "auditor", "staff", 0)
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, ListSessions(context.Background(), store, &out))
	assert.Contains(t, out.String(), "never")
}
