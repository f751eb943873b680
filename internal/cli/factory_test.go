package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/admission/internal/config"
	"github.com/aretw0/admission/internal/logging"
	"github.com/aretw0/admission/pkg/adapters/memory"
	"github.com/aretw0/admission/pkg/adapters/redis"
	"github.com/aretw0/admission/pkg/auth"
	"github.com/aretw0/admission/pkg/domain"
)

func TestCreateLogger(t *testing.T) {
	_, err := CreateLogger(config.LogConfig{Level: "debug", Format: "json"}, "")
	require.NoError(t, err)

	_, err = CreateLogger(config.LogConfig{Level: "info"}, "loud")
	assert.Error(t, err, "override is validated")

	_, err = CreateLogger(config.LogConfig{Level: "bogus"}, "warn")
	assert.NoError(t, err, "override wins over config")
}

func TestCreateStore_Memory(t *testing.T) {
	cfg := config.Default()

	store, closer, err := CreateStore(cfg)
	require.NoError(t, err)
	defer closer.Close()

	assert.IsType(t, &memory.Store{}, store)
}

func TestCreateStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Session.Store = "Redis"
	cfg.Redis.Addr = mr.Addr()

	store, closer, err := CreateStore(cfg)
	require.NoError(t, err)
	defer closer.Close()

	require.IsType(t, &redis.Store{}, store)

	session, err := auth.Issue(context.Background(), store, "registrar", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cfg.Redis.Prefix+session.ID))
}

func TestCreateStore_Sealed(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Session.Store = config.StoreRedis
	cfg.Session.SealKey = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
	cfg.Redis.Addr = mr.Addr()

	store, closer, err := CreateStore(cfg)
	require.NoError(t, err)
	defer closer.Close()

	session, err := auth.Issue(context.Background(), store, "registrar", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	raw, err := mr.Get(cfg.Redis.Prefix + session.ID)
	require.NoError(t, err)
	assert.NotContains(t, raw, "registrar")
	assert.Contains(t, raw, `"sealed"`)

	loaded, err := store.Load(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "registrar", loaded.UserID)
}

func TestCreateStore_Unknown(t *testing.T) {
	cfg := config.Default()
	cfg.Session.Store = "etcd"

	_, _, err := CreateStore(cfg)
	assert.ErrorContains(t, err, "etcd")
}

func TestCreateComponents_Wiring(t *testing.T) {
	cfg := config.Default()
	store := memory.NewStore()
	c := CreateComponents(cfg, store, logging.NewNop())

	t.Run("Health is public", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Anonymous download is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/scores/template", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Header().Get("Location"))
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
	})

	t.Run("Admin download succeeds", func(t *testing.T) {
		session, err := auth.Issue(context.Background(), store, "registrar", domain.RoleAdmin, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/scores/template", nil)
		req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: session.ID})
		rec := httptest.NewRecorder()
		c.Handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, c.Generator.Format().ContentType(), rec.Header().Get("Content-Type"))
		assert.NotEmpty(t, rec.Body.Bytes())
	})

	t.Run("Metrics exposes counters", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.True(t, strings.Contains(body, "admission_templates_generated_total"))
		assert.True(t, strings.Contains(body, `admission_auth_denials_total{reason="unauthenticated"} 1`))
	})
}

func TestDefaultConfig_ReachesTemplate(t *testing.T) {
	cfg := config.Default()
	store, closer, err := CreateStore(cfg)
	require.NoError(t, err)
	defer closer.Close()

	_, err = BootstrapAdmin(context.Background(), cfg, store, &bytes.Buffer{}, "")
	require.ErrorIs(t, err, ErrNoSessionSource, "serving the memory store without a bootstrap admin is refused")

	var out bytes.Buffer
	session, err := BootstrapAdmin(context.Background(), cfg, store, &out, "registrar")
	require.NoError(t, err)
	assert.Equal(t, "Admin session for registrar: admission_session="+session.ID+"\n", out.String())

	c := CreateComponents(cfg, store, logging.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/admin/scores/template", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: session.ID})
	rec := httptest.NewRecorder()
	c.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "score_upload_template.")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestBootstrapAdmin_RedisNeedsNoGrant(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Session.Store = config.StoreRedis
	cfg.Redis.Addr = mr.Addr()

	store, closer, err := CreateStore(cfg)
	require.NoError(t, err)
	defer closer.Close()

	session, err := BootstrapAdmin(context.Background(), cfg, store, &bytes.Buffer{}, "")
	require.NoError(t, err)
	assert.Nil(t, session)
}
