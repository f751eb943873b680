package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/admission/pkg/domain"
	"github.com/aretw0/admission/pkg/ports"
)

// KeySize is the required key length (AES-256).
const KeySize = 32

// ErrInvalidKey is returned for keys that are not KeySize bytes long.
var ErrInvalidKey = errors.New("sealing key must be 32 bytes (AES-256)")

// SealingConfig holds the keys for sealing and opening sessions.
type SealingConfig struct {
	// ActiveKey seals new sessions.
	ActiveKey []byte

	// FallbackKeys are tried when the active key cannot open a session,
	// so keys can be rotated without logging everyone out.
	FallbackKeys [][]byte
}

// Validate checks every key length.
func (c SealingConfig) Validate() error {
	if len(c.ActiveKey) != KeySize {
		return ErrInvalidKey
	}
	for i, k := range c.FallbackKeys {
		if len(k) != KeySize {
			return fmt.Errorf("fallback key %d: %w", i, ErrInvalidKey)
		}
	}
	return nil
}

type sealingMiddleware struct {
	next   ports.SessionStore
	config SealingConfig
}

// NewSealingMiddleware encrypts sessions with AES-GCM before they reach the
// underlying store. The session ID is bound as additional data, so a sealed
// payload copied under another ID does not open.
func NewSealingMiddleware(config SealingConfig) (Middleware, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &sealingMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *sealingMiddleware) Save(ctx context.Context, session *domain.Session) error {
	plainText, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ciphertext, err := seal(plainText, m.config.ActiveKey, []byte(session.ID))
	if err != nil {
		return fmt.Errorf("failed to seal session: %w", err)
	}

	// Timestamps stay visible so stores can expire and order entries.
	envelope := &domain.Session{
		ID:        session.ID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
		Sealed:    base64.StdEncoding.EncodeToString(ciphertext),
	}
	return m.next.Save(ctx, envelope)
}

func (m *sealingMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	envelope, err := m.next.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Unsealed records are rejected: they were written without the key.
	if envelope.Sealed == "" {
		return nil, fmt.Errorf("session %s is not sealed: %w", sessionID, domain.ErrSessionTampered)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sealed session: %w", domain.ErrSessionTampered)
	}

	plainText, err := openWithRotation(ciphertext, []byte(sessionID), m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to open session %s: %w", sessionID, domain.ErrSessionTampered)
	}

	var session domain.Session
	if err := json.Unmarshal(plainText, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal opened session: %w", err)
	}
	return &session, nil
}

func (m *sealingMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *sealingMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func seal(plaintext, key, additional []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, additional), nil
}

func openWithRotation(ciphertext, additional, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := open(ciphertext, additional, activeKey); err == nil {
		return plain, nil
	}
	for _, key := range fallbackKeys {
		if plain, err := open(ciphertext, additional, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("no key could open the session")
}

func open(ciphertext, additional, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, body := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, additional)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
