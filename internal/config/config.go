// Package config loads the service configuration from defaults, an optional YAML
// file and ADMISSION_* environment variables (optionally read from a .env file).
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ADMISSION_"

// Session store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the complete service configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SessionConfig struct {
	// Store is "memory" or "redis".
	Store      string        `mapstructure:"store"`
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
	// LoginURL receives unauthenticated requests. Empty answers 401 instead.
	LoginURL string `mapstructure:"login_url"`
	// SealKey is a base64 AES-256 key. When set, stored sessions are encrypted
	// and records written without it are rejected.
	SealKey          string   `mapstructure:"seal_key"`
	SealFallbackKeys []string `mapstructure:"seal_fallback_keys"`
}

// SealingKeys decodes the active and fallback keys. active is nil when sealing is off.
func (s SessionConfig) SealingKeys() (active []byte, fallback [][]byte, err error) {
	if s.SealKey == "" {
		if len(s.SealFallbackKeys) > 0 {
			return nil, nil, fmt.Errorf("session.seal_fallback_keys requires session.seal_key")
		}
		return nil, nil, nil
	}
	active, err = base64.StdEncoding.DecodeString(s.SealKey)
	if err != nil {
		return nil, nil, fmt.Errorf("session.seal_key is not valid base64: %w", err)
	}
	for i, k := range s.SealFallbackKeys {
		key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(k))
		if err != nil {
			return nil, nil, fmt.Errorf("session.seal_fallback_keys[%d] is not valid base64: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Session: SessionConfig{
			Store:      StoreMemory,
			CookieName: "admission_session",
			TTL:        8 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "admission:session:",
		},
	}
}

// envKeys maps environment variables (without prefix) to config paths.
var envKeys = map[string][]string{
	"SERVER_ADDR":             {"server", "addr"},
	"SERVER_SHUTDOWN_TIMEOUT": {"server", "shutdown_timeout"},
	"LOG_LEVEL":               {"log", "level"},
	"LOG_FORMAT":              {"log", "format"},
	"SESSION_STORE":           {"session", "store"},
	"SESSION_COOKIE_NAME":     {"session", "cookie_name"},
	"SESSION_TTL":             {"session", "ttl"},
	"SESSION_LOGIN_URL":       {"session", "login_url"},
	"SESSION_SEAL_KEY":        {"session", "seal_key"},
	"SESSION_SEAL_FALLBACK":   {"session", "seal_fallback_keys"},
	"REDIS_ADDR":              {"redis", "addr"},
	"REDIS_PASSWORD":          {"redis", "password"},
	"REDIS_DB":                {"redis", "db"},
	"REDIS_PREFIX":            {"redis", "prefix"},
}

// Load builds the configuration. path may be empty to skip the YAML file.
// Variables from envFile (when it exists) never override the real environment.
func Load(path, envFile string) (Config, error) {
	raw := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}
	applyEnv(raw, os.LookupEnv)

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(raw map[string]any, lookup func(string) (string, bool)) {
	for key, path := range envKeys {
		val, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		section, _ := raw[path[0]].(map[string]any)
		if section == nil {
			section = map[string]any{}
			raw[path[0]] = section
		}
		section[path[1]] = val
	}
}

func decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch strings.ToLower(c.Session.Store) {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("invalid configuration: unknown session store %q", c.Session.Store)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("invalid configuration: session.cookie_name is required")
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("invalid configuration: session.ttl must not be negative")
	}
	if _, _, err := c.Session.SealingKeys(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
