// Package keystore persists API keys and user preferences.
package keystore

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrNotFound indicates the key has no stored value.
var ErrNotFound = errors.New("key not found")

// Well-known keys.
const (
	AnthropicAPIKey = "ANTHROPIC_API_KEY"
	OpenAIAPIKey    = "OPENAI_API_KEY"
	GeminiAPIKey    = "GEMINI_API_KEY"

	// PrefModel holds the selected model id.
	PrefModel = "LLM_MODEL"
	// PrefDebug holds "true" when dry-run debugging is enabled.
	PrefDebug = "DEBUG_MODE"
)

// Getter reads a stored value.
type Getter interface {
	// Get returns the value for key, or an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
}

// Store reads and writes stored values.
type Store interface {
	Getter
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// IsSecret reports whether values under key must not be displayed or logged.
func IsSecret(key string) bool {
	return strings.HasSuffix(key, "_API_KEY") || strings.HasSuffix(key, "_TOKEN")
}

// Mask hides all but the last four characters of a secret.
func Mask(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}

// Bool reads a "true"/"false" preference; absent keys yield def.
func Bool(ctx context.Context, g Getter, key string, def bool) bool {
	v, err := g.Get(ctx, key)
	if err != nil {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return def
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns a Memory seeded with values.
func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", &KeyError{Op: "get", Key: key, Err: ErrNotFound}
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Env overlays process environment variables on top of a Store.
// A non-empty environment variable named like the key wins over the stored value.
type Env struct {
	Next   Store
	lookup func(string) (string, bool)
}

// WithEnv wraps next with an environment overlay.
func WithEnv(next Store) *Env {
	return &Env{Next: next, lookup: os.LookupEnv}
}

// WithValues wraps next with a fixed overlay, typically keys from the
// configuration file.
func WithValues(next Store, values map[string]string) *Env {
	return &Env{Next: next, lookup: func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}}
}

func (e *Env) Get(ctx context.Context, key string) (string, error) {
	if v, ok := e.lookup(key); ok && v != "" {
		return v, nil
	}
	if e.Next == nil {
		return "", &KeyError{Op: "get", Key: key, Err: ErrNotFound}
	}
	return e.Next.Get(ctx, key)
}

func (e *Env) Set(ctx context.Context, key, value string) error {
	if e.Next == nil {
		return &KeyError{Op: "set", Key: key, Err: errors.New("read-only store")}
	}
	return e.Next.Set(ctx, key, value)
}

func (e *Env) Delete(ctx context.Context, key string) error {
	if e.Next == nil {
		return nil
	}
	return e.Next.Delete(ctx, key)
}

// KeyError records which key an operation failed on.
type KeyError struct {
	Op  string // get, set, delete
	Key string
	Err error
}

func (e *KeyError) Error() string {
	op := e.Op
	if op == "" {
		op = "get"
	}
	return "failed to " + op + " " + e.Key + ": " + e.Err.Error()
}

func (e *KeyError) Unwrap() error {
	return e.Err
}
