package keystore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Get(ctx, OpenAIAPIKey)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get OPENAI_API_KEY")

	require.NoError(t, s.Set(ctx, OpenAIAPIKey, "sk-one"))
	v, err := s.Get(ctx, OpenAIAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "sk-one", v)

	require.NoError(t, s.Set(ctx, OpenAIAPIKey, "sk-two"))
	v, err = s.Get(ctx, OpenAIAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "sk-two", v)

	require.NoError(t, s.Set(ctx, PrefDebug, ""))
	v, err = s.Get(ctx, PrefDebug)
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, s.Delete(ctx, OpenAIAPIKey))
	require.NoError(t, s.Delete(ctx, OpenAIAPIKey))
	_, err = s.Get(ctx, OpenAIAPIKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory(nil))
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "keys.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), PrefModel, "gpt-4o"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, err := reopened.Get(context.Background(), PrefModel)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", v)
}

func TestEnvOverlay(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(map[string]string{AnthropicAPIKey: "stored", OpenAIAPIKey: "stored-oa"})
	env := &Env{Next: mem, lookup: func(k string) (string, bool) {
		switch k {
		case AnthropicAPIKey:
			return "from-env", true
		case OpenAIAPIKey:
			return "", true
		}
		return "", false
	}}

	v, err := env.Get(ctx, AnthropicAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)

	v, err = env.Get(ctx, OpenAIAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "stored-oa", v, "empty env var falls through")

	_, err = env.Get(ctx, GeminiAPIKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, env.Set(ctx, GeminiAPIKey, "g"))
	v, err = mem.Get(ctx, GeminiAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "g", v)
}

func TestWithValues(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(map[string]string{PrefModel: "gpt-4o"})
	store := WithValues(mem, map[string]string{GeminiAPIKey: "from-config"})

	v, err := store.Get(ctx, GeminiAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "from-config", v)

	v, err = store.Get(ctx, PrefModel)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", v)

	require.NoError(t, store.Delete(ctx, PrefModel))
	_, err = store.Get(ctx, PrefModel)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKeyErrorNamesOperation(t *testing.T) {
	ctx := context.Background()
	env := &Env{lookup: func(string) (string, bool) { return "", false }}

	_, err := env.Get(ctx, GeminiAPIKey)
	assert.EqualError(t, err, "failed to get GEMINI_API_KEY: key not found")

	err = env.Set(ctx, GeminiAPIKey, "g")
	assert.EqualError(t, err, "failed to set GEMINI_API_KEY: read-only store")

	err = &KeyError{Op: "delete", Key: PrefModel, Err: errors.New("disk I/O error")}
	assert.EqualError(t, err, "failed to delete LLM_MODEL: disk I/O error")
}

func TestBool(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(map[string]string{"a": "true", "b": "off", "c": "maybe"})
	assert.True(t, Bool(ctx, m, "a", false))
	assert.False(t, Bool(ctx, m, "b", true))
	assert.True(t, Bool(ctx, m, "c", true))
	assert.False(t, Bool(ctx, m, "missing", false))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "****", Mask("abcd"))
	assert.Equal(t, "****5678", Mask("12345678"))
	assert.True(t, IsSecret(OpenAIAPIKey))
	assert.True(t, IsSecret("SHEETASK_ACCESS_TOKEN"))
	assert.False(t, IsSecret(PrefModel))
}
