package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropicRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-opus-4-6", req.Model)
		assert.Equal(t, 1024, req.MaxTokens)
		assert.Equal(t, "sys", req.System)
		assert.Equal(t, []anthropicMessage{{Role: "user", Content: "q"}}, req.Messages)

		io.WriteString(w, `{"content":[{"type":"text","text":"answer"},{"type":"text","text":"ignored"}]}`)
	}))
	defer srv.Close()

	c := NewAnthropic("sk-ant", Endpoint{BaseURL: srv.URL + "/"}, srv.Client())
	got, err := c.Complete(context.Background(), "claude-opus-4-6", "sys", "q")
	require.NoError(t, err)
	assert.Equal(t, "answer", got)
}

func TestAnthropicNonTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"content":[{"type":"tool_use"}]}`)
	}))
	defer srv.Close()

	got, err := NewAnthropic("k", Endpoint{BaseURL: srv.URL}, srv.Client()).Complete(context.Background(), "m", "s", "q")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestOpenAIComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/responses", r.URL.Path)
		assert.Equal(t, "Bearer sk-oa", r.Header.Get("Authorization"))

		var req openAIRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, openAIRequest{Model: "gpt-4o", Instructions: "sys", Input: "q"}, req)

		io.WriteString(w, `{"output":[
			{"type":"reasoning","content":[]},
			{"type":"message","content":[{"type":"output_text","text":"Hello, "},{"type":"output_text","text":"world"}]}
		]}`)
	}))
	defer srv.Close()

	got, err := NewOpenAI("sk-oa", Endpoint{BaseURL: srv.URL}, srv.Client()).Complete(context.Background(), "gpt-4o", "sys", "q")
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", got)
}

func TestProviderErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"invalid x-api-key"}}`)
	}))
	defer srv.Close()

	_, err := NewAnthropic("bad", Endpoint{BaseURL: srv.URL}, srv.Client()).Complete(context.Background(), "m", "s", "q")
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusUnauthorized, perr.Status)
	assert.Equal(t, `{"error":{"message":"invalid x-api-key"}}`, perr.Body)
	assert.Equal(t, `anthropic API error 401: {"error":{"message":"invalid x-api-key"}}`, err.Error())
}

func TestProviderErrorOnBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	}))
	defer srv.Close()

	_, err := NewOpenAI("k", Endpoint{BaseURL: srv.URL}, srv.Client()).Complete(context.Background(), "m", "s", "q")
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Zero(t, perr.Status)
}

func TestGeminiErrorCarriesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`)
	}))
	defer srv.Close()

	ctx := context.Background()
	client, err := NewGemini(ctx, "bad", Endpoint{BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	_, err = client.Complete(ctx, "gemini-2.5-flash", "s", "q")
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ProviderGoogle, perr.Provider)
	assert.Equal(t, http.StatusForbidden, perr.Status)
	assert.Equal(t, "API key not valid", perr.Body)
	assert.Equal(t, "google API error 403: API key not valid", err.Error())
}

func TestGeminiErrorWithoutStatus(t *testing.T) {
	err := geminiError(errors.New("dial tcp: connection refused"))
	assert.Zero(t, err.Status)
	assert.Equal(t, "google request failed: dial tcp: connection refused", err.Error())
}
