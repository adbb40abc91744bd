package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/keystore"
)

// DefaultMaxTokens bounds answer length for providers that require a limit.
const DefaultMaxTokens = 1024

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 64 << 10

// Endpoint configures one provider.
type Endpoint struct {
	// BaseURL overrides the provider's API root.
	BaseURL string `yaml:"base_url"`
	// MaxTokens overrides DefaultMaxTokens.
	MaxTokens int `yaml:"max_tokens"`
}

// ProviderOptions configures the default backends.
type ProviderOptions struct {
	Anthropic Endpoint `yaml:"anthropic"`
	OpenAI    Endpoint `yaml:"openai"`
	Google    Endpoint `yaml:"google"`
	// HTTPClient is shared by the HTTP backends. Nil means a client with Timeout.
	HTTPClient *http.Client `yaml:"-"`
	// Timeout applies when HTTPClient is nil. Zero means no client timeout.
	Timeout time.Duration `yaml:"-"`
}

func (o ProviderOptions) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return &http.Client{Timeout: o.Timeout}
}

func (e Endpoint) maxTokens() int {
	if e.MaxTokens > 0 {
		return e.MaxTokens
	}
	return DefaultMaxTokens
}

// DefaultBackends returns the backend table for every built-in provider.
func DefaultBackends(opts ProviderOptions) map[Provider]Backend {
	return map[Provider]Backend{
		ProviderAnthropic: {
			KeyName: keystore.AnthropicAPIKey,
			New: func(key string) (Client, error) {
				return NewAnthropic(key, opts.Anthropic, opts.httpClient()), nil
			},
		},
		ProviderOpenAI: {
			KeyName: keystore.OpenAIAPIKey,
			New: func(key string) (Client, error) {
				return NewOpenAI(key, opts.OpenAI, opts.httpClient()), nil
			},
		},
		ProviderGoogle: {
			KeyName: keystore.GeminiAPIKey,
			New: func(key string) (Client, error) {
				return NewGemini(context.Background(), key, opts.Google, opts.HTTPClient)
			},
		},
	}
}

// postJSON sends body to url and decodes a 2xx response into out.
// Non-2xx responses become a ProviderError carrying status and body.
func postJSON(ctx context.Context, hc *http.Client, p Provider, url string, header http.Header, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return &ProviderError{Provider: p, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ProviderError{
			Provider: p,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(slurp)),
			Err:      fmt.Errorf("status %d", resp.StatusCode),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{Provider: p, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
