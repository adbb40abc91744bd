package llm

import (
	"context"
	"net/http"
	"strings"
)

const defaultAnthropicURL = "https://api.anthropic.com"

// Anthropic calls the Messages API.
type Anthropic struct {
	apiKey    string
	url       string
	maxTokens int
	hc        *http.Client
}

// NewAnthropic returns a Messages API client.
func NewAnthropic(apiKey string, ep Endpoint, hc *http.Client) *Anthropic {
	base := ep.BaseURL
	if base == "" {
		base = defaultAnthropicURL
	}
	return &Anthropic{
		apiKey:    apiKey,
		url:       strings.TrimRight(base, "/") + "/v1/messages",
		maxTokens: ep.maxTokens(),
		hc:        hc,
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete returns the first content block's text, or "" when the first
// block is not text.
func (c *Anthropic) Complete(ctx context.Context, model, system, question string) (string, error) {
	header := http.Header{}
	header.Set("x-api-key", c.apiKey)
	header.Set("anthropic-version", "2023-06-01")

	var resp anthropicResponse
	err := postJSON(ctx, c.hc, ProviderAnthropic, c.url, header, anthropicRequest{
		Model:     model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: question}},
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Content) == 0 || resp.Content[0].Type != "text" {
		return "", nil
	}
	return resp.Content[0].Text, nil
}
