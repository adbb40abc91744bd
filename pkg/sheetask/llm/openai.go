package llm

import (
	"context"
	"net/http"
	"strings"
)

const defaultOpenAIURL = "https://api.openai.com"

// OpenAI calls the Responses API.
type OpenAI struct {
	apiKey string
	url    string
	hc     *http.Client
}

// NewOpenAI returns a Responses API client.
func NewOpenAI(apiKey string, ep Endpoint, hc *http.Client) *OpenAI {
	base := ep.BaseURL
	if base == "" {
		base = defaultOpenAIURL
	}
	return &OpenAI{
		apiKey: apiKey,
		url:    strings.TrimRight(base, "/") + "/v1/responses",
		hc:     hc,
	}
}

type openAIRequest struct {
	Model        string `json:"model"`
	Instructions string `json:"instructions,omitempty"`
	Input        string `json:"input"`
}

type openAIResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// Complete returns the concatenated output_text parts of the response.
func (c *OpenAI) Complete(ctx context.Context, model, system, question string) (string, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.apiKey)

	var resp openAIResponse
	err := postJSON(ctx, c.hc, ProviderOpenAI, c.url, header, openAIRequest{
		Model:        model,
		Instructions: system,
		Input:        question,
	}, &resp)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				b.WriteString(part.Text)
			}
		}
	}
	return b.String(), nil
}
