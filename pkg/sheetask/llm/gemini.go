package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// Gemini calls the Gemini API through the genai SDK.
type Gemini struct {
	client    *genai.Client
	maxTokens int32
}

// NewGemini returns a Gemini client. hc may be nil.
func NewGemini(ctx context.Context, apiKey string, ep Endpoint, hc *http.Client) (*Gemini, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: hc,
	}
	if ep.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: ep.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Gemini{client: client, maxTokens: int32(ep.maxTokens())}, nil
}

// Complete returns the text of the first candidate.
func (c *Gemini) Complete(ctx context.Context, model, system, question string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(question), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		MaxOutputTokens:   c.maxTokens,
	})
	if err != nil {
		return "", geminiError(err)
	}
	return resp.Text(), nil
}

// geminiError carries the upstream status and message of a genai API error.
func geminiError(err error) *ProviderError {
	perr := &ProviderError{Provider: ProviderGoogle, Err: err}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		perr.Status = apiErr.Code
		perr.Body = apiErr.Message
	}
	return perr
}
