// Package gemini provides the Gemini-backed narrative analyzer.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"ashare_analyst/internal/feature/analysis/usecase"
)

const (
	// DefaultModel is the Gemini model used for report commentary.
	DefaultModel = "gemini-2.5-flash"
)

// NarrativeClient generates report commentary through the Gemini API.
type NarrativeClient struct {
	client *genai.Client
	model  string
}

// Compile-time check that NarrativeClient implements NarrativeAnalyzer.
var _ usecase.NarrativeAnalyzer = (*NarrativeClient)(nil)

// NewNarrativeClient creates a NarrativeClient using ADC. The env vars
// GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION
// (or GEMINI_API_KEY) configure the underlying client.
func NewNarrativeClient(ctx context.Context) (*NarrativeClient, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &NarrativeClient{client: client, model: DefaultModel}, nil
}

// Analyze generates a commentary from the prompt.
func (c *NarrativeClient) Analyze(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
