package internal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Summarizer turns a prepared prompt into summary text
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// GeminiSummarizer implements Summarizer with Google's Gemini API
type GeminiSummarizer struct {
	apiKey  string
	model   string
	timeout time.Duration
	verbose bool
}

// NewGeminiSummarizer creates a Gemini-backed summarizer
func NewGeminiSummarizer(apiKey, model string, timeout time.Duration, verbose bool) *GeminiSummarizer {
	return &GeminiSummarizer{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		verbose: verbose,
	}
}

// Summarize sends the prompt to Gemini and returns the generated text
func (g *GeminiSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingCredential)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("creating Gemini client: %w", err)
	}

	if g.verbose {
		fmt.Printf("Requesting summary from %s (%d prompt characters)\n", g.model, len(prompt))
	}

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}
