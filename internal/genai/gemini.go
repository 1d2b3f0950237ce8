// Package genai provides generative-text provider gateways for FitQuest.
//
// This file implements the Generator capability against the Gemini
// generateContent REST API.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Gemini gateway defaults.
const (
	// DefaultGeminiModel is the Gemini model used when none is configured.
	DefaultGeminiModel = "gemini-2.0-flash"
	// DefaultGeminiBaseURL is the generateContent endpoint prefix.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

type geminiPayload struct {
	Contents          []geminiContent   `json:"contents"`
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiClient implements Generator using the Gemini generateContent API.
type GeminiClient struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	client      *http.Client
}

// NewGeminiClient creates a Gemini-backed gateway, applying any provided
// options. The API key falls back to the GEMINI_API_KEY environment variable.
func NewGeminiClient(opts ...Option) (*GeminiClient, error) {
	cfg := applyOptions(opts)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini gateway: %w", ErrMissingAPIKey)
	}
	model := cfg.Model
	if model == "" || model == DefaultModel {
		model = DefaultGeminiModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	return &GeminiClient{
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     baseURL,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Generate sends the prompt pair as a systemInstruction plus a single user
// content and returns the first candidate's text.
func (g *GeminiClient) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	payload := geminiPayload{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: userMessage}}}},
		GenerationConfig:  &generationConfig{Temperature: g.temperature},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal Gemini payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", classifyGeminiError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &ProviderError{
			Kind:   ProviderErrorBadStatus,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("gemini returned %s: %s", resp.Status, detail),
		}
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ProviderError{Kind: ProviderErrorEmptyContent, Err: fmt.Errorf("failed to decode Gemini envelope: %w", err)}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &ProviderError{Kind: ProviderErrorEmptyContent, Err: ErrEmptyContent}
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", &ProviderError{Kind: ProviderErrorEmptyContent, Err: ErrEmptyContent}
	}
	return text, nil
}

// classifyGeminiError maps HTTP client errors onto the ProviderError taxonomy.
func classifyGeminiError(err error) *ProviderError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &ProviderError{Kind: ProviderErrorTimeout, Err: err}
	case errors.Is(err, context.Canceled):
		return &ProviderError{Kind: ProviderErrorCancelled, Err: err}
	}
	// net/http wraps client timeouts in *url.Error with Timeout() true.
	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return &ProviderError{Kind: ProviderErrorTimeout, Err: err}
	}
	return &ProviderError{Kind: ProviderErrorNetwork, Err: err}
}
