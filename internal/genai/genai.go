// Package genai provides generative-text provider gateways for FitQuest.
//
// It defines the Generator capability the coaching pipeline depends on and
// implements it for the OpenAI chat-completion API. A Gemini backend lives
// in gemini.go. Both gateways bound every request with a timeout and map
// transport failures into the ProviderError taxonomy.
package genai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Default configuration for provider gateways.
const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-4o-mini"
	// DefaultTemperature is the sampling temperature for coaching replies.
	DefaultTemperature = 0.7
	// DefaultTimeout bounds a single provider request.
	DefaultTimeout = 30 * time.Second
)

// Error variables for better error handling and testability
var (
	ErrMissingAPIKey     = errors.New("provider API key not set")
	ErrNoChoicesReturned = errors.New("no choices returned")
	ErrEmptyContent      = errors.New("provider returned empty content")
)

// ProviderErrorKind classifies a provider failure.
type ProviderErrorKind string

const (
	// ProviderErrorNetwork indicates a transport-level failure.
	ProviderErrorNetwork ProviderErrorKind = "network"
	// ProviderErrorTimeout indicates the bounded request deadline elapsed.
	ProviderErrorTimeout ProviderErrorKind = "timeout"
	// ProviderErrorCancelled indicates the caller cancelled the request.
	ProviderErrorCancelled ProviderErrorKind = "cancelled"
	// ProviderErrorBadStatus indicates a non-2xx response from the provider.
	ProviderErrorBadStatus ProviderErrorKind = "bad_status"
	// ProviderErrorEmptyContent indicates a 2xx envelope with no usable text.
	ProviderErrorEmptyContent ProviderErrorKind = "empty_content"
)

// ProviderError wraps a provider failure with its classification. Status is
// set only for bad_status errors.
type ProviderError struct {
	Kind   ProviderErrorKind
	Status int
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider error (%s, status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("provider error (%s): %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Generator is the capability the coaching pipeline needs from a
// generative-text backend: a system/user prompt pair in, raw text out.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Opts holds configuration options for provider gateways.
type Opts struct {
	APIKey      string        // provider API key; falls back to the provider's env variable
	Model       string        // model identifier
	Temperature float64       // sampling temperature
	Timeout     time.Duration // per-request deadline
	BaseURL     string        // endpoint override, used by the Gemini gateway
}

// Option defines a configuration option for a provider gateway.
type Option func(*Opts)

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) {
		o.APIKey = key
	}
}

// WithModel sets the model identifier.
func WithModel(model string) Option {
	return func(o *Opts) {
		o.Model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Opts) {
		o.Temperature = t
	}
}

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) {
		o.Timeout = d
	}
}

// WithBaseURL overrides the provider endpoint.
func WithBaseURL(url string) Option {
	return func(o *Opts) {
		o.BaseURL = url
	}
}

func applyOptions(opts []Option) Opts {
	cfg := Opts{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		Timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// chatService defines the minimal interface for chat completions.
type chatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client implements Generator using the OpenAI chat-completion API.
type Client struct {
	chat        chatService
	model       openai.ChatModel
	temperature float64
	timeout     time.Duration
}

// NewClient creates an OpenAI-backed gateway, applying any provided options.
// The API key falls back to the OPENAI_API_KEY environment variable.
func NewClient(opts ...Option) (*Client, error) {
	cfg := applyOptions(opts)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI gateway: %w", ErrMissingAPIKey)
	}
	cli := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &Client{
		chat:        &cli.Chat.Completions,
		model:       openai.ChatModel(cfg.Model),
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}, nil
}

// Generate sends the prompt pair as a role-tagged message list and returns
// the first choice's content.
func (c *Client) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
		Temperature: openai.Float(c.temperature),
	}

	resp, err := c.chat.New(ctx, params)
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Kind: ProviderErrorEmptyContent, Err: ErrNoChoicesReturned}
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", &ProviderError{Kind: ProviderErrorEmptyContent, Err: ErrEmptyContent}
	}
	return content, nil
}

// classifyOpenAIError maps SDK errors onto the ProviderError taxonomy.
func classifyOpenAIError(err error) *ProviderError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &ProviderError{Kind: ProviderErrorTimeout, Err: err}
	case errors.Is(err, context.Canceled):
		return &ProviderError{Kind: ProviderErrorCancelled, Err: err}
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{Kind: ProviderErrorBadStatus, Status: apiErr.StatusCode, Err: err}
	}
	return &ProviderError{Kind: ProviderErrorNetwork, Err: err}
}
