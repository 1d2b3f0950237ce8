package genai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// mockChatService implements chatService for testing.
type mockChatService struct {
	resp       *openai.ChatCompletion
	err        error
	lastParams openai.ChatCompletionNewParams
}

func (m *mockChatService) New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.lastParams = params
	return m.resp, m.err
}

func testClient(mock *mockChatService) *Client {
	return &Client{chat: mock, model: openai.ChatModel(DefaultModel), temperature: DefaultTemperature, timeout: DefaultTimeout}
}

func providerError(t *testing.T, err error) *ProviderError {
	t.Helper()
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProviderError, got %T: %v", err, err)
	}
	return perr
}

func TestGenerate_Success(t *testing.T) {
	mock := &mockChatService{resp: &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "Hello World"}},
		},
	}}
	client := testClient(mock)

	out, err := client.Generate(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "Hello World" {
		t.Errorf("expected 'Hello World', got %q", out)
	}
	if len(mock.lastParams.Messages) != 2 {
		t.Errorf("expected system+user message pair, got %d messages", len(mock.lastParams.Messages))
	}
}

func TestGenerate_NoChoices(t *testing.T) {
	client := testClient(&mockChatService{resp: &openai.ChatCompletion{}})
	_, err := client.Generate(context.Background(), "sys", "usr")
	perr := providerError(t, err)
	if perr.Kind != ProviderErrorEmptyContent {
		t.Errorf("expected empty_content kind, got %s", perr.Kind)
	}
	if !errors.Is(err, ErrNoChoicesReturned) {
		t.Errorf("expected ErrNoChoicesReturned, got %v", err)
	}
}

func TestGenerate_EmptyContent(t *testing.T) {
	mock := &mockChatService{resp: &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: ""}}},
	}}
	client := testClient(mock)
	_, err := client.Generate(context.Background(), "sys", "usr")
	perr := providerError(t, err)
	if perr.Kind != ProviderErrorEmptyContent {
		t.Errorf("expected empty_content kind, got %s", perr.Kind)
	}
}

func TestGenerate_NetworkError(t *testing.T) {
	client := testClient(&mockChatService{err: errors.New("connection refused")})
	_, err := client.Generate(context.Background(), "sys", "usr")
	perr := providerError(t, err)
	if perr.Kind != ProviderErrorNetwork {
		t.Errorf("expected network kind, got %s", perr.Kind)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestGenerate_TimeoutClassification(t *testing.T) {
	client := testClient(&mockChatService{err: context.DeadlineExceeded})
	_, err := client.Generate(context.Background(), "sys", "usr")
	if perr := providerError(t, err); perr.Kind != ProviderErrorTimeout {
		t.Errorf("expected timeout kind, got %s", perr.Kind)
	}

	client = testClient(&mockChatService{err: context.Canceled})
	_, err = client.Generate(context.Background(), "sys", "usr")
	if perr := providerError(t, err); perr.Kind != ProviderErrorCancelled {
		t.Errorf("expected cancelled kind, got %s", perr.Kind)
	}
}

func TestNewClient_NoKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewClient()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewClient_WithKey(t *testing.T) {
	cli, err := NewClient(WithAPIKey("test-key"), WithModel("gpt-4o"), WithTemperature(0.2))
	if err != nil {
		t.Fatalf("expected no error with API key, got %v", err)
	}
	if cli == nil {
		t.Fatal("expected client instance, got nil")
	}
	if cli.model != "gpt-4o" || cli.temperature != 0.2 {
		t.Errorf("options not applied: %+v", cli)
	}
}
