package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"animebuddy/internal/services"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultModel       = "gpt-3.5-turbo"
	defaultMaxTokens   = 300
	defaultBaseURL     = "https://api.openai.com/v1"

	// SystemPrompt is sent ahead of every user prompt.
	SystemPrompt = "You are an expert in anime and manga. Respond clearly and concisely."
)

// Config captures the runtime settings required to talk to the LLM.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	MaxTokens      int
	TimeoutSeconds int
}

// Client wraps a hosted chat completion API. It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	api        openai.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an LLM client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Model:          strings.TrimSpace(cfg.Model),
			MaxTokens:      cfg.MaxTokens,
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	if client.cfg.MaxTokens <= 0 {
		client.cfg.MaxTokens = defaultMaxTokens
	}

	client.api = openai.NewClient(
		option.WithAPIKey(client.cfg.APIKey),
		option.WithBaseURL(client.cfg.BaseURL+"/"),
		option.WithHTTPClient(client.httpClient),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	)
	return client
}

// Model reports the chat model used for every request.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Ask sends prompt as a single user message and returns the trimmed content
// of the first choice. No retries are attempted.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", services.Wrap(services.ErrConfiguration, "llm", "ask", "prompt required", nil)
	}
	if c.cfg.APIKey == "" {
		return "", services.Wrap(services.ErrConfiguration, "llm", "ask", "api key required", nil)
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(int64(c.cfg.MaxTokens)),
	})
	if err != nil {
		return "", classifyError(ctx, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", services.Wrap(services.ErrMalformedResponse, "llm", "ask", "empty choices", nil)
	}
	choice := resp.Choices[0]
	content := strings.TrimSpace(choice.Message.Content)
	if content == "" {
		return "", &emptyContentError{
			FinishReason: choice.FinishReason,
			Refusal:      choice.Message.Refusal,
		}
	}
	return content, nil
}

type emptyContentError struct {
	FinishReason string
	Refusal      string
}

func (e *emptyContentError) Error() string {
	return "llm ask: empty content (finish_reason=" + quote(e.FinishReason) + ", refusal=" + quote(summarizePayloadSnippet(e.Refusal)) + ")"
}

func (e *emptyContentError) Unwrap() error {
	return services.ErrMalformedResponse
}

func quote(s string) string {
	return `"` + s + `"`
}

func classifyError(ctx context.Context, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &services.HTTPStatusError{
			Service:    "llm",
			StatusCode: apiErr.StatusCode,
			Body:       apiErr.Message,
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return services.Wrap(services.ErrNetwork, "llm", "ask", "request cancelled", ctxErr)
	}
	return services.Wrap(services.ErrNetwork, "llm", "ask", "", err)
}
