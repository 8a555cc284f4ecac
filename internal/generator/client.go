package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/specialistvlad/jilgen/internal/ctxlog"
	"resty.dev/v3"
)

const (
	DefaultAnthropicVersion = "bedrock-2023-05-31"
	DefaultMaxTokens        = 4000
	DefaultTimeout          = 120 * time.Second
)

var (
	// ErrEmptyCompletion is returned when the reply has no text content.
	ErrEmptyCompletion = errors.New("generator returned no text content")
	// ErrNoEndpoint is returned by NewClient when Options.Endpoint is empty.
	ErrNoEndpoint = errors.New("generator endpoint is required")
)

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// StatusError reports a non-2xx reply from the endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("generator endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	Endpoint         string
	Model            string
	APIKey           string
	AnthropicVersion string
	MaxTokens        int
	Timeout          time.Duration
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	AnthropicVersion string    `json:"anthropic_version"`
	Model            string    `json:"model,omitempty"`
	MaxTokens        int       `json:"max_tokens"`
	Messages         []message `json:"messages"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type response struct {
	Content []contentPart `json:"content"`
}

// Client is a Generator backed by an HTTP endpoint. It is safe for
// concurrent use.
type Client struct {
	http *resty.Client
	opts Options
}

// NewClient creates a Client from opts.
func NewClient(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if opts.AnthropicVersion == "" {
		opts.AnthropicVersion = DefaultAnthropicVersion
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if opts.APIKey != "" {
		httpClient.SetAuthToken(opts.APIKey)
	}

	return &Client{http: httpClient, opts: opts}, nil
}

// Generate sends prompt as a single user message and returns the reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	logger := ctxlog.FromContext(ctx).With("endpoint", c.opts.Endpoint)
	logger.Debug("Sending prompt to generator.", "prompt_bytes", len(prompt), "max_tokens", c.opts.MaxTokens)

	body := request{
		AnthropicVersion: c.opts.AnthropicVersion,
		Model:            c.opts.Model,
		MaxTokens:        c.opts.MaxTokens,
		Messages:         []message{{Role: "user", Content: prompt}},
	}

	var out response
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(c.opts.Endpoint)
	if err != nil {
		return "", fmt.Errorf("generator request failed: %w", err)
	}
	if res.IsError() {
		return "", &StatusError{StatusCode: res.StatusCode(), Body: res.String()}
	}

	var sb strings.Builder
	for _, part := range out.Content {
		if part.Type == "text" {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyCompletion
	}

	logger.Debug("Generator replied.", "status", res.StatusCode(), "text_bytes", sb.Len())
	return sb.String(), nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	return c.http.Close()
}
