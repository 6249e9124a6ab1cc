// Package planner talks to an OpenAI-compatible chat completion API
// (OpenRouter in production) to produce itinerary text.
package planner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pkordes/roamlog/backend/internal/domain"
	"github.com/pkordes/roamlog/backend/internal/metrics"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "meta-llama/llama-3.3-70b-instruct"
	DefaultTimeout = 60 * time.Second

	appTitle    = "RoamLog AI Planner"
	temperature = 0.8
)

// Config holds the provider settings read from the environment.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// Referer is sent as HTTP-Referer, which OpenRouter uses for app attribution.
	Referer string
	Timeout time.Duration
}

// Recorder receives one observation per provider call. *metrics.Metrics
// implements it.
type Recorder interface {
	ObserveItinerary(outcome string, d time.Duration)
}

// Client sends single-turn chat completions. It is safe for concurrent use.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	rec     Recorder
}

// New builds a Client. Empty BaseURL, Model and Timeout fall back to the
// package defaults. rec may be nil.
func New(cfg Config, rec Recorder) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = cfg.BaseURL
	oc.HTTPClient = &http.Client{
		Transport: &headerTransport{
			base: http.DefaultTransport,
			headers: http.Header{
				"Http-Referer": {cfg.Referer},
				"X-Title":      {appTitle},
			},
		},
	}

	return &Client{
		api:     openai.NewClientWithConfig(oc),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		rec:     rec,
	}
}

// Complete sends system and prompt as one conversation and returns the first
// choice's text, which may be empty. The call is bounded by the client
// timeout on top of ctx. There is no retry.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		err = classify(err)
		c.observe(outcomeOf(err), start)
		return "", fmt.Errorf("planner.Client.Complete: %w", err)
	}
	c.observe(metrics.OutcomeOK, start)

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) observe(outcome string, start time.Time) {
	if c.rec != nil {
		c.rec.ObserveItinerary(outcome, time.Since(start))
	}
}

// classify maps provider failures onto the domain errors. HTTP 429 and an
// exhausted quota are both reported as rate limiting; anything else is a
// generation failure.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests || isQuotaCode(apiErr.Code) || apiErr.Type == "insufficient_quota" {
			return fmt.Errorf("%w: %w", domain.ErrProviderRateLimited, err)
		}
		return fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", domain.ErrProviderRateLimited, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrGeneration, err)
}

// isQuotaCode handles both string and numeric error codes; providers differ.
func isQuotaCode(code any) bool {
	s, ok := code.(string)
	return ok && s == "insufficient_quota"
}

func outcomeOf(err error) string {
	if errors.Is(err, domain.ErrProviderRateLimited) {
		return metrics.OutcomeRateLimited
	}
	return metrics.OutcomeError
}

// headerTransport adds fixed headers to every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	for k, v := range t.headers {
		r.Header[k] = v
	}
	return t.base.RoundTrip(r)
}
