// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/giftmatch/internal/budget"
	"github.com/tomtom215/giftmatch/internal/logging"
	"github.com/tomtom215/giftmatch/internal/metrics"
	"github.com/tomtom215/giftmatch/internal/profile"
)

// ErrUnavailable marks every failure that is not a parse failure: the
// limiter refused to wait, the circuit is open, the transport failed or
// the endpoint answered with a non-2xx status.
var ErrUnavailable = errors.New("extractor unavailable")

// maxErrorBodySize limits how much of an error response is read.
const maxErrorBodySize = 64 * 1024

// Config configures the language model client.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration

	RequestsPerSecond float64
	Burst             int

	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// DefaultConfig returns defaults for an OpenAI-compatible endpoint.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://api.openai.com/v1",
		Model:             "gpt-4o-mini",
		Timeout:           30 * time.Second,
		RequestsPerSecond: 5,
		Burst:             10,
		BreakerFailures:   5,
		BreakerTimeout:    30 * time.Second,
	}
}

// Extraction is the decoded result of one Extract call.
type Extraction struct {
	// Update holds the profile fields the model reported. Null and absent
	// keys are not present.
	Update profile.Update

	// Hint is the normalised budget_hint value.
	Hint budget.Hint

	// Raw is the model output after code fences were removed.
	Raw string
}

// Client calls an OpenAI-compatible /chat/completions endpoint. It is safe
// for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	breaker *breaker
}

// New creates a client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("extractor base URL is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("extractor model is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		breaker: newBreaker("extractor", cfg.BreakerFailures, cfg.BreakerTimeout),
	}, nil
}

// Extract asks the model to update the current profile from the user's
// message. A reply that is not a JSON object of known profile fields
// returns *ParseError; other failures wrap ErrUnavailable.
//
//nolint:gocritic // profile.Profile is a small value type
func (c *Client) Extract(ctx context.Context, userText string, current profile.Profile, lang string) (*Extraction, error) {
	table, err := json.MarshalIndent(current.ToMap(), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode current table: %w", err)
	}

	content, err := c.complete(ctx, "extract", []chatMessage{
		{Role: "system", Content: systemPrompt(lang)},
		{Role: "user", Content: userPrompt(lang, userText, string(table))},
	})
	if err != nil {
		return nil, err
	}

	extraction, err := ParseExtraction(content)
	if err != nil {
		metrics.ExtractorErrors.WithLabelValues("extract", "parse").Inc()
		logging.Ctx(ctx).Warn().Err(err).Msg("Model reply could not be parsed")
		return nil, err
	}
	return extraction, nil
}

// DetectLanguage asks the model for the ISO 639-1 code of text and
// returns it lower-cased.
func (c *Client) DetectLanguage(ctx context.Context, text string) (string, error) {
	content, err := c.complete(ctx, "detect_language", []chatMessage{
		{Role: "system", Content: languagePrompt},
		{Role: "user", Content: text},
	})
	if err != nil {
		return "", err
	}
	code := strings.ToLower(strings.Trim(StripCodeFences(content), " \t\r\n.\"'"))
	if code == "" {
		return "", &ParseError{Raw: content, Err: errors.New("empty language code")}
	}
	return code, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete performs one chat completion behind the limiter and breaker and
// returns the first choice's content.
func (c *Client) complete(ctx context.Context, operation string, messages []chatMessage) (string, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordExtractorCall(operation, "rate_limited", time.Since(start))
		return "", fmt.Errorf("%w: rate limiter: %w", ErrUnavailable, err)
	}

	content, err := c.breaker.execute(func() (string, error) {
		return c.post(ctx, messages)
	})
	if err != nil {
		var statusErr *StatusError
		errType := "transport"
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			errType = "rejected"
		case errors.As(err, &statusErr):
			errType = "status"
		}
		metrics.RecordExtractorCall(operation, errType, time.Since(start))
		return "", fmt.Errorf("%w: %s: %w", ErrUnavailable, operation, err)
	}

	metrics.RecordExtractorCall(operation, "", time.Since(start))
	return content, nil
}

// StatusError is a non-2xx reply from the endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) post(ctx context.Context, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{Model: c.cfg.Model, Messages: messages, Temperature: c.cfg.Temperature})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(readBodyForError(resp.Body))}
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("response has no choices")
	}
	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}

func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	return body
}
