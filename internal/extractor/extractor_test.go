// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/giftmatch/internal/budget"
	"github.com/tomtom215/giftmatch/internal/profile"
)

// fakeLLM serves /chat/completions with a fixed reply and records the
// last request it received.
type fakeLLM struct {
	reply  string
	status int
	calls  atomic.Int32
	last   atomic.Pointer[chatRequest]
	header atomic.Pointer[http.Header]
}

func (f *fakeLLM) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	if r.URL.Path != "/chat/completions" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.last.Store(&req)
	h := r.Header.Clone()
	f.header.Store(&h)

	if f.status != 0 {
		http.Error(w, "upstream exploded", f.status)
		return
	}
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": f.reply}},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func newTestClient(t *testing.T, fake *fakeLLM, mutate func(*Config)) *Client {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL + "/"
	cfg.APIKey = "test-key"
	cfg.Timeout = 5 * time.Second
	cfg.RequestsPerSecond = 0
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

func TestNew_RequiresBaseURLAndModel(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.BaseURL = ""
	if _, err := New(cfg); err == nil {
		t.Error("expected error without base URL")
	}

	cfg = DefaultConfig()
	cfg.Model = ""
	if _, err := New(cfg); err == nil {
		t.Error("expected error without model")
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	fake := &fakeLLM{reply: "```json\n{\"gender_female\": true, \"gender_male\": null, \"interest_music\": true, \"budget_hint\": \"ucuz\"}\n```"}
	c := newTestClient(t, fake, nil)

	var current profile.Profile
	current.Set(profile.Age19To29, true)

	got, err := c.Extract(context.Background(), "kız kardeşim müzik seviyor", current, "tr")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if v, ok := got.Update.Value(profile.GenderFemale); !ok || !v {
		t.Errorf("gender_female = %v, %v; want true", v, ok)
	}
	if _, ok := got.Update.Value(profile.GenderMale); ok {
		t.Error("null gender_male should be absent from the update")
	}
	if got.Hint != budget.HintCheap {
		t.Errorf("hint = %q, want %q", got.Hint, budget.HintCheap)
	}
	if strings.HasPrefix(got.Raw, "```") {
		t.Errorf("raw reply still fenced: %q", got.Raw)
	}

	req := fake.last.Load()
	if req == nil || len(req.Messages) != 2 {
		t.Fatalf("request = %+v", req)
	}
	if req.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", req.Model)
	}
	if !strings.Contains(req.Messages[0].Content, "Daha önce doldurulmuş bilgileri değiştirme") {
		t.Errorf("Turkish system prompt not used: %q", req.Messages[0].Content)
	}
	if !strings.Contains(req.Messages[1].Content, `"age_19_29": true`) {
		t.Errorf("current table missing from user prompt: %q", req.Messages[1].Content)
	}
	if h := fake.header.Load(); h == nil || h.Get("Authorization") != "Bearer test-key" {
		t.Error("missing bearer token")
	}
}

func TestExtract_ParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
	}{
		{"not json", "Sure! The user likes music."},
		{"array", "[1, 2, 3]"},
		{"null", "null"},
		{"unknown key", `{"gender_robot": true}`},
		{"two genders", `{"gender_male": true, "gender_female": true}`},
		{"string flag", `{"interest_music": "yes"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, &fakeLLM{reply: tt.reply}, nil)
			_, err := c.Extract(context.Background(), "hello", profile.Profile{}, "en")

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if perr.Raw != tt.reply {
				t.Errorf("Raw = %q, want %q", perr.Raw, tt.reply)
			}
			if errors.Is(err, ErrUnavailable) {
				t.Error("parse failure must not be reported as unavailable")
			}
		})
	}
}

func TestExtract_StatusErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, &fakeLLM{status: http.StatusBadGateway}, nil)
	_, err := c.Extract(context.Background(), "hello", profile.Profile{}, "en")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadGateway {
		t.Errorf("err = %v, want StatusError 502", err)
	}
	if !strings.Contains(statusErr.Body, "upstream exploded") {
		t.Errorf("body = %q", statusErr.Body)
	}
}

func TestExtract_BreakerOpens(t *testing.T) {
	t.Parallel()

	fake := &fakeLLM{status: http.StatusInternalServerError}
	c := newTestClient(t, fake, func(cfg *Config) {
		cfg.BreakerFailures = 2
		cfg.BreakerTimeout = time.Hour
	})

	for i := 0; i < 2; i++ {
		if _, err := c.Extract(context.Background(), "hi", profile.Profile{}, "en"); err == nil {
			t.Fatal("expected failure")
		}
	}
	if c.breaker.state() != gobreaker.StateOpen {
		t.Fatalf("breaker state = %v, want open", c.breaker.state())
	}

	_, err := c.Extract(context.Background(), "hi", profile.Profile{}, "en")
	if !errors.Is(err, ErrUnavailable) || !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want open-circuit rejection", err)
	}
	if n := fake.calls.Load(); n != 2 {
		t.Errorf("server saw %d calls, want 2", n)
	}
}

func TestExtract_RateLimiterHonoursContext(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, &fakeLLM{reply: "{}"}, func(cfg *Config) {
		cfg.RequestsPerSecond = 0.001
		cfg.Burst = 1
	})

	if _, err := c.Extract(context.Background(), "hi", profile.Profile{}, "en"); err != nil {
		t.Fatalf("first call error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Extract(ctx, "hi", profile.Profile{}, "en")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable from limiter", err)
	}
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reply string
		want  string
	}{
		{"tr", "tr"},
		{" EN.\n", "en"},
		{"```\nde\n```", "de"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, &fakeLLM{reply: tt.reply}, nil)
			got, err := c.DetectLanguage(context.Background(), "merhaba")
			if err != nil {
				t.Fatalf("DetectLanguage() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `  {"a": 1} `, `{"a": 1}`},
		{"json tag", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no tag", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"single line", "```{\"a\": 1}```", `{"a": 1}`},
		{"inner backticks kept", "say ```hi```", "say ```hi```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripCodeFences(tt.input); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseExtraction_BudgetFields(t *testing.T) {
	t.Parallel()

	got, err := ParseExtraction(`{"min_budget": 100, "max_budget": null, "budget_hint": "luxury"}`)
	if err != nil {
		t.Fatalf("ParseExtraction() error: %v", err)
	}
	if got.Update.MinBudget == nil || *got.Update.MinBudget != 100 || got.Update.MaxBudget != nil {
		t.Errorf("budgets = %v, %v", got.Update.MinBudget, got.Update.MaxBudget)
	}
	if got.Hint != budget.HintLuxury {
		t.Errorf("hint = %q", got.Hint)
	}

	got, err = ParseExtraction(`{"budget_hint": 7}`)
	if err != nil || got.Hint != budget.HintNone || !got.Update.IsEmpty() {
		t.Errorf("non-string hint: %+v, %v", got, err)
	}
}
