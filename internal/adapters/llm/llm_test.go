package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	perr "juryduty/internal/platform/errors"
	"juryduty/internal/platform/testkit"
)

func noSleep(context.Context, time.Duration) error { return nil }

func TestOpenAICompleteSendsChatRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" || r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("unexpected request %s %q", r.URL.Path, r.Header.Get("Authorization"))
		}
		var in chatRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if in.Model != "gpt-4" || in.MaxTokens != 1000 || in.Temperature != 0.8 {
			t.Errorf("defaults not applied: %+v", in)
		}
		if len(in.Messages) != 2 || in.Messages[0].Role != "system" || in.Messages[1].Content != "judge this" {
			t.Errorf("messages = %+v", in.Messages)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"I'm siding with Ana.\nWINNER: person_a"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(Options{BaseURL: srv.URL + "/v1/", APIKey: "sk-test", Temperature: 0.8})
	out, err := c.Complete(context.Background(), "persona", "judge this")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	testkit.MustContain(t, out, "WINNER: person_a")
}

func TestOpenAIRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"fine"}}]}`))
		}
	}))
	defer srv.Close()

	c := NewOpenAI(Options{BaseURL: srv.URL, APIKey: "k", MaxRetries: 2})
	c.sleep = noSleep
	out, err := c.Complete(context.Background(), "s", "p")
	if err != nil || out != "fine" {
		t.Fatalf("got %q %v", out, err)
	}
	if calls.Load() != 3 {
		t.Fatalf("calls = %d", calls.Load())
	}
}

func TestOpenAIWaitsForRetryAfter(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "7")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"fine"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(Options{BaseURL: srv.URL, APIKey: "k", MaxRetries: 2, RetryBase: time.Millisecond})
	var waits []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	out, err := c.Complete(context.Background(), "s", "p")
	if err != nil || out != "fine" {
		t.Fatalf("got %q %v", out, err)
	}
	if len(waits) != 1 || waits[0] != 7*time.Second {
		t.Fatalf("waits = %v, want [7s]", waits)
	}
}

func TestOpenAIFallsBackToBackoffWithoutRetryAfter(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "soon")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"fine"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(Options{BaseURL: srv.URL, APIKey: "k", MaxRetries: 2, RetryBase: 3 * time.Millisecond})
	var waits []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	if _, err := c.Complete(context.Background(), "s", "p"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(waits) != 1 || waits[0] != 3*time.Millisecond {
		t.Fatalf("waits = %v, want [3ms]", waits)
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"0", 0},
		{"-4", 0},
		{"garbage", 0},
		{"12", 12 * time.Second},
		{"86400", maxRetryAfter},
		{now.Add(30 * time.Second).Format(http.TimeFormat), 30 * time.Second},
		{now.Add(-time.Minute).Format(http.TimeFormat), 0},
		{now.Add(time.Hour).Format(http.TimeFormat), maxRetryAfter},
	}
	for _, tc := range cases {
		h := http.Header{}
		if tc.in != "" {
			h.Set("Retry-After", tc.in)
		}
		if got := retryAfter(h, now); got != tc.want {
			t.Fatalf("retryAfter(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestOpenAIGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewOpenAI(Options{BaseURL: srv.URL, APIKey: "k", MaxRetries: 1})
	c.sleep = noSleep
	_, err := c.Complete(context.Background(), "s", "p")
	if !perr.IsCode(err, perr.ErrorCodeUpstream) || calls.Load() != 2 {
		t.Fatalf("err=%v calls=%d", err, calls.Load())
	}
}

func TestOpenAINoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	c := NewOpenAI(Options{BaseURL: srv.URL, APIKey: "k", MaxRetries: 3})
	c.sleep = noSleep
	_, err := c.Complete(context.Background(), "s", "p")
	if err == nil || calls.Load() != 1 {
		t.Fatalf("err=%v calls=%d", err, calls.Load())
	}
	testkit.MustContain(t, err.Error(), "bad key")
}

func TestOpenAIEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewOpenAI(Options{BaseURL: srv.URL, APIKey: "k"}).Complete(context.Background(), "s", "p")
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("err = %v", err)
	}
}

func TestNewProviders(t *testing.T) {
	if _, err := New(Options{Provider: ProviderOpenAI}); err == nil {
		t.Fatalf("openai without a key should fail")
	}
	c, err := New(Options{Provider: ProviderStatic})
	if err != nil || c.Name() != ProviderStatic {
		t.Fatalf("static = %v %v", c, err)
	}
	if _, err := New(Options{Provider: "carrier-pigeon"}); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("err = %v", err)
	}
}

func TestStaticIsDeterministic(t *testing.T) {
	a, _ := Static{}.Complete(context.Background(), "", "prompt one")
	b, _ := Static{}.Complete(context.Background(), "", "prompt one")
	if a != b {
		t.Fatalf("static output changed between calls")
	}
	testkit.MustContain(t, a, "WINNER:")

	solo, _ := Static{}.Complete(context.Background(), "", "You MUST decide YTA or NTA.")
	testkit.MustNotContain(t, solo, "TEASER_B")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Static{}).Complete(ctx, "", "x"); err == nil {
		t.Fatalf("cancelled context should fail")
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("SERVICE_LLM_PROVIDER", "STATIC")
	t.Setenv("SERVICE_LLM_MAX_TOKENS", "700")
	o := OptionsFromEnv()
	if o.Provider != ProviderStatic || o.MaxTokens != 700 || o.Model != defaultModel {
		t.Fatalf("options = %+v", o)
	}
}
