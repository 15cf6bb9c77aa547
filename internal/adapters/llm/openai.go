package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	perr "juryduty/internal/platform/errors"
	"juryduty/internal/platform/logger"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4"
	defaultTemperature = 0.8
	defaultMaxTokens   = 1000
	defaultTimeout     = 90 * time.Second
	defaultMaxRetries  = 2
	defaultRetryBase   = time.Second
	maxBackoff         = 20 * time.Second
	maxRetryAfter      = 60 * time.Second
)

// OpenAI calls any OpenAI compatible chat completions endpoint
type OpenAI struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	sleep func(context.Context, time.Duration) error
}

// NewOpenAI fills defaults into o and returns the client
func NewOpenAI(o Options) *OpenAI {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &OpenAI{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("llm"),
		sleep: sleepCtx,
	}
}

// Name implements Completer
func (c *OpenAI) Name() string { return ProviderOpenAI + ":" + c.opts.Model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion, retrying rate limits and 5xx
func (c *OpenAI) Complete(ctx context.Context, system, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	})
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "llm encode request")
	}

	for attempt := 0; ; attempt++ {
		text, retry, wait, err := c.once(ctx, body, attempt)
		if err == nil {
			return text, nil
		}
		if !retry || attempt >= c.opts.MaxRetries {
			return "", err
		}
		back := wait
		if back <= 0 {
			back = c.backoff(attempt)
		}
		c.log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", back).Msg("llm call failed, retrying")
		if serr := c.sleep(ctx, back); serr != nil {
			return "", perr.Wrap(serr, perr.ErrorCodeUnavailable, "llm call abandoned")
		}
	}
}

// once performs a single attempt; retry reports whether another attempt may help
// and wait is the server requested delay, zero when it gave none
func (c *OpenAI) once(ctx context.Context, body []byte, attempt int) (text string, retry bool, wait time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, 0, perr.Wrap(err, perr.ErrorCodeUnknown, "llm new request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, 0, perr.Wrap(err, perr.ErrorCodeUpstream, "llm call cancelled")
		}
		return "", true, 0, perr.Wrap(err, perr.ErrorCodeUpstream, "llm transport error")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Int("status", resp.StatusCode).
		Int("attempt", attempt).
		Dur("latency", time.Since(start)).
		Str("retry_after", resp.Header.Get("Retry-After")).
		Str("model", c.opts.Model).
		Msg("llm response")

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", true, retryAfter(resp.Header, time.Now()), perr.Newf(perr.ErrorCodeTooManyRequests, "llm rate limited")
	case resp.StatusCode == http.StatusServiceUnavailable:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", true, retryAfter(resp.Header, time.Now()), perr.Newf(perr.ErrorCodeUpstream, "llm server error %d", resp.StatusCode)
	case resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", true, 0, perr.Newf(perr.ErrorCodeUpstream, "llm server error %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", false, 0, perr.Newf(perr.ErrorCodeUpstream, "llm unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(tail)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", false, 0, perr.Wrap(err, perr.ErrorCodeUpstream, "llm decode response")
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", false, 0, perr.Newf(perr.ErrorCodeUpstream, "llm returned no text")
	}
	return out.Choices[0].Message.Content, false, 0, nil
}

func (c *OpenAI) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

// retryAfter reads Retry-After as delay seconds or an HTTP date, capped at maxRetryAfter
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	var d time.Duration
	if sec, err := strconv.Atoi(v); err == nil {
		if sec <= 0 {
			return 0
		}
		if sec > int(maxRetryAfter/time.Second) {
			return maxRetryAfter
		}
		d = time.Duration(sec) * time.Second
	} else if at, err := http.ParseTime(v); err == nil {
		d = at.Sub(now)
	}
	if d <= 0 {
		return 0
	}
	return min(d, maxRetryAfter)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
