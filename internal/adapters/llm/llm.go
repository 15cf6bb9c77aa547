// Package llm talks to the text generation service that writes verdicts
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"juryduty/internal/platform/config"
)

// Completer turns a system persona and a task prompt into one text blob
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	Name() string
}

// Provider names
const (
	ProviderOpenAI = "openai"
	ProviderStatic = "static"
)

// ErrUnknownProvider is returned for a provider name that is not registered
var ErrUnknownProvider = errors.New("llm: unknown provider")

// Options configures every provider, fields a provider does not use are ignored
type Options struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
	RetryBase   time.Duration
}

// OptionsFromEnv reads SERVICE_LLM_*
func OptionsFromEnv() Options {
	c := config.New().Prefix("SERVICE_LLM_")
	return Options{
		Provider:    c.MayEnum("PROVIDER", ProviderOpenAI, ProviderOpenAI, ProviderStatic),
		BaseURL:     c.MayString("BASE_URL", defaultBaseURL),
		APIKey:      c.MayString("API_KEY", ""),
		Model:       c.MayString("MODEL", defaultModel),
		Temperature: c.MayFloat64("TEMPERATURE", defaultTemperature),
		MaxTokens:   c.MayInt("MAX_TOKENS", defaultMaxTokens),
		Timeout:     c.MayDuration("TIMEOUT", defaultTimeout),
		MaxRetries:  c.MayInt("MAX_RETRIES", defaultMaxRetries),
		RetryBase:   c.MayDuration("RETRY_BASE", defaultRetryBase),
	}
}

// New builds the provider named in o
func New(o Options) (Completer, error) {
	switch o.Provider {
	case ProviderOpenAI, "":
		if o.APIKey == "" {
			return nil, fmt.Errorf("llm: %s provider needs SERVICE_LLM_API_KEY", ProviderOpenAI)
		}
		return NewOpenAI(o), nil
	case ProviderStatic:
		return Static{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, o.Provider)
}
