// Package textgen wraps optional external text-generation services. Callers
// treat every error as "no text" and fall back to local content.
package textgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"astrobot/internal/config"
)

// ErrSourceDisabled is returned by the Disabled source.
var ErrSourceDisabled = errors.New("text source disabled")

// ErrEmptyReply is returned when a provider answers without text.
var ErrEmptyReply = errors.New("text source returned no text")

const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Prompt is a single-turn request.
type Prompt struct {
	System    string
	User      string
	MaxTokens int
}

// Source generates text for a prompt.
type Source interface {
	Generate(ctx context.Context, p Prompt) (string, error)
	Name() string
}

// Disabled never produces text.
type Disabled struct{}

func (Disabled) Generate(context.Context, Prompt) (string, error) {
	return "", ErrSourceDisabled
}

func (Disabled) Name() string { return ProviderNone }

// New builds the source selected by cfg.Provider.
func New(ctx context.Context, cfg config.TextGenConfig) (Source, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderNone:
		return Disabled{}, nil
	case ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL, timeout)
	case ProviderGemini:
		return NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL, timeout)
	default:
		return nil, fmt.Errorf("unknown text provider %q", cfg.Provider)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
