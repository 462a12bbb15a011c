// Package echo provides an offline provider that echoes back input messages.
// It makes no external calls, which makes it useful for development without
// a model daemon and for deterministic end-to-end tests.
package echo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rishabhsai/RishBOT/internal/domain"
	"github.com/rishabhsai/RishBOT/internal/observability"
)

const providerName = "echo"

// Config toggles registration of the echo provider.
type Config struct {
	Enabled bool `env:"ECHO_ENABLED" envDefault:"false"`
}

// Provider implements the domain.Provider interface for echo testing.
type Provider struct {
	name string
}

// NewProvider creates a new echo provider.
func NewProvider() *Provider {
	return &Provider{
		name: providerName,
	}
}

// Complete returns the request messages rendered as text.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	echoContent := buildEchoContent(req.Messages)

	// Simple word-based token counting
	promptTokens := len(strings.Fields(echoContent))

	observability.FromContext(ctx).Debug("echo completed",
		observability.Int("prompt_tokens", promptTokens),
	)

	return &domain.CompletionResponse{
		ID:       fmt.Sprintf("echo-%d", time.Now().UnixNano()),
		Model:    req.Model,
		Provider: p.name,
		Content:  echoContent,
		Usage: domain.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: promptTokens,
			TotalTokens:      promptTokens * 2,
		},
		FinishTime: time.Now(),
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// buildEchoContent renders one "[role]: content" line per message, noting attached images.
func buildEchoContent(messages []domain.Message) string {
	var builder strings.Builder
	for _, msg := range messages {
		fmt.Fprintf(&builder, "[%s]: %s\n", msg.Role, msg.Content)
		for _, img := range msg.Images {
			fmt.Fprintf(&builder, "[%s]: <%s, %d bytes>\n", msg.Role, img.MediaType, len(img.Data))
		}
	}
	return builder.String()
}
