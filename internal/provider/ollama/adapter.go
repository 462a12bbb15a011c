// Package ollama provides an adapter for a locally hosted Ollama daemon.
// It implements the domain.Provider interface over the /api/chat endpoint.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rishabhsai/RishBOT/internal/domain"
	"github.com/rishabhsai/RishBOT/internal/observability"
)

const providerName = "ollama"

// Provider implements the domain.Provider interface for Ollama.
type Provider struct {
	client *Client
	name   string
}

// NewProvider creates a new Ollama provider.
func NewProvider(config Config, httpClient *http.Client) (*Provider, error) {
	if config.BaseURL == "" {
		return nil, errors.New("Ollama base URL is required")
	}

	return &Provider{
		client: NewClient(config, httpClient),
		name:   providerName,
	}, nil
}

// Complete sends a completion request and returns the full response.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling Ollama API")

	resp, err := p.client.Chat(ctx, toChatRequest(req))
	if err != nil {
		return nil, fmt.Errorf("Ollama API call failed: %w", err)
	}

	logger.Debug("Ollama API call succeeded",
		observability.Int("prompt_tokens", resp.PromptEvalCount),
		observability.Int("completion_tokens", resp.EvalCount),
	)

	return p.toDomainResponse(req, resp), nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

func toChatRequest(req *domain.CompletionRequest) chatRequest {
	messages := make([]chatMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = chatMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
		for _, img := range msg.Images {
			messages[i].Images = append(messages[i].Images, img.Base64())
		}
	}

	return chatRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   false,
	}
}

func (p *Provider) toDomainResponse(req *domain.CompletionRequest, resp *chatResponse) *domain.CompletionResponse {
	model := resp.Model
	if model == "" {
		model = req.Model
	}

	finished := resp.CreatedAt
	if finished.IsZero() {
		finished = time.Now()
	}

	return &domain.CompletionResponse{
		ID:       fmt.Sprintf("ollama-%d", finished.UnixNano()),
		Model:    model,
		Provider: p.name,
		Content:  resp.Message.Content,
		Usage: domain.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
		FinishTime: finished,
	}
}
