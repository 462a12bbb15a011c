// Package gemini provides an adapter for Google's Gemini API using the genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/rishabhsai/RishBOT/internal/domain"
	"github.com/rishabhsai/RishBOT/internal/observability"
)

const providerName = "gemini"

// Provider implements the domain.Provider interface for Gemini.
type Provider struct {
	client *genai.Client
	name   string
}

// NewProvider creates a new Gemini provider.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Gemini API key is required")
	}

	//nolint:exhaustruct // genai config has many optional fields
	clientConfig := &genai.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: time.Duration(config.Timeout) * time.Second},
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Provider{
		client: client,
		name:   providerName,
	}, nil
}

// Complete sends a completion request and returns the full response.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling Gemini API")

	contents, config := toSDKContents(req.Messages)

	resp, err := p.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("Gemini API call failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("Gemini response has no candidates")
	}

	return p.toDomainResponse(req, resp), nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// toSDKContents folds system messages into the system instruction and maps
// assistant turns to the model role.
func toSDKContents(messages []domain.Message) ([]*genai.Content, *genai.GenerateContentConfig) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))

	for _, msg := range messages {
		if msg.Role == domain.RoleSystem {
			system = append(system, msg.Content)
			continue
		}

		role := genai.Role(genai.RoleUser)
		if msg.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}

		parts := make([]*genai.Part, 0, len(msg.Images)+1)
		parts = append(parts, genai.NewPartFromText(msg.Content))
		for _, img := range msg.Images {
			parts = append(parts, genai.NewPartFromBytes(img.Data, img.MediaType))
		}

		contents = append(contents, genai.NewContentFromParts(parts, role))
	}

	if len(system) == 0 {
		return contents, nil
	}

	//nolint:exhaustruct // only the system instruction is set
	return contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser),
	}
}

func (p *Provider) toDomainResponse(req *domain.CompletionRequest, resp *genai.GenerateContentResponse) *domain.CompletionResponse {
	model := resp.ModelVersion
	if model == "" {
		model = req.Model
	}

	var usage domain.Usage
	if resp.UsageMetadata != nil {
		usage = domain.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	return &domain.CompletionResponse{
		ID:         resp.ResponseID,
		Model:      model,
		Provider:   p.name,
		Content:    resp.Text(),
		Usage:      usage,
		FinishTime: time.Now(),
	}
}
