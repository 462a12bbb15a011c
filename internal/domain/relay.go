package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rishabhsai/RishBOT/internal/imaging"
	"github.com/rishabhsai/RishBOT/internal/observability"
)

// Relay event types.
const (
	EventRelayCompleted = "relay.completed"
	EventRelayFailed    = "relay.failed"
)

// ErrOCRNotConfigured is returned when local screen analysis is requested without an OCR engine.
var ErrOCRNotConfigured = errors.New("ocr engine not configured")

// RelayService turns endpoint requests into prompts and relays them upstream.
// Every successful call issues exactly one upstream request; nothing is retried or cached.
type RelayService struct {
	registry       ProviderRegistry
	router         Router
	ocr            OCREngine
	events         EventPublisher
	costCalculator CostCalculator
}

// NewRelayService creates a new relay service (DI constructor).
func NewRelayService(
	registry ProviderRegistry,
	router Router,
	ocr OCREngine,
	events EventPublisher,
	costCalculator CostCalculator,
) *RelayService {
	return &RelayService{
		registry:       registry,
		router:         router,
		ocr:            ocr,
		events:         events,
		costCalculator: costCalculator,
	}
}

// Solve returns a step-by-step solution.
func (s *RelayService) Solve(ctx context.Context, req *SolveRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.relay(ctx, EndpointSolve, "", userPrompt(SolvePrompt(req)))
}

// Write returns a generated essay.
func (s *RelayService) Write(ctx context.Context, req *WriteRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.relay(ctx, EndpointWrite, "", userPrompt(WritePrompt(req)))
}

// Modify returns the rewritten passage.
func (s *RelayService) Modify(ctx context.Context, req *ModifyRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.relay(ctx, EndpointModify, "", userPrompt(ModifyPrompt(req)))
}

// ExpandStep returns a detailed explanation of a step or an answer to a follow-up.
func (s *RelayService) ExpandStep(ctx context.Context, req *ExpandStepRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.relay(ctx, EndpointExpandStep, "", userPrompt(ExpandStepPrompt(req)))
}

// Chat answers a student's question about a step.
func (s *RelayService) Chat(ctx context.Context, req *ChatRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.relay(ctx, EndpointChat, "", userPrompt(ChatPrompt(req)))
}

// ScreenChat answers a question about extracted screen text.
func (s *RelayService) ScreenChat(ctx context.Context, req *ScreenChatRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.relay(ctx, EndpointScreenChat, "", ScreenChatMessages(req))
}

// AnalyzeScreen extracts text from a screenshot, either with the local OCR
// engine or with a cloud vision model.
func (s *RelayService) AnalyzeScreen(ctx context.Context, req *AnalyzeScreenRequest) (*OCRResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	img, err := req.DecodeImage()
	if err != nil {
		return nil, err
	}

	route, err := s.route(ctx, EndpointAnalyzeScreen, Mode(req.Mode))
	if err != nil {
		return nil, err
	}

	if route.Mode == ModeLocal {
		return s.recognize(ctx, img)
	}

	content, err := s.complete(ctx, EndpointAnalyzeScreen, route, []Message{{
		Role:    RoleUser,
		Content: AnalyzeScreenPrompt,
		Images:  []Image{img},
	}})
	if err != nil {
		return nil, err
	}

	return &OCRResult{Text: content, Confidence: CloudConfidence}, nil
}

func (s *RelayService) relay(ctx context.Context, endpoint Endpoint, mode Mode, messages []Message) (string, error) {
	route, err := s.route(ctx, endpoint, mode)
	if err != nil {
		return "", err
	}
	return s.complete(ctx, endpoint, route, messages)
}

func (s *RelayService) route(ctx context.Context, endpoint Endpoint, mode Mode) (*Route, error) {
	route, err := s.router.Route(ctx, &RouteRequest{Endpoint: endpoint, Mode: mode})
	if err != nil {
		return nil, &UpstreamError{Op: "route", Err: err}
	}
	return route, nil
}

// complete performs the single upstream call for a routed request.
func (s *RelayService) complete(
	ctx context.Context,
	endpoint Endpoint,
	route *Route,
	messages []Message,
) (string, error) {
	ctx = observability.WithProvider(ctx, route.Provider)
	ctx = observability.WithModel(ctx, route.Model)
	logger := observability.FromContext(ctx)

	provider, err := s.registry.Get(ctx, route.Provider)
	if err != nil {
		return "", &UpstreamError{Op: "provider lookup", Err: err}
	}

	logger.Info("relaying request upstream", observability.Int("messages", len(messages)))

	start := time.Now()
	resp, err := provider.Complete(ctx, &CompletionRequest{Model: route.Model, Messages: messages})
	elapsed := time.Since(start)
	if err != nil {
		s.publish(ctx, EventRelayFailed, map[string]interface{}{
			"endpoint":    string(endpoint),
			"provider":    route.Provider,
			"model":       route.Model,
			"error":       err.Error(),
			"duration_ms": elapsed.Milliseconds(),
		})
		return "", &UpstreamError{Op: fmt.Sprintf("%s completion", route.Provider), Err: err}
	}

	if s.costCalculator != nil {
		resp.Usage.Cost = s.cost(ctx, route, resp)
	}

	logger.Info("upstream completion succeeded",
		observability.Int("tokens", resp.Usage.TotalTokens),
		observability.Float64("cost", resp.Usage.Cost),
		observability.Duration("elapsed", elapsed),
	)

	s.publish(ctx, EventRelayCompleted, map[string]interface{}{
		"endpoint":    string(endpoint),
		"provider":    route.Provider,
		"model":       resp.Model,
		"tokens":      resp.Usage.TotalTokens,
		"cost":        resp.Usage.Cost,
		"duration_ms": elapsed.Milliseconds(),
	})

	return resp.Content, nil
}

// cost prices the response by the model it reports, then by the routed model.
// Cloud APIs answer with dated snapshot IDs that have no pricing entry.
func (s *RelayService) cost(ctx context.Context, route *Route, resp *CompletionResponse) float64 {
	if resp.Model != "" {
		cost, err := s.costCalculator.Calculate(ctx, route.Provider, resp.Model, resp.Usage)
		if err == nil && cost > 0 {
			return cost
		}
	}
	cost, _ := s.costCalculator.Calculate(ctx, route.Provider, route.Model, resp.Usage)
	return cost
}

func (s *RelayService) recognize(ctx context.Context, img Image) (*OCRResult, error) {
	ctx = observability.WithProvider(ctx, ProviderOCR)

	if s.ocr == nil {
		return nil, &UpstreamError{Op: "ocr", Err: ErrOCRNotConfigured}
	}

	start := time.Now()
	result, err := s.ocr.Recognize(ctx, img.Data)
	elapsed := time.Since(start)
	if errors.Is(err, imaging.ErrTooLarge) {
		return nil, NewValidationError("Image is too large")
	}
	if err != nil {
		s.publish(ctx, EventRelayFailed, map[string]interface{}{
			"endpoint":    string(EndpointAnalyzeScreen),
			"provider":    ProviderOCR,
			"error":       err.Error(),
			"duration_ms": elapsed.Milliseconds(),
		})
		return nil, &UpstreamError{Op: "ocr", Err: err}
	}

	s.publish(ctx, EventRelayCompleted, map[string]interface{}{
		"endpoint":    string(EndpointAnalyzeScreen),
		"provider":    ProviderOCR,
		"confidence":  result.Confidence,
		"duration_ms": elapsed.Milliseconds(),
	})

	return result, nil
}

func (s *RelayService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, eventType, data)
}

func userPrompt(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}
