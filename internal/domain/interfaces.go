package domain

import "context"

// Provider represents any LLM provider.
type Provider interface {
	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider identifier.
	Name() string
}

// ProviderRegistry manages available providers.
type ProviderRegistry interface {
	// Register adds a provider to the registry.
	Register(ctx context.Context, provider Provider) error

	// Get retrieves a provider by name.
	Get(ctx context.Context, providerName string) (Provider, error)

	// List returns all available providers.
	List(ctx context.Context) ([]string, error)
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

// Router determines which provider and model serve a request.
type Router interface {
	// Route selects a provider based on endpoint and mode.
	Route(ctx context.Context, req *RouteRequest) (*Route, error)
}

// OCREngine extracts text from raster images.
type OCREngine interface {
	// Recognize runs OCR over encoded image bytes.
	Recognize(ctx context.Context, image []byte) (*OCRResult, error)
}

// RouteRequest contains criteria for provider selection.
type RouteRequest struct {
	Endpoint Endpoint
	// Mode is the caller's explicit choice; empty selects the configured default.
	Mode Mode
}

// Route is the resolved upstream for a request.
type Route struct {
	Mode     Mode
	Provider string
	Model    string
}
