package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

const tokensToPerK = 1000.0

// PricingConfig contains model pricing information.
type PricingConfig struct {
	InputCostPer1K  float64 // USD per 1K input tokens
	OutputCostPer1K float64 // USD per 1K output tokens
}

// CostCalculator estimates the cost of a completion. Estimates only feed relay events.
type CostCalculator interface {
	// Calculate returns the total cost for a provider/model pair and usage.
	Calculate(ctx context.Context, provider, model string, usage Usage) (float64, error)
}

// PricingRegistry maintains pricing information per provider and model.
type PricingRegistry interface {
	// GetPricing returns pricing config for a provider's model.
	GetPricing(ctx context.Context, provider, model string) (PricingConfig, error)

	// RegisterPricing adds pricing for a provider's model.
	RegisterPricing(ctx context.Context, provider, model string, config PricingConfig) error
}

// InMemoryPricingRegistry stores pricing configs in memory.
type InMemoryPricingRegistry struct {
	mu      sync.RWMutex
	pricing map[string]PricingConfig
}

// NewInMemoryPricingRegistry creates a new in-memory pricing registry.
func NewInMemoryPricingRegistry() *InMemoryPricingRegistry {
	return &InMemoryPricingRegistry{
		mu:      sync.RWMutex{},
		pricing: make(map[string]PricingConfig),
	}
}

// GetPricing retrieves pricing for a provider's model.
func (r *InMemoryPricingRegistry) GetPricing(_ context.Context, provider, model string) (PricingConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	config, exists := r.pricing[pricingKey(provider, model)]
	if !exists {
		return PricingConfig{}, fmt.Errorf("pricing not found for %s/%s", provider, model)
	}

	return config, nil
}

// RegisterPricing adds pricing for a provider's model.
func (r *InMemoryPricingRegistry) RegisterPricing(
	_ context.Context,
	provider, model string,
	config PricingConfig,
) error {
	if provider == "" || model == "" {
		return errors.New("provider and model cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pricing[pricingKey(provider, model)] = config
	return nil
}

func pricingKey(provider, model string) string {
	return provider + "/" + model
}

// StandardCostCalculator implements token-based cost calculation.
type StandardCostCalculator struct {
	pricingRegistry PricingRegistry
}

// NewStandardCostCalculator creates a new cost calculator.
func NewStandardCostCalculator(registry PricingRegistry) *StandardCostCalculator {
	return &StandardCostCalculator{
		pricingRegistry: registry,
	}
}

// Calculate computes the total cost based on token usage and model pricing.
// Unpriced models (local daemons, echo) cost nothing.
func (c *StandardCostCalculator) Calculate(
	ctx context.Context,
	provider, model string,
	usage Usage,
) (float64, error) {
	if model == "" {
		return 0, errors.New("model cannot be empty")
	}

	pricing, err := c.pricingRegistry.GetPricing(ctx, provider, model)
	if err != nil {
		//nolint:nilerr // Unknown pricing must not fail the request
		return 0, nil
	}

	inputCost := float64(usage.PromptTokens) / tokensToPerK * pricing.InputCostPer1K
	outputCost := float64(usage.CompletionTokens) / tokensToPerK * pricing.OutputCostPer1K

	return inputCost + outputCost, nil
}
