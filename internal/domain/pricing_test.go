package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rishabhsai/RishBOT/internal/domain"
)

func TestInMemoryPricingRegistry(t *testing.T) {
	ctx := context.Background()
	registry := domain.NewInMemoryPricingRegistry()

	cfg := domain.PricingConfig{InputCostPer1K: 0.0025, OutputCostPer1K: 0.01}
	require.NoError(t, registry.RegisterPricing(ctx, "openai", "gpt-4o", cfg))

	got, err := registry.GetPricing(ctx, "openai", "gpt-4o")
	require.NoError(t, err)
	require.Equal(t, cfg, got)

	_, err = registry.GetPricing(ctx, "gemini", "gpt-4o")
	require.Error(t, err)
}

func TestStandardCostCalculator(t *testing.T) {
	ctx := context.Background()
	registry := domain.NewInMemoryPricingRegistry()
	require.NoError(t, registry.RegisterPricing(ctx, "openai", "gpt-4o", domain.PricingConfig{
		InputCostPer1K:  0.0025,
		OutputCostPer1K: 0.01,
	}))

	calculator := domain.NewStandardCostCalculator(registry)

	t.Run("priced model", func(t *testing.T) {
		cost, err := calculator.Calculate(ctx, "openai", "gpt-4o", domain.Usage{
			PromptTokens:     2000,
			CompletionTokens: 1000,
		})

		require.NoError(t, err)
		require.InDelta(t, 0.015, cost, 1e-9)
	})

	t.Run("unpriced local model is free", func(t *testing.T) {
		cost, err := calculator.Calculate(ctx, "ollama", "gemma:2b", domain.Usage{PromptTokens: 5000})

		require.NoError(t, err)
		require.Zero(t, cost)
	})

	t.Run("empty model", func(t *testing.T) {
		_, err := calculator.Calculate(ctx, "openai", "", domain.Usage{})

		require.Error(t, err)
	})
}
