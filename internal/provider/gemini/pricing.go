package gemini

import (
	"context"
	"fmt"

	"github.com/rishabhsai/RishBOT/internal/domain"
)

// RegisterPricing registers Gemini model pricing with the registry.
func RegisterPricing(ctx context.Context, registry domain.PricingRegistry) error {
	models := map[string]domain.PricingConfig{
		"gemini-2.5-flash": {InputCostPer1K: 0.0003, OutputCostPer1K: 0.0025},
		"gemini-2.5-pro":   {InputCostPer1K: 0.00125, OutputCostPer1K: 0.01},
	}

	for model, config := range models {
		if err := registry.RegisterPricing(ctx, providerName, model, config); err != nil {
			return fmt.Errorf("failed to register pricing for model %s: %w", model, err)
		}
	}

	return nil
}
