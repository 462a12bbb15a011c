package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/rishabhsai/RishBOT/internal/config"
	"github.com/rishabhsai/RishBOT/internal/domain"
	eventsredis "github.com/rishabhsai/RishBOT/internal/events/redis"
	"github.com/rishabhsai/RishBOT/internal/http"
	"github.com/rishabhsai/RishBOT/internal/http/middleware"
	"github.com/rishabhsai/RishBOT/internal/observability"
	"github.com/rishabhsai/RishBOT/internal/ocr"
	"github.com/rishabhsai/RishBOT/internal/provider/echo"
	"github.com/rishabhsai/RishBOT/internal/provider/gemini"
	"github.com/rishabhsai/RishBOT/internal/provider/ollama"
	"github.com/rishabhsai/RishBOT/internal/provider/openai"
	"github.com/rishabhsai/RishBOT/internal/provider/registry"
	"github.com/rishabhsai/RishBOT/internal/routing"
)

const shutdownTimeout = 15 * time.Second

func main() {
	container := buildContainer()

	err := container.Invoke(func(logger *zap.Logger, server *http.Server, events domain.EventPublisher) error {
		defer func() { _ = logger.Sync() }()

		// Flush queued relay events once the server has drained.
		if closer, ok := events.(io.Closer); ok {
			defer func() { _ = closer.Close() }()
		}

		return run(server)
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run serves until SIGINT/SIGTERM, then drains in-flight requests.
func run(server *http.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Provider Registry, populated with every configured provider
	if err := container.Provide(newProviderRegistry); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Pricing
	if err := container.Provide(newPricingRegistry); err != nil {
		log.Fatalf("Failed to provide pricing registry: %v", err)
	}
	if err := container.Provide(func(pricing domain.PricingRegistry) domain.CostCalculator {
		return domain.NewStandardCostCalculator(pricing)
	}); err != nil {
		log.Fatalf("Failed to provide cost calculator: %v", err)
	}

	// Routing
	if err := container.Provide(func(reg domain.ProviderRegistry, cfg *routing.Config) (domain.Router, error) {
		return routing.NewRouter(reg, cfg)
	}); err != nil {
		log.Fatalf("Failed to provide router: %v", err)
	}

	// OCR
	if err := container.Provide(func(cfg *ocr.Config) domain.OCREngine {
		return ocr.NewEngine(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide OCR engine: %v", err)
	}

	// Events
	if err := container.Provide(newEventPublisher); err != nil {
		log.Fatalf("Failed to provide event publisher: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewRelayService); err != nil {
		log.Fatalf("Failed to provide relay service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// providerConfigs groups the per-provider configs for registry construction.
type providerConfigs struct {
	dig.In

	Ollama *ollama.Config
	OpenAI *openai.Config
	Gemini *gemini.Config
	Echo   *echo.Config
}

// newProviderRegistry registers the local daemon plus every cloud provider
// that has credentials. Unconfigured providers are skipped.
func newProviderRegistry(cfgs providerConfigs) (domain.ProviderRegistry, error) {
	ctx := context.Background()
	logger := observability.FromContext(ctx)
	reg := registry.NewRegistry()

	ollamaProvider, err := ollama.NewProvider(*cfgs.Ollama, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama provider: %w", err)
	}
	if err := reg.Register(ctx, ollamaProvider); err != nil {
		return nil, fmt.Errorf("failed to register Ollama provider: %w", err)
	}

	if cfgs.OpenAI.APIKey != "" {
		openaiProvider, err := openai.NewProvider(*cfgs.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI provider: %w", err)
		}
		if err := reg.Register(ctx, openaiProvider); err != nil {
			return nil, fmt.Errorf("failed to register OpenAI provider: %w", err)
		}
	}

	if cfgs.Gemini.APIKey != "" {
		geminiProvider, err := gemini.NewProvider(ctx, *cfgs.Gemini)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini provider: %w", err)
		}
		if err := reg.Register(ctx, geminiProvider); err != nil {
			return nil, fmt.Errorf("failed to register Gemini provider: %w", err)
		}
	}

	if cfgs.Echo.Enabled {
		if err := reg.Register(ctx, echo.NewProvider()); err != nil {
			return nil, fmt.Errorf("failed to register echo provider: %w", err)
		}
	}

	names, _ := reg.List(ctx)
	logger.Info("providers registered", observability.Any("providers", names))

	return reg, nil
}

func newPricingRegistry() (domain.PricingRegistry, error) {
	ctx := context.Background()
	pricing := domain.NewInMemoryPricingRegistry()

	if err := openai.RegisterPricing(ctx, pricing); err != nil {
		return nil, fmt.Errorf("failed to register OpenAI pricing: %w", err)
	}
	if err := gemini.RegisterPricing(ctx, pricing); err != nil {
		return nil, fmt.Errorf("failed to register Gemini pricing: %w", err)
	}

	return pricing, nil
}

// newEventPublisher streams relay events to Redis when an address is
// configured and falls back to the log-only event bus otherwise.
func newEventPublisher(cfg *eventsredis.Config) (domain.EventPublisher, error) {
	if cfg.Addr == "" {
		return observability.NewEventBus(), nil
	}

	publisher, err := eventsredis.NewStreamPublisher(eventsredis.NewClient(*cfg), *cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis event publisher: %w", err)
	}

	observability.FromContext(context.Background()).Info("relay events streaming to Redis",
		observability.String("addr", cfg.Addr),
		observability.String("stream", cfg.Stream),
	)

	return publisher, nil
}
