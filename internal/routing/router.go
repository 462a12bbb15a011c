package routing

import (
	"context"
	"errors"
	"fmt"

	"github.com/rishabhsai/RishBOT/internal/domain"
)

// ModeRouter maps an endpoint and an explicit local/cloud mode to a provider and model.
type ModeRouter struct {
	registry   domain.ProviderRegistry
	cfg        Config
	textMode   domain.Mode
	screenMode domain.Mode
}

// NewRouter creates a new router. Invalid default modes are rejected.
func NewRouter(registry domain.ProviderRegistry, cfg *Config) (*ModeRouter, error) {
	if cfg == nil {
		return nil, errors.New("routing config cannot be nil")
	}

	textMode, err := parseDefaultMode(cfg.TextMode)
	if err != nil {
		return nil, fmt.Errorf("invalid RELAY_MODE: %w", err)
	}

	screenMode, err := parseDefaultMode(cfg.ScreenMode)
	if err != nil {
		return nil, fmt.Errorf("invalid SCREEN_ANALYZE_MODE: %w", err)
	}

	return &ModeRouter{
		registry:   registry,
		cfg:        *cfg,
		textMode:   textMode,
		screenMode: screenMode,
	}, nil
}

// Route selects the provider and model for a request.
func (r *ModeRouter) Route(ctx context.Context, req *domain.RouteRequest) (*domain.Route, error) {
	if req == nil {
		return nil, errors.New("route request cannot be nil")
	}

	mode, err := r.resolveMode(req)
	if err != nil {
		return nil, err
	}

	// Local screen analysis runs OCR rather than a completion model.
	if req.Endpoint == domain.EndpointAnalyzeScreen && mode == domain.ModeLocal {
		return &domain.Route{Mode: mode, Provider: domain.ProviderOCR}, nil
	}

	route := &domain.Route{Mode: mode, Provider: r.cfg.CloudProvider, Model: r.cfg.CloudModel}
	if mode == domain.ModeLocal {
		route.Provider = r.cfg.LocalProvider
		route.Model = r.cfg.LocalModel
	}

	if _, err := r.registry.Get(ctx, route.Provider); err != nil {
		return nil, fmt.Errorf("no %s provider available for %s: %w", mode, req.Endpoint, err)
	}

	return route, nil
}

func (r *ModeRouter) resolveMode(req *domain.RouteRequest) (domain.Mode, error) {
	switch req.Endpoint {
	case domain.EndpointScreenChat:
		// Screen chat has no local variant.
		return domain.ModeCloud, nil
	case domain.EndpointAnalyzeScreen:
		if req.Mode != "" {
			return req.Mode, nil
		}
		return r.screenMode, nil
	case domain.EndpointSolve, domain.EndpointWrite, domain.EndpointModify,
		domain.EndpointExpandStep, domain.EndpointChat:
		if req.Mode != "" {
			return req.Mode, nil
		}
		return r.textMode, nil
	default:
		return "", fmt.Errorf("unknown endpoint %q", req.Endpoint)
	}
}

func parseDefaultMode(s string) (domain.Mode, error) {
	mode, err := domain.ParseMode(s)
	if err != nil {
		return "", err
	}
	if mode == "" {
		return "", errors.New("mode cannot be empty")
	}
	return mode, nil
}
