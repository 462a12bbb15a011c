package registry_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishabhsai/RishBOT/internal/domain"
	"github.com/rishabhsai/RishBOT/internal/provider/registry"
)

// mockProvider is a mock implementation of domain.Provider for testing.
type mockProvider struct {
	name string
}

func (m *mockProvider) Complete(_ context.Context, _ *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	return &domain.CompletionResponse{}, nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should register provider successfully", func(t *testing.T) {
		reg := registry.NewRegistry()
		ctx := context.Background()

		err := reg.Register(ctx, &mockProvider{name: "ollama"})

		require.NoError(t, err)
		names, err := reg.List(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"ollama"}, names)
	})

	t.Run("should return error when provider is nil", func(t *testing.T) {
		reg := registry.NewRegistry()

		err := reg.Register(context.Background(), nil)

		require.Error(t, err)
		require.Contains(t, err.Error(), "provider cannot be nil")
	})

	t.Run("should return error when provider name is empty", func(t *testing.T) {
		reg := registry.NewRegistry()

		err := reg.Register(context.Background(), &mockProvider{name: ""})

		require.Error(t, err)
		require.Contains(t, err.Error(), "provider name cannot be empty")
	})

	t.Run("should return error when provider already registered", func(t *testing.T) {
		reg := registry.NewRegistry()
		ctx := context.Background()
		require.NoError(t, reg.Register(ctx, &mockProvider{name: "openai"}))

		err := reg.Register(ctx, &mockProvider{name: "openai"})

		require.Error(t, err)
		require.Contains(t, err.Error(), "provider openai already registered")
	})
}

func TestRegistry_Get(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewRegistry()
	provider := &mockProvider{name: "ollama"}
	require.NoError(t, reg.Register(ctx, provider))

	t.Run("should get registered provider", func(t *testing.T) {
		got, err := reg.Get(ctx, "ollama")

		require.NoError(t, err)
		require.Same(t, provider, got)
	})

	t.Run("should return ErrProviderNotFound for unknown provider", func(t *testing.T) {
		got, err := reg.Get(ctx, "gemini")

		require.ErrorIs(t, err, registry.ErrProviderNotFound)
		require.Nil(t, got)
	})

	t.Run("should return error for empty name", func(t *testing.T) {
		got, err := reg.Get(ctx, "")

		require.Error(t, err)
		require.Nil(t, got)
	})
}

func TestRegistry_List_Sorted(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewRegistry()
	for _, name := range []string{"openai", "echo", "ollama"} {
		require.NoError(t, reg.Register(ctx, &mockProvider{name: name}))
	}

	names, err := reg.List(ctx)

	require.NoError(t, err)
	require.Equal(t, []string{"echo", "ollama", "openai"}, names)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(ctx, &mockProvider{name: "ollama"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.Get(ctx, "ollama")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
