package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistrySessionCreatesOnFirstUse(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	require.Equal(t, 0, registry.Len())

	first := registry.Session("sess-a")
	require.NotNil(t, first)
	require.Equal(t, 1, registry.Len())

	require.Same(t, first, registry.Session("sess-a"))
	require.NotSame(t, first, registry.Session("sess-b"))
	require.Equal(t, 2, registry.Len())
}

func TestRegistryDrop(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Session("sess-a").AddItem(LineItem{ProductID: "prod-1", VariantID: "v1"})

	registry.Drop("sess-a")
	require.Equal(t, 0, registry.Len())

	// Re-created session starts with an empty cart.
	require.Empty(t, registry.Session("sess-a").Items())
}
