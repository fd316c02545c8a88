package runtime

import (
	"testing"

	"courier/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type nopSink struct{}

func (nopSink) Push(domain.Message) error { return nil }

func TestRegistry_Bind_And_Resolve(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connectionID := uuid.NewString()
	sink := nopSink{}

	// Given no connection is bound
	req.Zero(registry.Len())

	// When a connection binds
	registry.Bind(connectionID, sink)

	// Then it is resolvable by id
	req.Equal(1, registry.Len())
	resolved, ok := registry.Sink(connectionID)
	req.True(ok)
	req.Equal(sink, resolved)

	_, ok = registry.Sink(uuid.NewString())
	req.False(ok)
}

func TestRegistry_Unbind(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connectionID := uuid.NewString()

	registry.Bind(connectionID, nopSink{})
	registry.Unbind(connectionID)

	req.Zero(registry.Len())
	_, ok := registry.Sink(connectionID)
	req.False(ok)

	// Unbinding an unknown connection is a no-op.
	registry.Unbind(connectionID)
	req.Zero(registry.Len())
}

func TestRegistry_Rebind_Overwrites(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connectionID := uuid.NewString()
	first, second := nopSink{}, nopSink{}

	registry.Bind(connectionID, first)
	registry.Bind(connectionID, second)

	req.Equal(1, registry.Len())
}
