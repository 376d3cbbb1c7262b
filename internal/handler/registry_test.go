package handler

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/repofs/pkg/repofs"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	roles := newRoleHandler(t)

	require.NoError(t, r.Register("roles", roles))

	h, err := r.Lookup("roles")
	require.NoError(t, err)
	assert.Same(t, roles, h)

	_, err = r.Lookup("nodes")
	assert.True(t, errors.Is(err, repofs.ErrConfiguration))
}

func TestRegistry_RegisterErrors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("roles", newRoleHandler(t)))

	tests := []struct {
		name string
		kind string
		h    repofs.ContentHandler
	}{
		{"duplicate", "roles", newRoleHandler(t)},
		{"empty kind", "", newRoleHandler(t)},
		{"nil handler", "nodes", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.kind, tt.h)
			assert.True(t, errors.Is(err, repofs.ErrConfiguration), "got %v", err)
		})
	}
}

func TestRegistry_KindsSorted(t *testing.T) {
	r := NewRegistry()
	for _, kind := range []string{"roles", "environments", "nodes"} {
		require.NoError(t, r.Register(kind, newRoleHandler(t)))
	}
	assert.Equal(t, []string{"environments", "nodes", "roles"}, r.Kinds())
}

func TestRegistry_ConcurrentLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("roles", newRoleHandler(t)))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Lookup("roles")
			assert.NoError(t, err)
			_ = r.Kinds()
		}()
	}
	wg.Wait()
}
