package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/manifold/pkg/types"
)

func TestRegisterAndInstantiate(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("org.example.b", func() types.ManagerInterface { return nil }))
	require.NoError(t, r.Register("org.example.a", func() types.ManagerInterface { return nil }))

	assert.Equal(t, []string{"org.example.a", "org.example.b"}, r.Identifiers())

	_, err := r.Instantiate("org.example.a")
	require.NoError(t, err)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	r := New()

	assert.ErrorIs(t, r.Register("", func() types.ManagerInterface { return nil }), types.ErrInvalidInput)
	assert.ErrorIs(t, r.Register("org.example.a", nil), types.ErrInvalidInput)

	require.NoError(t, r.Register("org.example.a", func() types.ManagerInterface { return nil }))
	err := r.Register("org.example.a", func() types.ManagerInterface { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	assert.Contains(t, err.Error(), "already registered")
}

func TestInstantiateUnknownIdentifier(t *testing.T) {
	_, err := New().Instantiate("org.example.missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}
