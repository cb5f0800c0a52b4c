package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/manifold/pkg/types"
)

func TestNewRejectsNilImplementation(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestInitializeChecksRequiredCapabilities(t *testing.T) {
	t.Run("missing baseline capability", func(t *testing.T) {
		stub := newStubManager(types.CapabilityEntityReferenceIdentification)
		m := newTestManager(t, stub)

		err := m.Initialize(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrConfiguration)
		assert.Contains(t, err.Error(), types.CapabilityManagementPolicyQueries.String())
	})

	t.Run("baseline capabilities present", func(t *testing.T) {
		stub := newStubManager(
			types.CapabilityEntityReferenceIdentification,
			types.CapabilityManagementPolicyQueries,
		)
		m := newTestManager(t, stub)
		require.NoError(t, m.Initialize(map[string]any{"library": "/tmp/lib.db"}))
		assert.Equal(t, []string{"Initialize"}, stub.calls)
	})
}

func TestCreateContext(t *testing.T) {
	t.Run("stateless manager", func(t *testing.T) {
		m := newTestManager(t, newStubManager())
		ctx, err := m.CreateContext()
		require.NoError(t, err)
		assert.Nil(t, ctx.ManagerState)
		assert.NotNil(t, ctx.Locale)
	})

	t.Run("stateful manager", func(t *testing.T) {
		m := newTestManager(t, newStubManager(types.CapabilityStatefulContexts))
		ctx, err := m.CreateContext()
		require.NoError(t, err)
		assert.Equal(t, types.State("stub-state"), ctx.ManagerState)
	})
}

func TestChildContextAndPersistence(t *testing.T) {
	m := newTestManager(t, newStubManager(types.CapabilityStatefulContexts))
	ctx, err := m.CreateContext()
	require.NoError(t, err)

	child, err := m.CreateChildContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.State("stub-state/child"), child.ManagerState)
	assert.Same(t, ctx.Locale, child.Locale)

	token, err := m.PersistenceTokenForContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token:stub-state", token)

	restored, err := m.ContextFromPersistenceToken(token)
	require.NoError(t, err)
	assert.Equal(t, types.State("token:stub-state"), restored.ManagerState)

	t.Run("empty token yields stateless context", func(t *testing.T) {
		restored, err := m.ContextFromPersistenceToken("")
		require.NoError(t, err)
		assert.Nil(t, restored.ManagerState)
	})

	t.Run("nil parent rejected", func(t *testing.T) {
		_, err := m.CreateChildContext(nil)
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})
}

func TestManagementPolicyValidatesTraitSets(t *testing.T) {
	stub := newStubManager(types.CapabilityManagementPolicyQueries)
	m := newTestManager(t, stub)

	_, err := m.ManagementPolicy([]types.TraitSet{types.NewTraitSet("shot"), nil}, types.AccessRead, types.NewContext())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	assert.Empty(t, stub.calls)

	policies, err := m.ManagementPolicy([]types.TraitSet{types.NewTraitSet("shot")}, types.AccessRead, types.NewContext())
	require.NoError(t, err)
	assert.Len(t, policies, 1)
}
