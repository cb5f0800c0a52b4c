package hybrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/manifold/pkg/types"
)

func TestNewValidation(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		_, err := New(nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("nil element", func(t *testing.T) {
		_, err := New([]types.ManagerInterface{newStubConstituent("a"), nil}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrInvalidInput)
		assert.Contains(t, err.Error(), "position 1")
	})

	t.Run("list is copied", func(t *testing.T) {
		first := newStubConstituent("a")
		managers := []types.ManagerInterface{first}
		h, err := New(managers, nil)
		require.NoError(t, err)
		managers[0] = nil
		assert.Equal(t, "a", h.Identifier())
	})
}

func TestRoutingInvokesOnlyFirstCapable(t *testing.T) {
	first := newStubConstituent("first")
	second := newStubConstituent("second", types.CapabilityResolution)
	h, err := New([]types.ManagerInterface{first, second}, nil)
	require.NoError(t, err)

	var origins []string
	err = h.Resolve([]types.EntityReference{"x://a"}, types.NewTraitSet("origin"), types.AccessRead,
		types.NewContext(),
		func(index int, data *types.TraitsData) {
			v, _ := data.Property("origin", "identifier")
			origins = append(origins, v.(string))
		},
		func(int, types.BatchElementError) { t.Fatal("unexpected failure") })
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, origins)
	assert.Empty(t, first.calls, "incapable constituent must never be invoked")
	assert.Equal(t, []string{"Resolve"}, second.calls)
}

func TestRoutingPrefersEarlierCapable(t *testing.T) {
	first := newStubConstituent("first", types.CapabilityResolution)
	second := newStubConstituent("second", types.CapabilityResolution)
	h, err := New([]types.ManagerInterface{first, second}, nil)
	require.NoError(t, err)

	err = h.Resolve(nil, types.NewTraitSet(), types.AccessRead, types.NewContext(),
		func(int, *types.TraitsData) {}, func(int, types.BatchElementError) {})
	require.NoError(t, err)
	assert.Equal(t, []string{"Resolve"}, first.calls)
	assert.Empty(t, second.calls)
}

func TestNoCapableConstituentFailsSynchronously(t *testing.T) {
	first := newStubConstituent("first")
	second := newStubConstituent("second")
	h, err := New([]types.ManagerInterface{first, second}, nil)
	require.NoError(t, err)

	callbackFired := false
	err = h.Exists([]types.EntityReference{"x://a"}, types.NewContext(),
		func(int, bool) { callbackFired = true },
		func(int, types.BatchElementError) { callbackFired = true })
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotImplemented)
	assert.False(t, callbackFired, "the failure must not flow through element callbacks")
	assert.Empty(t, first.calls)
	assert.Empty(t, second.calls)
}

func TestInfoAggregationEarlierWins(t *testing.T) {
	a := newStubConstituent("a")
	a.info = map[string]any{"x": int64(1), "y": "i"}
	b := newStubConstituent("b")
	b.info = map[string]any{"y": "k", "z": 1.2}
	h, err := New([]types.ManagerInterface{a, b}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"x": int64(1), "y": "i", "z": 1.2}, h.Info())
}

func TestSettingsAggregationEarlierWins(t *testing.T) {
	a := newStubConstituent("a")
	a.settings = map[string]any{"library": "/srv/a.db"}
	b := newStubConstituent("b")
	b.settings = map[string]any{"library": "/srv/b.db", "readonly": true}
	h, err := New([]types.ManagerInterface{a, b}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"library": "/srv/a.db", "readonly": true}, h.Settings())
}

func TestLifecycleBroadcast(t *testing.T) {
	a := newStubConstituent("a")
	b := newStubConstituent("b")
	h, err := New([]types.ManagerInterface{a, b}, nil)
	require.NoError(t, err)

	require.NoError(t, h.Initialize(map[string]any{}))
	h.FlushCaches()
	assert.Equal(t, []string{"Initialize", "FlushCaches"}, a.calls)
	assert.Equal(t, []string{"Initialize", "FlushCaches"}, b.calls)
}

func TestIdentifierAndDisplayNameUseFirstConstituent(t *testing.T) {
	a := newStubConstituent("org.example.a")
	b := newStubConstituent("org.example.b")
	h, err := New([]types.ManagerInterface{a, b}, nil)
	require.NoError(t, err)

	assert.Equal(t, "org.example.a", h.Identifier())
	assert.Equal(t, "org.example.a", h.DisplayName())
}

func TestHasCapabilityIsFreshUnion(t *testing.T) {
	a := newStubConstituent("a")
	b := newStubConstituent("b")
	h, err := New([]types.ManagerInterface{a, b}, nil)
	require.NoError(t, err)

	assert.False(t, h.HasCapability(types.CapabilityPublishing))
	// Capability sets may settle during Initialize; the union must not
	// be cached.
	b.capabilities[types.CapabilityPublishing] = true
	assert.True(t, h.HasCapability(types.CapabilityPublishing))
}

func TestStatefulRoutingIsGated(t *testing.T) {
	stateless := newStubConstituent("stateless")
	stateful := newStubConstituent("stateful", types.CapabilityStatefulContexts)
	h, err := New([]types.ManagerInterface{stateless, stateful}, nil)
	require.NoError(t, err)

	state, err := h.CreateState()
	require.NoError(t, err)
	assert.Equal(t, types.State("stateful:state"), state)
	assert.Empty(t, stateless.calls)

	t.Run("not implemented without capability", func(t *testing.T) {
		h, err := New([]types.ManagerInterface{stateless}, nil)
		require.NoError(t, err)
		_, err = h.CreateState()
		assert.ErrorIs(t, err, types.ErrNotImplemented)
	})
}

func TestIsEntityReferenceStringRouting(t *testing.T) {
	incapable := newStubConstituent("incapable")
	capable := newStubConstituent("capable", types.CapabilityEntityReferenceIdentification)
	h, err := New([]types.ManagerInterface{incapable, capable}, nil)
	require.NoError(t, err)

	ok, err := h.IsEntityReferenceString("x://a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"IsEntityReferenceString"}, capable.calls)
	assert.Empty(t, incapable.calls)
}

func TestManagementPolicyRouting(t *testing.T) {
	capable := newStubConstituent("capable", types.CapabilityManagementPolicyQueries)
	h, err := New([]types.ManagerInterface{newStubConstituent("incapable"), capable}, nil)
	require.NoError(t, err)

	_, err = h.ManagementPolicy([]types.TraitSet{types.NewTraitSet("shot")}, types.AccessRead, types.NewContext())
	require.NoError(t, err)
	assert.Equal(t, []string{"ManagementPolicy"}, capable.calls)

	t.Run("no capable constituent", func(t *testing.T) {
		h, err := New([]types.ManagerInterface{newStubConstituent("incapable")}, nil)
		require.NoError(t, err)
		_, err = h.ManagementPolicy(nil, types.AccessRead, types.NewContext())
		assert.ErrorIs(t, err, types.ErrNotImplemented)
	})
}
