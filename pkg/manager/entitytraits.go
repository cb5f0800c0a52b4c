package manager

import "github.com/mediaforge/manifold/pkg/types"

// BatchEntityTraits forwards a trait-introspection call to the
// back-end unchanged.
func (m *Manager) BatchEntityTraits(refs []types.EntityReference, access types.Access,
	ctx *types.Context, success func(index int, traits types.TraitSet),
	failure types.ErrorCallback) error {
	return m.impl.EntityTraits(refs, access, ctx, success, failure)
}

// EntityTraitsResults queries each reference's trait set, returning
// every element's outcome in input order.
func (m *Manager) EntityTraitsResults(refs []types.EntityReference, access types.Access,
	ctx *types.Context) ([]types.Result[types.TraitSet], error) {
	return gather(len(refs), func(success func(int, types.TraitSet), failure types.ErrorCallback) error {
		return m.BatchEntityTraits(refs, access, ctx, success, failure)
	})
}

// EntityTraits queries each reference's trait set. All outcomes are
// observed before failing; the lowest-indexed failure is returned as a
// *types.BatchElementFailure.
func (m *Manager) EntityTraits(refs []types.EntityReference, access types.Access,
	ctx *types.Context) ([]types.TraitSet, error) {
	results, err := m.EntityTraitsResults(refs, access, ctx)
	if err != nil {
		return nil, err
	}
	if err := firstFailure(results, access, refString(refs)); err != nil {
		return nil, err
	}
	return successValues(results), nil
}

// EntityTraitsOne queries the trait set of a single reference.
func (m *Manager) EntityTraitsOne(ref types.EntityReference, access types.Access,
	ctx *types.Context) (types.TraitSet, error) {
	sets, err := m.EntityTraits([]types.EntityReference{ref}, access, ctx)
	if err != nil {
		return nil, err
	}
	return sets[0], nil
}

// EntityTraitsOneResult queries a single reference's trait set as a
// Result value.
func (m *Manager) EntityTraitsOneResult(ref types.EntityReference, access types.Access,
	ctx *types.Context) (types.Result[types.TraitSet], error) {
	results, err := m.EntityTraitsResults([]types.EntityReference{ref}, access, ctx)
	if err != nil {
		return types.Result[types.TraitSet]{}, err
	}
	return singleResult(results), nil
}
