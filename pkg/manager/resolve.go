package manager

import "github.com/mediaforge/manifold/pkg/types"

// BatchResolve forwards a resolution call to the back-end unchanged.
func (m *Manager) BatchResolve(refs []types.EntityReference, traits types.TraitSet,
	access types.Access, ctx *types.Context,
	success func(index int, data *types.TraitsData), failure types.ErrorCallback) error {
	return m.impl.Resolve(refs, traits, access, ctx, success, failure)
}

// ResolveResults resolves the requested traits for each reference,
// returning every element's outcome in input order.
func (m *Manager) ResolveResults(refs []types.EntityReference, traits types.TraitSet,
	access types.Access, ctx *types.Context) ([]types.Result[*types.TraitsData], error) {
	return gather(len(refs), func(success func(int, *types.TraitsData), failure types.ErrorCallback) error {
		return m.BatchResolve(refs, traits, access, ctx, success, failure)
	})
}

// Resolve resolves the requested traits for each reference. All
// outcomes are observed before failing; the lowest-indexed failure is
// returned as a *types.BatchElementFailure.
func (m *Manager) Resolve(refs []types.EntityReference, traits types.TraitSet,
	access types.Access, ctx *types.Context) ([]*types.TraitsData, error) {
	results, err := m.ResolveResults(refs, traits, access, ctx)
	if err != nil {
		return nil, err
	}
	if err := firstFailure(results, access, refString(refs)); err != nil {
		return nil, err
	}
	return successValues(results), nil
}

// ResolveOne resolves the requested traits for a single reference.
func (m *Manager) ResolveOne(ref types.EntityReference, traits types.TraitSet,
	access types.Access, ctx *types.Context) (*types.TraitsData, error) {
	data, err := m.Resolve([]types.EntityReference{ref}, traits, access, ctx)
	if err != nil {
		return nil, err
	}
	return data[0], nil
}

// ResolveOneResult resolves a single reference as a Result value.
func (m *Manager) ResolveOneResult(ref types.EntityReference, traits types.TraitSet,
	access types.Access, ctx *types.Context) (types.Result[*types.TraitsData], error) {
	results, err := m.ResolveResults([]types.EntityReference{ref}, traits, access, ctx)
	if err != nil {
		return types.Result[*types.TraitsData]{}, err
	}
	return singleResult(results), nil
}
