package manager

import "github.com/mediaforge/manifold/pkg/types"

// BatchExists forwards an existence query to the back-end unchanged.
// Both callbacks must be non-nil; exactly one fires per reference.
func (m *Manager) BatchExists(refs []types.EntityReference, ctx *types.Context,
	success func(index int, exists bool), failure types.ErrorCallback) error {
	return m.impl.Exists(refs, ctx, success, failure)
}

// ExistsResults reports existence per reference, successes and
// failures alike, in input order.
func (m *Manager) ExistsResults(refs []types.EntityReference, ctx *types.Context) ([]types.Result[bool], error) {
	return gather(len(refs), func(success func(int, bool), failure types.ErrorCallback) error {
		return m.BatchExists(refs, ctx, success, failure)
	})
}

// Exists reports existence per reference, in input order. All
// outcomes are observed before failing; the lowest-indexed failure is
// returned as a *types.BatchElementFailure.
func (m *Manager) Exists(refs []types.EntityReference, ctx *types.Context) ([]bool, error) {
	results, err := m.ExistsResults(refs, ctx)
	if err != nil {
		return nil, err
	}
	if err := firstFailure(results, types.AccessRead, refString(refs)); err != nil {
		return nil, err
	}
	return successValues(results), nil
}

// ExistsOne reports whether the single referenced entity exists.
func (m *Manager) ExistsOne(ref types.EntityReference, ctx *types.Context) (bool, error) {
	exists, err := m.Exists([]types.EntityReference{ref}, ctx)
	if err != nil {
		return false, err
	}
	return exists[0], nil
}

// ExistsOneResult reports existence of the single referenced entity as
// a Result value.
func (m *Manager) ExistsOneResult(ref types.EntityReference, ctx *types.Context) (types.Result[bool], error) {
	results, err := m.ExistsResults([]types.EntityReference{ref}, ctx)
	if err != nil {
		return types.Result[bool]{}, err
	}
	return singleResult(results), nil
}

// refString adapts a reference slice for failure rendering.
func refString(refs []types.EntityReference) func(index int) string {
	return func(index int) string {
		return refs[index].String()
	}
}
