package manager

import "github.com/mediaforge/manifold/pkg/types"

// BatchPreflight forwards a preflight call to the back-end after
// validating that hints is parallel to refs and holds no nil elements.
func (m *Manager) BatchPreflight(refs []types.EntityReference, hints []*types.TraitsData,
	access types.Access, ctx *types.Context,
	success func(index int, working types.EntityReference), failure types.ErrorCallback) error {
	if err := requireEqualLengths("refs", len(refs), "hints", len(hints)); err != nil {
		return err
	}
	if err := requireNoNilData("hints", hints); err != nil {
		return err
	}
	return m.impl.Preflight(refs, hints, access, ctx, success, failure)
}

// PreflightResults obtains a working reference per target reference,
// returning every element's outcome in input order.
func (m *Manager) PreflightResults(refs []types.EntityReference, hints []*types.TraitsData,
	access types.Access, ctx *types.Context) ([]types.Result[types.EntityReference], error) {
	return gather(len(refs), func(success func(int, types.EntityReference), failure types.ErrorCallback) error {
		return m.BatchPreflight(refs, hints, access, ctx, success, failure)
	})
}

// Preflight obtains a working reference per target reference. All
// outcomes are observed before failing; the lowest-indexed failure is
// returned as a *types.BatchElementFailure.
func (m *Manager) Preflight(refs []types.EntityReference, hints []*types.TraitsData,
	access types.Access, ctx *types.Context) ([]types.EntityReference, error) {
	results, err := m.PreflightResults(refs, hints, access, ctx)
	if err != nil {
		return nil, err
	}
	if err := firstFailure(results, access, refString(refs)); err != nil {
		return nil, err
	}
	return successValues(results), nil
}

// PreflightOne obtains a working reference for a single target.
func (m *Manager) PreflightOne(ref types.EntityReference, hint *types.TraitsData,
	access types.Access, ctx *types.Context) (types.EntityReference, error) {
	refs, err := m.Preflight([]types.EntityReference{ref}, []*types.TraitsData{hint}, access, ctx)
	if err != nil {
		return "", err
	}
	return refs[0], nil
}

// PreflightOneResult obtains a working reference for a single target
// as a Result value.
func (m *Manager) PreflightOneResult(ref types.EntityReference, hint *types.TraitsData,
	access types.Access, ctx *types.Context) (types.Result[types.EntityReference], error) {
	results, err := m.PreflightResults([]types.EntityReference{ref}, []*types.TraitsData{hint}, access, ctx)
	if err != nil {
		return types.Result[types.EntityReference]{}, err
	}
	return singleResult(results), nil
}

// BatchRegister forwards a register call to the back-end after
// validating that data is parallel to refs and holds no nil elements.
func (m *Manager) BatchRegister(refs []types.EntityReference, data []*types.TraitsData,
	access types.Access, ctx *types.Context,
	success func(index int, final types.EntityReference), failure types.ErrorCallback) error {
	if err := requireEqualLengths("refs", len(refs), "data", len(data)); err != nil {
		return err
	}
	if err := requireNoNilData("data", data); err != nil {
		return err
	}
	return m.impl.Register(refs, data, access, ctx, success, failure)
}

// RegisterResults publishes data per target reference, returning every
// element's outcome in input order.
func (m *Manager) RegisterResults(refs []types.EntityReference, data []*types.TraitsData,
	access types.Access, ctx *types.Context) ([]types.Result[types.EntityReference], error) {
	return gather(len(refs), func(success func(int, types.EntityReference), failure types.ErrorCallback) error {
		return m.BatchRegister(refs, data, access, ctx, success, failure)
	})
}

// Register publishes data per target reference and returns the final
// references. All outcomes are observed before failing, so back-ends
// may finalize batch-wide side effects; the lowest-indexed failure is
// returned as a *types.BatchElementFailure.
func (m *Manager) Register(refs []types.EntityReference, data []*types.TraitsData,
	access types.Access, ctx *types.Context) ([]types.EntityReference, error) {
	results, err := m.RegisterResults(refs, data, access, ctx)
	if err != nil {
		return nil, err
	}
	if err := firstFailure(results, access, refString(refs)); err != nil {
		return nil, err
	}
	return successValues(results), nil
}

// RegisterOne publishes data to a single target reference.
func (m *Manager) RegisterOne(ref types.EntityReference, data *types.TraitsData,
	access types.Access, ctx *types.Context) (types.EntityReference, error) {
	refs, err := m.Register([]types.EntityReference{ref}, []*types.TraitsData{data}, access, ctx)
	if err != nil {
		return "", err
	}
	return refs[0], nil
}

// RegisterOneResult publishes data to a single target reference as a
// Result value.
func (m *Manager) RegisterOneResult(ref types.EntityReference, data *types.TraitsData,
	access types.Access, ctx *types.Context) (types.Result[types.EntityReference], error) {
	results, err := m.RegisterResults([]types.EntityReference{ref}, []*types.TraitsData{data}, access, ctx)
	if err != nil {
		return types.Result[types.EntityReference]{}, err
	}
	return singleResult(results), nil
}
