package manager

import (
	"strings"

	"github.com/mediaforge/manifold/pkg/types"
)

// BatchDefaultEntityReference forwards a default-reference query to
// the back-end after validating that no requested trait set is nil.
// The per-element success value is nil when the manager offers no
// default for that trait set.
func (m *Manager) BatchDefaultEntityReference(traitSets []types.TraitSet, access types.Access,
	ctx *types.Context, success func(index int, ref *types.EntityReference),
	failure types.ErrorCallback) error {
	if err := requireNoNilTraitSets("traitSets", traitSets); err != nil {
		return err
	}
	return m.impl.DefaultEntityReference(traitSets, access, ctx, success, failure)
}

// DefaultEntityReferenceResults queries a default reference per trait
// set, returning every element's outcome in input order.
func (m *Manager) DefaultEntityReferenceResults(traitSets []types.TraitSet, access types.Access,
	ctx *types.Context) ([]types.Result[*types.EntityReference], error) {
	return gather(len(traitSets), func(success func(int, *types.EntityReference), failure types.ErrorCallback) error {
		return m.BatchDefaultEntityReference(traitSets, access, ctx, success, failure)
	})
}

// DefaultEntityReference queries a default reference per trait set.
// All outcomes are observed before failing; the lowest-indexed failure
// is returned as a *types.BatchElementFailure.
func (m *Manager) DefaultEntityReference(traitSets []types.TraitSet, access types.Access,
	ctx *types.Context) ([]*types.EntityReference, error) {
	results, err := m.DefaultEntityReferenceResults(traitSets, access, ctx)
	if err != nil {
		return nil, err
	}
	if err := firstFailure(results, access, traitSetString(traitSets)); err != nil {
		return nil, err
	}
	return successValues(results), nil
}

// DefaultEntityReferenceOne queries the default reference for a single
// trait set.
func (m *Manager) DefaultEntityReferenceOne(traitSet types.TraitSet, access types.Access,
	ctx *types.Context) (*types.EntityReference, error) {
	refs, err := m.DefaultEntityReference([]types.TraitSet{traitSet}, access, ctx)
	if err != nil {
		return nil, err
	}
	return refs[0], nil
}

// DefaultEntityReferenceOneResult queries the default reference for a
// single trait set as a Result value.
func (m *Manager) DefaultEntityReferenceOneResult(traitSet types.TraitSet, access types.Access,
	ctx *types.Context) (types.Result[*types.EntityReference], error) {
	results, err := m.DefaultEntityReferenceResults([]types.TraitSet{traitSet}, access, ctx)
	if err != nil {
		return types.Result[*types.EntityReference]{}, err
	}
	return singleResult(results), nil
}

// traitSetString adapts a trait-set slice for failure rendering; a
// default-reference query has no entity reference to report.
func traitSetString(traitSets []types.TraitSet) func(index int) string {
	return func(index int) string {
		return strings.Join(traitSets[index].IDs(), ",")
	}
}
