package manager

import (
	"fmt"

	"github.com/mediaforge/manifold/pkg/types"
)

// BatchGetWithRelationship forwards a relationship query to the
// back-end after validating the relationship and page size. The
// per-element success value is a pager owned by the implementation;
// it must stay usable after the caller releases the input arguments.
func (m *Manager) BatchGetWithRelationship(refs []types.EntityReference,
	relationship *types.TraitsData, resultTraits types.TraitSet, pageSize int,
	access types.Access, ctx *types.Context,
	success func(index int, pager types.EntityReferencePager), failure types.ErrorCallback) error {
	if relationship == nil {
		return fmt.Errorf("%w: relationship must not be nil", types.ErrInvalidInput)
	}
	if err := requirePageSize(pageSize); err != nil {
		return err
	}
	return m.impl.GetWithRelationship(refs, relationship, resultTraits, pageSize, access, ctx, success, failure)
}

// GetWithRelationshipResults queries related entities per reference,
// returning every element's pager or failure in input order.
func (m *Manager) GetWithRelationshipResults(refs []types.EntityReference,
	relationship *types.TraitsData, resultTraits types.TraitSet, pageSize int,
	access types.Access, ctx *types.Context) ([]types.Result[types.EntityReferencePager], error) {
	return gather(len(refs), func(success func(int, types.EntityReferencePager), failure types.ErrorCallback) error {
		return m.BatchGetWithRelationship(refs, relationship, resultTraits, pageSize, access, ctx, success, failure)
	})
}

// GetWithRelationship queries related entities per reference and
// returns one pager per input. All outcomes are observed before
// failing; the lowest-indexed failure is returned as a
// *types.BatchElementFailure.
func (m *Manager) GetWithRelationship(refs []types.EntityReference,
	relationship *types.TraitsData, resultTraits types.TraitSet, pageSize int,
	access types.Access, ctx *types.Context) ([]types.EntityReferencePager, error) {
	results, err := m.GetWithRelationshipResults(refs, relationship, resultTraits, pageSize, access, ctx)
	if err != nil {
		return nil, err
	}
	if err := firstFailure(results, access, refString(refs)); err != nil {
		return nil, err
	}
	return successValues(results), nil
}

// GetWithRelationshipOne queries the entities related to a single
// reference.
func (m *Manager) GetWithRelationshipOne(ref types.EntityReference,
	relationship *types.TraitsData, resultTraits types.TraitSet, pageSize int,
	access types.Access, ctx *types.Context) (types.EntityReferencePager, error) {
	pagers, err := m.GetWithRelationship([]types.EntityReference{ref}, relationship, resultTraits, pageSize, access, ctx)
	if err != nil {
		return nil, err
	}
	return pagers[0], nil
}

// GetWithRelationshipOneResult queries the entities related to a
// single reference as a Result value.
func (m *Manager) GetWithRelationshipOneResult(ref types.EntityReference,
	relationship *types.TraitsData, resultTraits types.TraitSet, pageSize int,
	access types.Access, ctx *types.Context) (types.Result[types.EntityReferencePager], error) {
	results, err := m.GetWithRelationshipResults([]types.EntityReference{ref}, relationship, resultTraits, pageSize, access, ctx)
	if err != nil {
		return types.Result[types.EntityReferencePager]{}, err
	}
	return singleResult(results), nil
}

// BatchGetWithRelationships forwards a multi-relationship query for a
// single reference to the back-end after validating the relationship
// list and page size. The batch dimension is the relationship list.
func (m *Manager) BatchGetWithRelationships(ref types.EntityReference,
	relationships []*types.TraitsData, resultTraits types.TraitSet, pageSize int,
	access types.Access, ctx *types.Context,
	success func(index int, pager types.EntityReferencePager), failure types.ErrorCallback) error {
	if err := requireNoNilData("relationships", relationships); err != nil {
		return err
	}
	if err := requirePageSize(pageSize); err != nil {
		return err
	}
	return m.impl.GetWithRelationships(ref, relationships, resultTraits, pageSize, access, ctx, success, failure)
}

// GetWithRelationshipsResults queries each relationship of a single
// reference, returning every element's pager or failure in input
// order.
func (m *Manager) GetWithRelationshipsResults(ref types.EntityReference,
	relationships []*types.TraitsData, resultTraits types.TraitSet, pageSize int,
	access types.Access, ctx *types.Context) ([]types.Result[types.EntityReferencePager], error) {
	return gather(len(relationships), func(success func(int, types.EntityReferencePager), failure types.ErrorCallback) error {
		return m.BatchGetWithRelationships(ref, relationships, resultTraits, pageSize, access, ctx, success, failure)
	})
}

// GetWithRelationships queries each relationship of a single reference
// and returns one pager per relationship. All outcomes are observed
// before failing; the lowest-indexed failure is returned as a
// *types.BatchElementFailure.
func (m *Manager) GetWithRelationships(ref types.EntityReference,
	relationships []*types.TraitsData, resultTraits types.TraitSet, pageSize int,
	access types.Access, ctx *types.Context) ([]types.EntityReferencePager, error) {
	results, err := m.GetWithRelationshipsResults(ref, relationships, resultTraits, pageSize, access, ctx)
	if err != nil {
		return nil, err
	}
	refAt := func(int) string { return ref.String() }
	if err := firstFailure(results, access, refAt); err != nil {
		return nil, err
	}
	return successValues(results), nil
}

// GetWithRelationshipsOne queries a single relationship of a single
// reference.
func (m *Manager) GetWithRelationshipsOne(ref types.EntityReference,
	relationship *types.TraitsData, resultTraits types.TraitSet, pageSize int,
	access types.Access, ctx *types.Context) (types.EntityReferencePager, error) {
	pagers, err := m.GetWithRelationships(ref, []*types.TraitsData{relationship}, resultTraits, pageSize, access, ctx)
	if err != nil {
		return nil, err
	}
	return pagers[0], nil
}

// GetWithRelationshipsOneResult queries a single relationship of a
// single reference as a Result value.
func (m *Manager) GetWithRelationshipsOneResult(ref types.EntityReference,
	relationship *types.TraitsData, resultTraits types.TraitSet, pageSize int,
	access types.Access, ctx *types.Context) (types.Result[types.EntityReferencePager], error) {
	results, err := m.GetWithRelationshipsResults(ref, []*types.TraitsData{relationship}, resultTraits, pageSize, access, ctx)
	if err != nil {
		return types.Result[types.EntityReferencePager]{}, err
	}
	return singleResult(results), nil
}
