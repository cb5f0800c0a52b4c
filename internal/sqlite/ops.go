package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mediaforge/manifold/pkg/types"
)

// checkRef classifies a reference, returning a per-element error for
// references that do not carry the SQLite prefix.
func checkRef(ref types.EntityReference) *types.BatchElementError {
	if !strings.HasPrefix(ref.String(), RefPrefix) {
		return &types.BatchElementError{
			Code:    types.ErrorCodeMalformedEntityReference,
			Message: fmt.Sprintf("reference %q is not a %s reference", ref, RefPrefix),
		}
	}
	return nil
}

// queryError renders an unexpected database failure as a per-element
// error so the batch contract (exactly one callback per index) holds.
func queryError(err error) types.BatchElementError {
	return types.BatchElementError{
		Code:    types.ErrorCodeUnknown,
		Message: fmt.Sprintf("database query failed: %v", err),
	}
}

// loadAsset fetches the traits of one asset. Returns sql.ErrNoRows
// when the reference is unknown.
func (m *Manager) loadAsset(ref types.EntityReference) (*types.TraitsData, error) {
	var traitsJSON string
	err := m.db.QueryRow("SELECT traits_json FROM assets WHERE ref = ?", ref.String()).Scan(&traitsJSON)
	if err != nil {
		return nil, err
	}
	return unmarshalTraits(traitsJSON)
}

// Exists reports presence per reference.
func (m *Manager) Exists(refs []types.EntityReference, ctx *types.Context,
	success func(index int, exists bool), failure types.ErrorCallback) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.requireInitialized(); err != nil {
		return err
	}

	for i, ref := range refs {
		if elementErr := checkRef(ref); elementErr != nil {
			failure(i, *elementErr)
			continue
		}
		var one int
		err := m.db.QueryRow("SELECT 1 FROM assets WHERE ref = ?", ref.String()).Scan(&one)
		switch {
		case err == sql.ErrNoRows:
			success(i, false)
		case err != nil:
			failure(i, queryError(err))
		default:
			success(i, true)
		}
	}
	return nil
}

// EntityTraits returns the stored trait set per reference. For write
// access an unknown reference yields an empty set: any trait set may
// be published to a fresh reference.
func (m *Manager) EntityTraits(refs []types.EntityReference, access types.Access, ctx *types.Context,
	success func(index int, traits types.TraitSet), failure types.ErrorCallback) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.requireInitialized(); err != nil {
		return err
	}

	for i, ref := range refs {
		if elementErr := checkRef(ref); elementErr != nil {
			failure(i, *elementErr)
			continue
		}
		asset, err := m.loadAsset(ref)
		switch {
		case err == sql.ErrNoRows && access != types.AccessRead:
			success(i, types.NewTraitSet())
		case err == sql.ErrNoRows:
			failure(i, types.BatchElementError{
				Code:    types.ErrorCodeEntityResolutionError,
				Message: fmt.Sprintf("no asset stored for %q", ref),
			})
		case err != nil:
			failure(i, queryError(err))
		default:
			success(i, asset.TraitSet())
		}
	}
	return nil
}

// Resolve returns stored data filtered to the requested traits.
func (m *Manager) Resolve(refs []types.EntityReference, traits types.TraitSet, access types.Access,
	ctx *types.Context, success func(index int, data *types.TraitsData), failure types.ErrorCallback) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.requireInitialized(); err != nil {
		return err
	}

	for i, ref := range refs {
		if elementErr := checkRef(ref); elementErr != nil {
			failure(i, *elementErr)
			continue
		}
		asset, err := m.loadAsset(ref)
		switch {
		case err == sql.ErrNoRows:
			failure(i, types.BatchElementError{
				Code:    types.ErrorCodeEntityResolutionError,
				Message: fmt.Sprintf("no asset stored for %q", ref),
			})
		case err != nil:
			failure(i, queryError(err))
		default:
			out := types.NewTraitsData()
			for traitID := range traits {
				if !asset.HasTrait(traitID) {
					continue
				}
				out.AddTrait(traitID)
				for key, value := range asset.Properties(traitID) {
					out.SetProperty(traitID, key, value)
				}
			}
			success(i, out)
		}
	}
	return nil
}

// DefaultEntityReference answers from the defaults setting, keyed by
// comma-joined sorted trait IDs. A trait set without a configured
// default succeeds with a nil reference.
func (m *Manager) DefaultEntityReference(traitSets []types.TraitSet, access types.Access, ctx *types.Context,
	success func(index int, ref *types.EntityReference), failure types.ErrorCallback) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.requireInitialized(); err != nil {
		return err
	}

	for i, traitSet := range traitSets {
		key := strings.Join(traitSet.IDs(), ",")
		if ref, ok := m.defaults[key]; ok {
			out := ref
			success(i, &out)
			continue
		}
		success(i, nil)
	}
	return nil
}

// checkPublishAccess rejects read access on the publish surface.
func checkPublishAccess(access types.Access) *types.BatchElementError {
	if access == types.AccessRead || access == types.AccessManagerDriven {
		return &types.BatchElementError{
			Code:    types.ErrorCodeEntityAccessError,
			Message: fmt.Sprintf("cannot publish with %s access", access),
		}
	}
	return nil
}

// Preflight validates each target and echoes it as the working
// reference; data may be produced directly against the target.
func (m *Manager) Preflight(refs []types.EntityReference, hints []*types.TraitsData, access types.Access,
	ctx *types.Context, success func(index int, working types.EntityReference), failure types.ErrorCallback) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.requireInitialized(); err != nil {
		return err
	}

	for i, ref := range refs {
		if elementErr := checkRef(ref); elementErr != nil {
			failure(i, *elementErr)
			continue
		}
		if elementErr := checkPublishAccess(access); elementErr != nil {
			failure(i, *elementErr)
			continue
		}
		if len(hints[i].TraitSet()) == 0 {
			failure(i, types.BatchElementError{
				Code:    types.ErrorCodeInvalidPreflightHint,
				Message: "preflight hint carries no traits",
			})
			continue
		}
		success(i, ref)
	}
	return nil
}

// Register upserts each asset's traits and echoes the final
// reference.
func (m *Manager) Register(refs []types.EntityReference, data []*types.TraitsData, access types.Access,
	ctx *types.Context, success func(index int, final types.EntityReference), failure types.ErrorCallback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireInitialized(); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, ref := range refs {
		if elementErr := checkRef(ref); elementErr != nil {
			failure(i, *elementErr)
			continue
		}
		if elementErr := checkPublishAccess(access); elementErr != nil {
			failure(i, *elementErr)
			continue
		}
		if len(data[i].TraitSet()) == 0 {
			failure(i, types.BatchElementError{
				Code:    types.ErrorCodeInvalidTraitSet,
				Message: "cannot register an asset with no traits",
			})
			continue
		}
		traitsJSON, err := marshalTraits(data[i])
		if err != nil {
			failure(i, queryError(err))
			continue
		}
		_, err = m.db.Exec(`
			INSERT INTO assets (asset_id, ref, traits_json, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (ref) DO UPDATE SET traits_json = excluded.traits_json,
				updated_at = excluded.updated_at`,
			newStateToken(), ref.String(), traitsJSON, now, now)
		if err != nil {
			failure(i, queryError(err))
			continue
		}
		success(i, ref)
	}
	return nil
}

// relationshipKind extracts the relationship kind from relationship
// trait data: the sole trait ID.
func relationshipKind(relationship *types.TraitsData) (string, *types.BatchElementError) {
	ids := relationship.TraitSet().IDs()
	if len(ids) != 1 {
		return "", &types.BatchElementError{
			Code:    types.ErrorCodeInvalidTraitSet,
			Message: fmt.Sprintf("relationship must carry exactly one trait, got %d", len(ids)),
		}
	}
	return ids[0], nil
}

// relatedRefs fetches the references related to source by kind, in
// ordinal order, filtered to targets whose traits include every
// member of resultTraits.
func (m *Manager) relatedRefs(source types.EntityReference, kind string, resultTraits types.TraitSet) ([]types.EntityReference, error) {
	rows, err := m.db.Query(
		"SELECT target_ref FROM relationships WHERE source_ref = ? AND kind = ? ORDER BY ordinal",
		source.String(), kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var related []types.EntityReference
	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return nil, err
		}
		ref := types.EntityReference(target)
		if len(resultTraits) > 0 {
			asset, err := m.loadAsset(ref)
			if err == sql.ErrNoRows {
				continue
			}
			if err != nil {
				return nil, err
			}
			matches := true
			for traitID := range resultTraits {
				if !asset.HasTrait(traitID) {
					matches = false
					break
				}
			}
			if !matches {
				continue
			}
		}
		related = append(related, ref)
	}
	return related, rows.Err()
}

// GetWithRelationship answers each source reference with a pager over
// its related entities.
func (m *Manager) GetWithRelationship(refs []types.EntityReference, relationship *types.TraitsData,
	resultTraits types.TraitSet, pageSize int, access types.Access, ctx *types.Context,
	success func(index int, pager types.EntityReferencePager), failure types.ErrorCallback) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.requireInitialized(); err != nil {
		return err
	}

	kind, kindErr := relationshipKind(relationship)
	for i, ref := range refs {
		if kindErr != nil {
			failure(i, *kindErr)
			continue
		}
		if elementErr := checkRef(ref); elementErr != nil {
			failure(i, *elementErr)
			continue
		}
		related, err := m.relatedRefs(ref, kind, resultTraits)
		if err != nil {
			failure(i, queryError(err))
			continue
		}
		success(i, newRefPager(related, pageSize))
	}
	return nil
}

// GetWithRelationships answers each relationship of a single source
// reference with a pager over its related entities.
func (m *Manager) GetWithRelationships(ref types.EntityReference, relationships []*types.TraitsData,
	resultTraits types.TraitSet, pageSize int, access types.Access, ctx *types.Context,
	success func(index int, pager types.EntityReferencePager), failure types.ErrorCallback) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.requireInitialized(); err != nil {
		return err
	}

	refErr := checkRef(ref)
	for i, relationship := range relationships {
		if refErr != nil {
			failure(i, *refErr)
			continue
		}
		kind, kindErr := relationshipKind(relationship)
		if kindErr != nil {
			failure(i, *kindErr)
			continue
		}
		related, err := m.relatedRefs(ref, kind, resultTraits)
		if err != nil {
			failure(i, queryError(err))
			continue
		}
		success(i, newRefPager(related, pageSize))
	}
	return nil
}

// AddRelationship links target under source with the given kind,
// appended after any existing relationships of that kind.
func (m *Manager) AddRelationship(source types.EntityReference, kind string, target types.EntityReference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireInitialized(); err != nil {
		return err
	}
	if kind == "" {
		return fmt.Errorf("%w: relationship kind must not be empty", types.ErrInvalidInput)
	}

	var ordinal int
	err := m.db.QueryRow(
		"SELECT COUNT(*) FROM relationships WHERE source_ref = ? AND kind = ?",
		source.String(), kind).Scan(&ordinal)
	if err != nil {
		return fmt.Errorf("count relationships: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	_, err = m.db.Exec(
		"INSERT INTO relationships (relationship_id, source_ref, kind, target_ref, ordinal) VALUES (?, ?, ?, ?, ?)",
		id.String(), source.String(), kind, target.String(), ordinal)
	if err != nil {
		return fmt.Errorf("insert relationship: %w", err)
	}
	return nil
}
