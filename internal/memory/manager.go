// Package memory implements a read-oriented in-memory manager. It
// serves as the lightweight constituent in hybrid compositions and as
// a fixture for exercising the host-facing layers without a database.
package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mediaforge/manifold/pkg/types"
)

// Identifier is the reverse-DNS identifier of the memory manager.
const Identifier = "org.manifold.manager.memory"

// RefPrefix is the scheme prefix of memory entity references.
const RefPrefix = "manifold-mem://"

// capabilities supported by the memory manager.
var capabilities = map[types.Capability]bool{
	types.CapabilityEntityReferenceIdentification: true,
	types.CapabilityManagementPolicyQueries:       true,
	types.CapabilityResolution:                    true,
	types.CapabilityExistenceQueries:              true,
}

// Manager holds assets in a reference-keyed map. Assets are seeded
// through Initialize settings (key "assets") or programmatically via
// Seed.
type Manager struct {
	mu          sync.RWMutex
	initialized bool
	settings    map[string]any
	assets      map[types.EntityReference]*types.TraitsData
}

var _ types.ManagerInterface = (*Manager)(nil)

// NewManager returns an empty, uninitialized memory manager.
func NewManager() *Manager {
	return &Manager{
		settings: make(map[string]any),
		assets:   make(map[types.EntityReference]*types.TraitsData),
	}
}

// Identifier returns the manager identifier.
func (m *Manager) Identifier() string { return Identifier }

// DisplayName returns the human-readable manager name.
func (m *Manager) DisplayName() string { return "Manifold In-Memory Manager" }

// Info describes the manager.
func (m *Manager) Info() map[string]any {
	return map[string]any{
		"identifier": Identifier,
		"ephemeral":  true,
	}
}

// Settings returns a copy of the current settings.
func (m *Manager) Settings() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.settings))
	for k, v := range m.settings {
		out[k] = v
	}
	return out
}

// Initialize stores settings and seeds assets from the "assets" key
// when present: a map of reference → trait → property → value.
func (m *Manager) Initialize(settings map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings = make(map[string]any, len(settings))
	for k, v := range settings {
		m.settings[k] = v
	}

	if seed, ok := settings["assets"]; ok {
		byRef, ok := seed.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: assets setting must be a map of reference to trait data", types.ErrInvalidInput)
		}
		for ref, traits := range byRef {
			data, err := traitsDataFromSetting(traits)
			if err != nil {
				return fmt.Errorf("asset %q: %w", ref, err)
			}
			m.assets[types.EntityReference(ref)] = data
		}
	}

	m.initialized = true
	return nil
}

// traitsDataFromSetting converts a settings subtree into TraitsData.
func traitsDataFromSetting(raw any) (*types.TraitsData, error) {
	byTrait, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: trait data must be a map of trait to properties", types.ErrInvalidInput)
	}
	data := types.NewTraitsData()
	for traitID, props := range byTrait {
		data.AddTrait(traitID)
		if props == nil {
			continue
		}
		byKey, ok := props.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: properties of trait %q must be a map", types.ErrInvalidInput, traitID)
		}
		for key, value := range byKey {
			data.SetProperty(traitID, key, value)
		}
	}
	return data, nil
}

// Seed stores a copy of data under ref, creating or replacing the
// asset.
func (m *Manager) Seed(ref types.EntityReference, data *types.TraitsData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[ref] = data.Copy()
}

// FlushCaches is a no-op; the asset map is the source of truth.
func (m *Manager) FlushCaches() {}

// HasCapability reports support for the given capability.
func (m *Manager) HasCapability(capability types.Capability) bool {
	return capabilities[capability]
}

// IsEntityReferenceString reports whether candidate carries the memory
// reference prefix.
func (m *Manager) IsEntityReferenceString(candidate string) (bool, error) {
	return strings.HasPrefix(candidate, RefPrefix), nil
}

// UpdateTerminology is not supported.
func (m *Manager) UpdateTerminology(terms map[string]string) (map[string]string, error) {
	return nil, fmt.Errorf("%w: %s does not support custom terminology", types.ErrNotImplemented, Identifier)
}

// ManagementPolicy marks every requested trait set as managed for
// reads and unmanaged otherwise; the memory manager cannot publish.
func (m *Manager) ManagementPolicy(traitSets []types.TraitSet, access types.Access, ctx *types.Context) ([]*types.TraitsData, error) {
	policies := make([]*types.TraitsData, len(traitSets))
	for i := range traitSets {
		policy := types.NewTraitsData()
		if access == types.AccessRead {
			policy.AddTrait("manifold.policy.managed")
		}
		policies[i] = policy
	}
	return policies, nil
}

// CreateState is not supported.
func (m *Manager) CreateState() (types.State, error) {
	return nil, m.errStateless()
}

// CreateChildState is not supported.
func (m *Manager) CreateChildState(parent types.State) (types.State, error) {
	return nil, m.errStateless()
}

// PersistenceTokenForState is not supported.
func (m *Manager) PersistenceTokenForState(state types.State) (string, error) {
	return "", m.errStateless()
}

// StateFromPersistenceToken is not supported.
func (m *Manager) StateFromPersistenceToken(token string) (types.State, error) {
	return nil, m.errStateless()
}

func (m *Manager) errStateless() error {
	return fmt.Errorf("%w: %s does not support stateful contexts", types.ErrNotImplemented, Identifier)
}

// checkRef classifies a reference, returning a per-element error for
// malformed references.
func checkRef(ref types.EntityReference) *types.BatchElementError {
	if !strings.HasPrefix(ref.String(), RefPrefix) {
		return &types.BatchElementError{
			Code:    types.ErrorCodeMalformedEntityReference,
			Message: fmt.Sprintf("reference %q is not a %s reference", ref, RefPrefix),
		}
	}
	return nil
}

// Exists reports presence per reference.
func (m *Manager) Exists(refs []types.EntityReference, ctx *types.Context,
	success func(index int, exists bool), failure types.ErrorCallback) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i, ref := range refs {
		if elementErr := checkRef(ref); elementErr != nil {
			failure(i, *elementErr)
			continue
		}
		_, ok := m.assets[ref]
		success(i, ok)
	}
	return nil
}

// EntityTraits is not supported.
func (m *Manager) EntityTraits(refs []types.EntityReference, access types.Access, ctx *types.Context,
	success func(index int, traits types.TraitSet), failure types.ErrorCallback) error {
	return fmt.Errorf("%w: %s does not support entity trait introspection", types.ErrNotImplemented, Identifier)
}

// Resolve returns stored data filtered to the requested traits.
func (m *Manager) Resolve(refs []types.EntityReference, traits types.TraitSet, access types.Access,
	ctx *types.Context, success func(index int, data *types.TraitsData), failure types.ErrorCallback) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i, ref := range refs {
		if elementErr := checkRef(ref); elementErr != nil {
			failure(i, *elementErr)
			continue
		}
		asset, ok := m.assets[ref]
		if !ok {
			failure(i, types.BatchElementError{
				Code:    types.ErrorCodeEntityResolutionError,
				Message: fmt.Sprintf("no asset stored for %q", ref),
			})
			continue
		}
		success(i, filterTraits(asset, traits))
	}
	return nil
}

// filterTraits copies the requested traits out of asset.
func filterTraits(asset *types.TraitsData, traits types.TraitSet) *types.TraitsData {
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
	return out
}

// DefaultEntityReference is not supported.
func (m *Manager) DefaultEntityReference(traitSets []types.TraitSet, access types.Access, ctx *types.Context,
	success func(index int, ref *types.EntityReference), failure types.ErrorCallback) error {
	return fmt.Errorf("%w: %s does not support default entity references", types.ErrNotImplemented, Identifier)
}

// Preflight is not supported.
func (m *Manager) Preflight(refs []types.EntityReference, hints []*types.TraitsData, access types.Access,
	ctx *types.Context, success func(index int, working types.EntityReference), failure types.ErrorCallback) error {
	return m.errReadOnly()
}

// Register is not supported.
func (m *Manager) Register(refs []types.EntityReference, data []*types.TraitsData, access types.Access,
	ctx *types.Context, success func(index int, final types.EntityReference), failure types.ErrorCallback) error {
	return m.errReadOnly()
}

func (m *Manager) errReadOnly() error {
	return fmt.Errorf("%w: %s does not support publishing", types.ErrNotImplemented, Identifier)
}

// GetWithRelationship is not supported.
func (m *Manager) GetWithRelationship(refs []types.EntityReference, relationship *types.TraitsData,
	resultTraits types.TraitSet, pageSize int, access types.Access, ctx *types.Context,
	success func(index int, pager types.EntityReferencePager), failure types.ErrorCallback) error {
	return m.errNoRelationships()
}

// GetWithRelationships is not supported.
func (m *Manager) GetWithRelationships(ref types.EntityReference, relationships []*types.TraitsData,
	resultTraits types.TraitSet, pageSize int, access types.Access, ctx *types.Context,
	success func(index int, pager types.EntityReferencePager), failure types.ErrorCallback) error {
	return m.errNoRelationships()
}

func (m *Manager) errNoRelationships() error {
	return fmt.Errorf("%w: %s does not support relationship queries", types.ErrNotImplemented, Identifier)
}
