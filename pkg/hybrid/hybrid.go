// Package hybrid composes an ordered list of manager implementations
// into one logical manager. Capability-gated operations route to the
// first constituent reporting the required capability; informational
// calls aggregate across all constituents; lifecycle calls broadcast.
package hybrid

import (
	"fmt"
	"log/slog"

	"github.com/mediaforge/manifold/pkg/types"
)

// Hybrid implements types.ManagerInterface over an ordered, immutable
// list of constituent managers. The list is fixed at construction;
// concurrent calls are safe as long as the constituents themselves are
// safe for concurrent invocation.
type Hybrid struct {
	managers []types.ManagerInterface
	log      *slog.Logger
}

var _ types.ManagerInterface = (*Hybrid)(nil)

// New returns a Hybrid over the given constituents, in routing
// precedence order. The list must be non-empty and hold no nil
// elements. A nil logger falls back to slog.Default().
func New(managers []types.ManagerInterface, log *slog.Logger) (*Hybrid, error) {
	if len(managers) == 0 {
		return nil, fmt.Errorf("%w: at least one constituent manager is required", types.ErrInvalidInput)
	}
	for i, m := range managers {
		if m == nil {
			return nil, fmt.Errorf("%w: constituent manager at position %d is nil", types.ErrInvalidInput, i)
		}
	}
	if log == nil {
		log = slog.Default()
	}
	constituents := make([]types.ManagerInterface, len(managers))
	copy(constituents, managers)
	return &Hybrid{managers: constituents, log: log}, nil
}

// route returns the first constituent reporting the capability, in
// construction order. No constituent is invoked when none is capable;
// the failure is synchronous and never delivered via an element
// callback.
func (h *Hybrid) route(capability types.Capability) (types.ManagerInterface, error) {
	for _, m := range h.managers {
		if m.HasCapability(capability) {
			h.log.Debug("routing to constituent", "capability", capability, "identifier", m.Identifier())
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: no constituent manager supports %s", types.ErrNotImplemented, capability)
}

// Identifier returns the first constituent's identifier.
func (h *Hybrid) Identifier() string {
	return h.managers[0].Identifier()
}

// DisplayName returns the first constituent's display name.
func (h *Hybrid) DisplayName() string {
	return h.managers[0].DisplayName()
}

// Info merges every constituent's info, key by key. Earlier
// constituents win on key collisions; later constituents only
// contribute keys absent from all earlier results.
func (h *Hybrid) Info() map[string]any {
	return h.merge(types.ManagerInterface.Info)
}

// Settings merges every constituent's settings with the same
// precedence as Info.
func (h *Hybrid) Settings() map[string]any {
	return h.merge(types.ManagerInterface.Settings)
}

func (h *Hybrid) merge(query func(types.ManagerInterface) map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, m := range h.managers {
		for key, value := range query(m) {
			if _, ok := merged[key]; !ok {
				merged[key] = value
			}
		}
	}
	return merged
}

// Initialize initializes every constituent, in order, with the same
// settings. The first failure stops the broadcast. Capability queries
// are only trustworthy after Initialize succeeds.
func (h *Hybrid) Initialize(settings map[string]any) error {
	for _, m := range h.managers {
		if err := m.Initialize(settings); err != nil {
			return fmt.Errorf("initialize %s: %w", m.Identifier(), err)
		}
	}
	return nil
}

// FlushCaches flushes every constituent, in order.
func (h *Hybrid) FlushCaches() {
	for _, m := range h.managers {
		m.FlushCaches()
	}
}

// HasCapability reports whether any constituent supports the
// capability. The union is recomputed on every call; constituent
// capability sets may settle during Initialize.
func (h *Hybrid) HasCapability(capability types.Capability) bool {
	for _, m := range h.managers {
		if m.HasCapability(capability) {
			return true
		}
	}
	return false
}

// IsEntityReferenceString asks the first constituent supporting
// entity-reference identification.
func (h *Hybrid) IsEntityReferenceString(candidate string) (bool, error) {
	m, err := h.route(types.CapabilityEntityReferenceIdentification)
	if err != nil {
		return false, err
	}
	return m.IsEntityReferenceString(candidate)
}

// UpdateTerminology asks the first constituent supporting custom
// terminology.
func (h *Hybrid) UpdateTerminology(terms map[string]string) (map[string]string, error) {
	m, err := h.route(types.CapabilityCustomTerminology)
	if err != nil {
		return nil, err
	}
	return m.UpdateTerminology(terms)
}

// ManagementPolicy routes to the first constituent supporting
// management-policy queries.
func (h *Hybrid) ManagementPolicy(traitSets []types.TraitSet, access types.Access, ctx *types.Context) ([]*types.TraitsData, error) {
	m, err := h.route(types.CapabilityManagementPolicyQueries)
	if err != nil {
		return nil, err
	}
	return m.ManagementPolicy(traitSets, access, ctx)
}

// CreateState routes to the first stateful constituent.
func (h *Hybrid) CreateState() (types.State, error) {
	m, err := h.route(types.CapabilityStatefulContexts)
	if err != nil {
		return nil, err
	}
	return m.CreateState()
}

// CreateChildState routes to the first stateful constituent.
func (h *Hybrid) CreateChildState(parent types.State) (types.State, error) {
	m, err := h.route(types.CapabilityStatefulContexts)
	if err != nil {
		return nil, err
	}
	return m.CreateChildState(parent)
}

// PersistenceTokenForState routes to the first stateful constituent.
func (h *Hybrid) PersistenceTokenForState(state types.State) (string, error) {
	m, err := h.route(types.CapabilityStatefulContexts)
	if err != nil {
		return "", err
	}
	return m.PersistenceTokenForState(state)
}

// StateFromPersistenceToken routes to the first stateful constituent.
func (h *Hybrid) StateFromPersistenceToken(token string) (types.State, error) {
	m, err := h.route(types.CapabilityStatefulContexts)
	if err != nil {
		return nil, err
	}
	return m.StateFromPersistenceToken(token)
}

// Exists routes to the first constituent supporting existence queries,
// passing all arguments and both callbacks through unmodified.
func (h *Hybrid) Exists(refs []types.EntityReference, ctx *types.Context,
	success func(index int, exists bool), failure types.ErrorCallback) error {
	m, err := h.route(types.CapabilityExistenceQueries)
	if err != nil {
		return err
	}
	return m.Exists(refs, ctx, success, failure)
}

// EntityTraits routes to the first constituent supporting entity-trait
// introspection.
func (h *Hybrid) EntityTraits(refs []types.EntityReference, access types.Access, ctx *types.Context,
	success func(index int, traits types.TraitSet), failure types.ErrorCallback) error {
	m, err := h.route(types.CapabilityEntityTraitIntrospection)
	if err != nil {
		return err
	}
	return m.EntityTraits(refs, access, ctx, success, failure)
}

// Resolve routes to the first constituent supporting resolution.
func (h *Hybrid) Resolve(refs []types.EntityReference, traits types.TraitSet, access types.Access,
	ctx *types.Context, success func(index int, data *types.TraitsData), failure types.ErrorCallback) error {
	m, err := h.route(types.CapabilityResolution)
	if err != nil {
		return err
	}
	return m.Resolve(refs, traits, access, ctx, success, failure)
}

// DefaultEntityReference routes to the first constituent supporting
// default entity references.
func (h *Hybrid) DefaultEntityReference(traitSets []types.TraitSet, access types.Access, ctx *types.Context,
	success func(index int, ref *types.EntityReference), failure types.ErrorCallback) error {
	m, err := h.route(types.CapabilityDefaultEntityReferences)
	if err != nil {
		return err
	}
	return m.DefaultEntityReference(traitSets, access, ctx, success, failure)
}

// Preflight routes to the first constituent supporting publishing.
func (h *Hybrid) Preflight(refs []types.EntityReference, hints []*types.TraitsData, access types.Access,
	ctx *types.Context, success func(index int, working types.EntityReference), failure types.ErrorCallback) error {
	m, err := h.route(types.CapabilityPublishing)
	if err != nil {
		return err
	}
	return m.Preflight(refs, hints, access, ctx, success, failure)
}

// Register routes to the first constituent supporting publishing.
func (h *Hybrid) Register(refs []types.EntityReference, data []*types.TraitsData, access types.Access,
	ctx *types.Context, success func(index int, final types.EntityReference), failure types.ErrorCallback) error {
	m, err := h.route(types.CapabilityPublishing)
	if err != nil {
		return err
	}
	return m.Register(refs, data, access, ctx, success, failure)
}

// GetWithRelationship routes to the first constituent supporting
// relationship queries. The resulting pagers stay owned by that single
// constituent; pager state is never merged across constituents.
func (h *Hybrid) GetWithRelationship(refs []types.EntityReference, relationship *types.TraitsData,
	resultTraits types.TraitSet, pageSize int, access types.Access, ctx *types.Context,
	success func(index int, pager types.EntityReferencePager), failure types.ErrorCallback) error {
	m, err := h.route(types.CapabilityRelationshipQueries)
	if err != nil {
		return err
	}
	return m.GetWithRelationship(refs, relationship, resultTraits, pageSize, access, ctx, success, failure)
}

// GetWithRelationships routes to the first constituent supporting
// relationship queries.
func (h *Hybrid) GetWithRelationships(ref types.EntityReference, relationships []*types.TraitsData,
	resultTraits types.TraitSet, pageSize int, access types.Access, ctx *types.Context,
	success func(index int, pager types.EntityReferencePager), failure types.ErrorCallback) error {
	m, err := h.route(types.CapabilityRelationshipQueries)
	if err != nil {
		return err
	}
	return m.GetWithRelationships(ref, relationships, resultTraits, pageSize, access, ctx, success, failure)
}
