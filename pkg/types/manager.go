package types

// ErrorCallback receives the failure outcome for one batch element.
type ErrorCallback func(index int, err BatchElementError)

// ManagerInterface is the batch-native contract every manager back-end
// implements. Hosts do not call it directly; they use the convenience
// layer in pkg/manager, which adds input validation and the
// per-calling-convention projections.
//
// Batch methods accept parallel input slices plus one success and one
// error callback. For every input index the implementation invokes
// exactly one of the two callbacks, exactly once, in any order, before
// or after the method returns control flow to loops of its own; no
// concurrency guarantee is imposed or provided. The error return is
// reserved for call-level failures (for example a missing capability
// in a composed manager) and is always raised before any element
// callback fires.
//
// A capability-gated method must only be invoked when HasCapability
// reports true for its gating capability.
type ManagerInterface interface {
	// Identifier returns the unique reverse-DNS identifier of the
	// manager.
	Identifier() string

	// DisplayName returns the human-readable name of the manager.
	DisplayName() string

	// Info returns descriptive information about the manager.
	Info() map[string]any

	// Settings returns the manager's current settings.
	Settings() map[string]any

	// Initialize prepares the manager with the supplied settings.
	// Capability queries are only trustworthy after Initialize
	// returns.
	Initialize(settings map[string]any) error

	// FlushCaches clears any implementation-internal caches.
	FlushCaches()

	// HasCapability reports whether the manager supports the given
	// capability. Side-effect free.
	HasCapability(capability Capability) bool

	// IsEntityReferenceString reports whether the string should be
	// treated as an entity reference by this manager. Gated by
	// CapabilityEntityReferenceIdentification.
	IsEntityReferenceString(candidate string) (bool, error)

	// UpdateTerminology replaces the default terminology with
	// manager-specific terms. Keys absent from the returned map keep
	// their defaults. Gated by CapabilityCustomTerminology.
	UpdateTerminology(terms map[string]string) (map[string]string, error)

	// ManagementPolicy returns one policy TraitsData per requested
	// trait set, describing how the manager handles entities of that
	// type under the given access mode. Gated by
	// CapabilityManagementPolicyQueries.
	ManagementPolicy(traitSets []TraitSet, access Access, ctx *Context) ([]*TraitsData, error)

	// CreateState returns a new opaque state handle. Gated by
	// CapabilityStatefulContexts, as are the three methods below.
	CreateState() (State, error)

	// CreateChildState returns a state handle derived from parent.
	CreateChildState(parent State) (State, error)

	// PersistenceTokenForState renders a state handle as a string
	// token that survives process boundaries.
	PersistenceTokenForState(state State) (string, error)

	// StateFromPersistenceToken restores a state handle from a token.
	StateFromPersistenceToken(token string) (State, error)

	// Exists reports, per reference, whether the entity exists. Gated
	// by CapabilityExistenceQueries.
	Exists(refs []EntityReference, ctx *Context,
		success func(index int, exists bool), failure ErrorCallback) error

	// EntityTraits returns, per reference, the trait set of the entity
	// (AccessRead) or the minimal trait set required to publish to it
	// (AccessWrite). Gated by CapabilityEntityTraitIntrospection.
	EntityTraits(refs []EntityReference, access Access, ctx *Context,
		success func(index int, traits TraitSet), failure ErrorCallback) error

	// Resolve returns, per reference, the entity's data for the
	// requested traits. Gated by CapabilityResolution.
	Resolve(refs []EntityReference, traits TraitSet, access Access, ctx *Context,
		success func(index int, data *TraitsData), failure ErrorCallback) error

	// DefaultEntityReference returns, per trait set, a sensible
	// starting reference for browsing, or nil when the manager has no
	// default. Gated by CapabilityDefaultEntityReferences.
	DefaultEntityReference(traitSets []TraitSet, access Access, ctx *Context,
		success func(index int, ref *EntityReference), failure ErrorCallback) error

	// Preflight returns, per reference, a working reference to use
	// while producing data for a subsequent Register. hints is
	// parallel to refs. Gated by CapabilityPublishing.
	Preflight(refs []EntityReference, hints []*TraitsData, access Access, ctx *Context,
		success func(index int, working EntityReference), failure ErrorCallback) error

	// Register publishes data to each reference and returns, per
	// reference, the final reference of the published entity. data is
	// parallel to refs. Gated by CapabilityPublishing.
	Register(refs []EntityReference, data []*TraitsData, access Access, ctx *Context,
		success func(index int, final EntityReference), failure ErrorCallback) error

	// GetWithRelationship returns, per reference, a pager over the
	// entities related to it by the given relationship. resultTraits
	// filters the related entities by type; pageSize is the maximum
	// page length. Gated by CapabilityRelationshipQueries.
	GetWithRelationship(refs []EntityReference, relationship *TraitsData,
		resultTraits TraitSet, pageSize int, access Access, ctx *Context,
		success func(index int, pager EntityReferencePager), failure ErrorCallback) error

	// GetWithRelationships returns, per relationship, a pager over the
	// entities related to the single given reference. Gated by
	// CapabilityRelationshipQueries.
	GetWithRelationships(ref EntityReference, relationships []*TraitsData,
		resultTraits TraitSet, pageSize int, access Access, ctx *Context,
		success func(index int, pager EntityReferencePager), failure ErrorCallback) error
}
