package types

// Capability is a named, queryable boolean feature flag on a manager
// implementation. Each capability gates the operations listed on its
// constant; an implementation that reports false for a capability must
// not have the corresponding methods invoked.
type Capability int

// The closed set of capabilities.
const (
	// CapabilityEntityReferenceIdentification gates
	// IsEntityReferenceString.
	CapabilityEntityReferenceIdentification Capability = iota
	// CapabilityManagementPolicyQueries gates ManagementPolicy.
	CapabilityManagementPolicyQueries
	// CapabilityStatefulContexts gates CreateState, CreateChildState,
	// PersistenceTokenForState and StateFromPersistenceToken.
	CapabilityStatefulContexts
	// CapabilityCustomTerminology gates UpdateTerminology.
	CapabilityCustomTerminology
	// CapabilityResolution gates Resolve.
	CapabilityResolution
	// CapabilityPublishing gates Preflight and Register.
	CapabilityPublishing
	// CapabilityRelationshipQueries gates GetWithRelationship and
	// GetWithRelationships.
	CapabilityRelationshipQueries
	// CapabilityExistenceQueries gates Exists.
	CapabilityExistenceQueries
	// CapabilityDefaultEntityReferences gates DefaultEntityReference.
	CapabilityDefaultEntityReferences
	// CapabilityEntityTraitIntrospection gates EntityTraits.
	CapabilityEntityTraitIntrospection
)

// capabilityNames maps capabilities to their display names.
var capabilityNames = map[Capability]string{
	CapabilityEntityReferenceIdentification: "entityReferenceIdentification",
	CapabilityManagementPolicyQueries:       "managementPolicyQueries",
	CapabilityStatefulContexts:              "statefulContexts",
	CapabilityCustomTerminology:             "customTerminology",
	CapabilityResolution:                    "resolution",
	CapabilityPublishing:                    "publishing",
	CapabilityRelationshipQueries:           "relationshipQueries",
	CapabilityExistenceQueries:              "existenceQueries",
	CapabilityDefaultEntityReferences:       "defaultEntityReferences",
	CapabilityEntityTraitIntrospection:      "entityTraitIntrospection",
}

// String returns the display name of the capability.
func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return "unknown"
}

// AllCapabilities lists every capability, in declaration order.
func AllCapabilities() []Capability {
	return []Capability{
		CapabilityEntityReferenceIdentification,
		CapabilityManagementPolicyQueries,
		CapabilityStatefulContexts,
		CapabilityCustomTerminology,
		CapabilityResolution,
		CapabilityPublishing,
		CapabilityRelationshipQueries,
		CapabilityExistenceQueries,
		CapabilityDefaultEntityReferences,
		CapabilityEntityTraitIntrospection,
	}
}
