package hybrid

import (
	"github.com/mediaforge/manifold/pkg/types"
)

// stubConstituent is a minimal ManagerInterface for routing tests. It
// records every operation invoked on it.
type stubConstituent struct {
	identifier   string
	displayName  string
	info         map[string]any
	settings     map[string]any
	capabilities map[types.Capability]bool
	calls        []string
}

func newStubConstituent(identifier string, capabilities ...types.Capability) *stubConstituent {
	s := &stubConstituent{
		identifier:   identifier,
		displayName:  identifier,
		info:         map[string]any{},
		settings:     map[string]any{},
		capabilities: make(map[types.Capability]bool),
	}
	for _, c := range capabilities {
		s.capabilities[c] = true
	}
	return s
}

func (s *stubConstituent) record(method string) {
	s.calls = append(s.calls, method)
}

func (s *stubConstituent) Identifier() string       { return s.identifier }
func (s *stubConstituent) DisplayName() string      { return s.displayName }
func (s *stubConstituent) Info() map[string]any     { return s.info }
func (s *stubConstituent) Settings() map[string]any { return s.settings }

func (s *stubConstituent) Initialize(settings map[string]any) error {
	s.record("Initialize")
	return nil
}

func (s *stubConstituent) FlushCaches() { s.record("FlushCaches") }

func (s *stubConstituent) HasCapability(capability types.Capability) bool {
	return s.capabilities[capability]
}

func (s *stubConstituent) IsEntityReferenceString(candidate string) (bool, error) {
	s.record("IsEntityReferenceString")
	return true, nil
}

func (s *stubConstituent) UpdateTerminology(terms map[string]string) (map[string]string, error) {
	s.record("UpdateTerminology")
	return terms, nil
}

func (s *stubConstituent) ManagementPolicy(traitSets []types.TraitSet, access types.Access, ctx *types.Context) ([]*types.TraitsData, error) {
	s.record("ManagementPolicy")
	return make([]*types.TraitsData, len(traitSets)), nil
}

func (s *stubConstituent) CreateState() (types.State, error) {
	s.record("CreateState")
	return s.identifier + ":state", nil
}

func (s *stubConstituent) CreateChildState(parent types.State) (types.State, error) {
	s.record("CreateChildState")
	return parent, nil
}

func (s *stubConstituent) PersistenceTokenForState(state types.State) (string, error) {
	s.record("PersistenceTokenForState")
	return s.identifier, nil
}

func (s *stubConstituent) StateFromPersistenceToken(token string) (types.State, error) {
	s.record("StateFromPersistenceToken")
	return token, nil
}

func (s *stubConstituent) Exists(refs []types.EntityReference, ctx *types.Context,
	success func(index int, exists bool), failure types.ErrorCallback) error {
	s.record("Exists")
	for i := range refs {
		success(i, true)
	}
	return nil
}

func (s *stubConstituent) EntityTraits(refs []types.EntityReference, access types.Access, ctx *types.Context,
	success func(index int, traits types.TraitSet), failure types.ErrorCallback) error {
	s.record("EntityTraits")
	for i := range refs {
		success(i, types.NewTraitSet())
	}
	return nil
}

func (s *stubConstituent) Resolve(refs []types.EntityReference, traits types.TraitSet, access types.Access,
	ctx *types.Context, success func(index int, data *types.TraitsData), failure types.ErrorCallback) error {
	s.record("Resolve")
	for i := range refs {
		data := types.NewTraitsData()
		data.SetProperty("origin", "identifier", s.identifier)
		success(i, data)
	}
	return nil
}

func (s *stubConstituent) DefaultEntityReference(traitSets []types.TraitSet, access types.Access, ctx *types.Context,
	success func(index int, ref *types.EntityReference), failure types.ErrorCallback) error {
	s.record("DefaultEntityReference")
	for i := range traitSets {
		success(i, nil)
	}
	return nil
}

func (s *stubConstituent) Preflight(refs []types.EntityReference, hints []*types.TraitsData, access types.Access,
	ctx *types.Context, success func(index int, working types.EntityReference), failure types.ErrorCallback) error {
	s.record("Preflight")
	for i, ref := range refs {
		success(i, ref)
	}
	return nil
}

func (s *stubConstituent) Register(refs []types.EntityReference, data []*types.TraitsData, access types.Access,
	ctx *types.Context, success func(index int, final types.EntityReference), failure types.ErrorCallback) error {
	s.record("Register")
	for i, ref := range refs {
		success(i, ref)
	}
	return nil
}

func (s *stubConstituent) GetWithRelationship(refs []types.EntityReference, relationship *types.TraitsData,
	resultTraits types.TraitSet, pageSize int, access types.Access, ctx *types.Context,
	success func(index int, pager types.EntityReferencePager), failure types.ErrorCallback) error {
	s.record("GetWithRelationship")
	for i := range refs {
		success(i, nil)
	}
	return nil
}

func (s *stubConstituent) GetWithRelationships(ref types.EntityReference, relationships []*types.TraitsData,
	resultTraits types.TraitSet, pageSize int, access types.Access, ctx *types.Context,
	success func(index int, pager types.EntityReferencePager), failure types.ErrorCallback) error {
	s.record("GetWithRelationships")
	for i := range relationships {
		success(i, nil)
	}
	return nil
}
