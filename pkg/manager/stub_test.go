package manager

import (
	"fmt"

	"github.com/mediaforge/manifold/pkg/types"
)

// stubManager is a configurable ManagerInterface used by the dispatch
// tests. Batch behavior is overridden per test through the *Fn fields;
// unset operations succeed with zero values. Every back-end invocation
// is appended to calls so tests can assert the back-end was (or was
// not) reached.
type stubManager struct {
	capabilities map[types.Capability]bool
	calls        []string

	initializeErr error

	existsFn  func(refs []types.EntityReference, success func(int, bool), failure types.ErrorCallback) error
	traitsFn  func(refs []types.EntityReference, success func(int, types.TraitSet), failure types.ErrorCallback) error
	resolveFn func(refs []types.EntityReference, success func(int, *types.TraitsData), failure types.ErrorCallback) error
	defaultFn func(traitSets []types.TraitSet, success func(int, *types.EntityReference), failure types.ErrorCallback) error
	publishFn func(refs []types.EntityReference, data []*types.TraitsData, success func(int, types.EntityReference), failure types.ErrorCallback) error
	relateFn  func(n int, success func(int, types.EntityReferencePager), failure types.ErrorCallback) error
}

func newStubManager(capabilities ...types.Capability) *stubManager {
	s := &stubManager{capabilities: make(map[types.Capability]bool)}
	for _, c := range capabilities {
		s.capabilities[c] = true
	}
	return s
}

func (s *stubManager) record(method string) {
	s.calls = append(s.calls, method)
}

func (s *stubManager) Identifier() string       { return "org.example.test.stub" }
func (s *stubManager) DisplayName() string      { return "Stub Manager" }
func (s *stubManager) Info() map[string]any     { return map[string]any{} }
func (s *stubManager) Settings() map[string]any { return map[string]any{} }

func (s *stubManager) Initialize(settings map[string]any) error {
	s.record("Initialize")
	return s.initializeErr
}

func (s *stubManager) FlushCaches() { s.record("FlushCaches") }

func (s *stubManager) HasCapability(capability types.Capability) bool {
	return s.capabilities[capability]
}

func (s *stubManager) IsEntityReferenceString(candidate string) (bool, error) {
	s.record("IsEntityReferenceString")
	return true, nil
}

func (s *stubManager) UpdateTerminology(terms map[string]string) (map[string]string, error) {
	s.record("UpdateTerminology")
	return terms, nil
}

func (s *stubManager) ManagementPolicy(traitSets []types.TraitSet, access types.Access, ctx *types.Context) ([]*types.TraitsData, error) {
	s.record("ManagementPolicy")
	policies := make([]*types.TraitsData, len(traitSets))
	for i := range policies {
		policies[i] = types.NewTraitsData()
	}
	return policies, nil
}

func (s *stubManager) CreateState() (types.State, error) {
	s.record("CreateState")
	return "stub-state", nil
}

func (s *stubManager) CreateChildState(parent types.State) (types.State, error) {
	s.record("CreateChildState")
	return fmt.Sprintf("%v/child", parent), nil
}

func (s *stubManager) PersistenceTokenForState(state types.State) (string, error) {
	s.record("PersistenceTokenForState")
	return fmt.Sprintf("token:%v", state), nil
}

func (s *stubManager) StateFromPersistenceToken(token string) (types.State, error) {
	s.record("StateFromPersistenceToken")
	return types.State(token), nil
}

func (s *stubManager) Exists(refs []types.EntityReference, ctx *types.Context,
	success func(index int, exists bool), failure types.ErrorCallback) error {
	s.record("Exists")
	if s.existsFn != nil {
		return s.existsFn(refs, success, failure)
	}
	for i := range refs {
		success(i, true)
	}
	return nil
}

func (s *stubManager) EntityTraits(refs []types.EntityReference, access types.Access, ctx *types.Context,
	success func(index int, traits types.TraitSet), failure types.ErrorCallback) error {
	s.record("EntityTraits")
	if s.traitsFn != nil {
		return s.traitsFn(refs, success, failure)
	}
	for i := range refs {
		success(i, types.NewTraitSet())
	}
	return nil
}

func (s *stubManager) Resolve(refs []types.EntityReference, traits types.TraitSet, access types.Access,
	ctx *types.Context, success func(index int, data *types.TraitsData), failure types.ErrorCallback) error {
	s.record("Resolve")
	if s.resolveFn != nil {
		return s.resolveFn(refs, success, failure)
	}
	for i := range refs {
		success(i, types.NewTraitsData())
	}
	return nil
}

func (s *stubManager) DefaultEntityReference(traitSets []types.TraitSet, access types.Access, ctx *types.Context,
	success func(index int, ref *types.EntityReference), failure types.ErrorCallback) error {
	s.record("DefaultEntityReference")
	if s.defaultFn != nil {
		return s.defaultFn(traitSets, success, failure)
	}
	for i := range traitSets {
		success(i, nil)
	}
	return nil
}

func (s *stubManager) Preflight(refs []types.EntityReference, hints []*types.TraitsData, access types.Access,
	ctx *types.Context, success func(index int, working types.EntityReference), failure types.ErrorCallback) error {
	s.record("Preflight")
	if s.publishFn != nil {
		return s.publishFn(refs, hints, success, failure)
	}
	for i, ref := range refs {
		success(i, ref)
	}
	return nil
}

func (s *stubManager) Register(refs []types.EntityReference, data []*types.TraitsData, access types.Access,
	ctx *types.Context, success func(index int, final types.EntityReference), failure types.ErrorCallback) error {
	s.record("Register")
	if s.publishFn != nil {
		return s.publishFn(refs, data, success, failure)
	}
	for i, ref := range refs {
		success(i, ref)
	}
	return nil
}

func (s *stubManager) GetWithRelationship(refs []types.EntityReference, relationship *types.TraitsData,
	resultTraits types.TraitSet, pageSize int, access types.Access, ctx *types.Context,
	success func(index int, pager types.EntityReferencePager), failure types.ErrorCallback) error {
	s.record("GetWithRelationship")
	if s.relateFn != nil {
		return s.relateFn(len(refs), success, failure)
	}
	for i := range refs {
		success(i, &stubPager{})
	}
	return nil
}

func (s *stubManager) GetWithRelationships(ref types.EntityReference, relationships []*types.TraitsData,
	resultTraits types.TraitSet, pageSize int, access types.Access, ctx *types.Context,
	success func(index int, pager types.EntityReferencePager), failure types.ErrorCallback) error {
	s.record("GetWithRelationships")
	if s.relateFn != nil {
		return s.relateFn(len(relationships), success, failure)
	}
	for i := range relationships {
		success(i, &stubPager{})
	}
	return nil
}

// stubPager is a one-page pager over a fixed reference slice.
type stubPager struct {
	refs     []types.EntityReference
	advanced bool
	closed   bool
}

func (p *stubPager) HasNext() bool { return false }

func (p *stubPager) Get() []types.EntityReference {
	if p.advanced {
		return nil
	}
	return p.refs
}

func (p *stubPager) Next() { p.advanced = true }

func (p *stubPager) Close() error {
	p.closed = true
	return nil
}
