package manager

import (
	"fmt"
	"log/slog"

	"github.com/mediaforge/manifold/pkg/types"
)

// requiredCapabilities are the baseline capabilities every initialized
// manager must report. Checked once, after Initialize.
var requiredCapabilities = []types.Capability{
	types.CapabilityEntityReferenceIdentification,
	types.CapabilityManagementPolicyQueries,
}

// Manager wraps a types.ManagerInterface with input validation and the
// per-calling-convention batch projections. It holds no mutable state
// of its own; concurrent use is as safe as the wrapped implementation.
type Manager struct {
	impl types.ManagerInterface
	log  *slog.Logger
}

// New returns a Manager over the given implementation. A nil logger
// falls back to slog.Default().
func New(impl types.ManagerInterface, log *slog.Logger) (*Manager, error) {
	if impl == nil {
		return nil, fmt.Errorf("%w: manager implementation must not be nil", types.ErrInvalidInput)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Manager{impl: impl, log: log}, nil
}

// Identifier returns the wrapped manager's identifier.
func (m *Manager) Identifier() string {
	return m.impl.Identifier()
}

// DisplayName returns the wrapped manager's display name.
func (m *Manager) DisplayName() string {
	return m.impl.DisplayName()
}

// Info returns the wrapped manager's descriptive information.
func (m *Manager) Info() map[string]any {
	return m.impl.Info()
}

// Settings returns the wrapped manager's current settings.
func (m *Manager) Settings() map[string]any {
	return m.impl.Settings()
}

// Initialize prepares the wrapped manager and verifies it reports the
// baseline required capabilities. A manager missing one fails with an
// ErrConfiguration-wrapped error; gated operations must not be used
// after a failed Initialize.
func (m *Manager) Initialize(settings map[string]any) error {
	if err := m.impl.Initialize(settings); err != nil {
		return err
	}
	for _, capability := range requiredCapabilities {
		if !m.impl.HasCapability(capability) {
			return fmt.Errorf("%w: manager %q does not report required capability %s",
				types.ErrConfiguration, m.impl.Identifier(), capability)
		}
	}
	m.log.Debug("manager initialized", "identifier", m.impl.Identifier())
	return nil
}

// FlushCaches clears the wrapped manager's caches.
func (m *Manager) FlushCaches() {
	m.impl.FlushCaches()
}

// HasCapability reports whether the wrapped manager supports the
// capability.
func (m *Manager) HasCapability(capability types.Capability) bool {
	return m.impl.HasCapability(capability)
}

// IsEntityReferenceString reports whether the candidate string should
// be treated as an entity reference.
func (m *Manager) IsEntityReferenceString(candidate string) (bool, error) {
	return m.impl.IsEntityReferenceString(candidate)
}

// UpdateTerminology returns the manager's terminology overrides.
func (m *Manager) UpdateTerminology(terms map[string]string) (map[string]string, error) {
	return m.impl.UpdateTerminology(terms)
}

// ManagementPolicy returns one policy per requested trait set.
func (m *Manager) ManagementPolicy(traitSets []types.TraitSet, access types.Access, ctx *types.Context) ([]*types.TraitsData, error) {
	if err := requireNoNilTraitSets("traitSets", traitSets); err != nil {
		return nil, err
	}
	return m.impl.ManagementPolicy(traitSets, access, ctx)
}

// CreateContext returns a fresh Context. For managers reporting
// CapabilityStatefulContexts the context carries a new manager state
// handle.
func (m *Manager) CreateContext() (*types.Context, error) {
	ctx := types.NewContext()
	if m.impl.HasCapability(types.CapabilityStatefulContexts) {
		state, err := m.impl.CreateState()
		if err != nil {
			return nil, err
		}
		ctx.ManagerState = state
	}
	return ctx, nil
}

// CreateChildContext returns a Context derived from parent, sharing
// its locale and, for stateful managers, holding a child state handle.
func (m *Manager) CreateChildContext(parent *types.Context) (*types.Context, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: parent context must not be nil", types.ErrInvalidInput)
	}
	child := &types.Context{Locale: parent.Locale}
	if parent.ManagerState != nil {
		state, err := m.impl.CreateChildState(parent.ManagerState)
		if err != nil {
			return nil, err
		}
		child.ManagerState = state
	}
	return child, nil
}

// PersistenceTokenForContext renders the context's manager state as a
// persistable token. Contexts without state yield an empty token.
func (m *Manager) PersistenceTokenForContext(ctx *types.Context) (string, error) {
	if ctx == nil {
		return "", fmt.Errorf("%w: context must not be nil", types.ErrInvalidInput)
	}
	if ctx.ManagerState == nil {
		return "", nil
	}
	return m.impl.PersistenceTokenForState(ctx.ManagerState)
}

// ContextFromPersistenceToken restores a context from a token produced
// by PersistenceTokenForContext. An empty token yields a stateless
// context.
func (m *Manager) ContextFromPersistenceToken(token string) (*types.Context, error) {
	ctx := types.NewContext()
	if token == "" {
		return ctx, nil
	}
	state, err := m.impl.StateFromPersistenceToken(token)
	if err != nil {
		return nil, err
	}
	ctx.ManagerState = state
	return ctx, nil
}
