// Package sqlite implements the SQLite-backed reference manager. It
// persists assets and their relationships in a single database file
// and supports the full read and publish surface of the manager
// contract.
package sqlite

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mediaforge/manifold/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Identifier is the reverse-DNS identifier of the SQLite manager.
const Identifier = "org.manifold.manager.sqlite"

// RefPrefix is the scheme prefix of SQLite entity references.
const RefPrefix = "manifold-sqlite://"

// SettingDatabasePath selects the database file. Defaults to
// defaultDatabasePath when absent.
const SettingDatabasePath = "database_path"

// SettingDefaults maps comma-joined sorted trait IDs to the default
// entity reference for that trait set.
const SettingDefaults = "defaults"

const defaultDatabasePath = "manifold.db"

// capabilities supported by the SQLite manager.
var capabilities = map[types.Capability]bool{
	types.CapabilityEntityReferenceIdentification: true,
	types.CapabilityManagementPolicyQueries:       true,
	types.CapabilityStatefulContexts:              true,
	types.CapabilityResolution:                    true,
	types.CapabilityPublishing:                    true,
	types.CapabilityRelationshipQueries:           true,
	types.CapabilityExistenceQueries:              true,
	types.CapabilityDefaultEntityReferences:       true,
	types.CapabilityEntityTraitIntrospection:      true,
}

// Manager implements the manager contract over a SQLite database.
type Manager struct {
	mu          sync.RWMutex
	initialized bool
	settings    map[string]any
	defaults    map[string]types.EntityReference
	db          *sql.DB
}

var _ types.ManagerInterface = (*Manager)(nil)

// NewManager returns an uninitialized SQLite manager; call Initialize
// before use.
func NewManager() *Manager {
	return &Manager{
		settings: make(map[string]any),
		defaults: make(map[string]types.EntityReference),
	}
}

// Identifier returns the manager identifier.
func (m *Manager) Identifier() string { return Identifier }

// DisplayName returns the human-readable manager name.
func (m *Manager) DisplayName() string { return "Manifold SQLite Manager" }

// Info describes the manager.
func (m *Manager) Info() map[string]any {
	return map[string]any{
		"identifier": Identifier,
		"persistent": true,
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

// Initialize opens the database named by the database_path setting,
// applies the schema, and loads default-reference mappings. Calling
// Initialize on an initialized manager closes and reopens the
// database with the new settings.
func (m *Manager) Initialize(settings map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := defaultDatabasePath
	if raw, ok := settings[SettingDatabasePath]; ok {
		s, ok := raw.(string)
		if !ok || s == "" {
			return fmt.Errorf("%w: %s must be a non-empty string", types.ErrInvalidInput, SettingDatabasePath)
		}
		path = s
	}

	defaults := make(map[string]types.EntityReference)
	if raw, ok := settings[SettingDefaults]; ok {
		byKey, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s must be a map of trait-set key to reference", types.ErrInvalidInput, SettingDefaults)
		}
		for key, value := range byKey {
			ref, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: default for %q must be a reference string", types.ErrInvalidInput, key)
			}
			defaults[key] = types.EntityReference(ref)
		}
	}

	if m.db != nil {
		if err := m.db.Close(); err != nil {
			return fmt.Errorf("close previous database: %w", err)
		}
		m.db = nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	m.settings = make(map[string]any, len(settings))
	for k, v := range settings {
		m.settings[k] = v
	}
	m.defaults = defaults
	m.db = db
	m.initialized = true
	return nil
}

// Close releases the database handle. Idempotent.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	m.initialized = false
	return err
}

// FlushCaches is a no-op; all reads go to the database.
func (m *Manager) FlushCaches() {}

// HasCapability reports support for the given capability.
func (m *Manager) HasCapability(capability types.Capability) bool {
	return capabilities[capability]
}

// IsEntityReferenceString reports whether candidate carries the SQLite
// reference prefix.
func (m *Manager) IsEntityReferenceString(candidate string) (bool, error) {
	return strings.HasPrefix(candidate, RefPrefix), nil
}

// UpdateTerminology is not supported.
func (m *Manager) UpdateTerminology(terms map[string]string) (map[string]string, error) {
	return nil, fmt.Errorf("%w: %s does not support custom terminology", types.ErrNotImplemented, Identifier)
}

// ManagementPolicy marks every requested trait set as managed for both
// read and publish access.
func (m *Manager) ManagementPolicy(traitSets []types.TraitSet, access types.Access, ctx *types.Context) ([]*types.TraitsData, error) {
	policies := make([]*types.TraitsData, len(traitSets))
	for i := range traitSets {
		policy := types.NewTraitsData()
		policy.AddTrait("manifold.policy.managed")
		policies[i] = policy
	}
	return policies, nil
}

// CreateState mints a new session state handle.
func (m *Manager) CreateState() (types.State, error) {
	return newStateToken(), nil
}

// CreateChildState mints a state handle scoped under parent.
func (m *Manager) CreateChildState(parent types.State) (types.State, error) {
	if _, ok := parent.(string); !ok {
		return nil, fmt.Errorf("%w: state handle was not created by %s", types.ErrInvalidInput, Identifier)
	}
	return newStateToken(), nil
}

// PersistenceTokenForState renders the state handle as its token.
func (m *Manager) PersistenceTokenForState(state types.State) (string, error) {
	token, ok := state.(string)
	if !ok {
		return "", fmt.Errorf("%w: state handle was not created by %s", types.ErrInvalidInput, Identifier)
	}
	return token, nil
}

// StateFromPersistenceToken restores a state handle from its token.
func (m *Manager) StateFromPersistenceToken(token string) (types.State, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, fmt.Errorf("%w: malformed persistence token %q", types.ErrInvalidInput, token)
	}
	return types.State(token), nil
}

// newStateToken generates a UUID v7 state token, falling back to v4
// when v7 generation fails.
func newStateToken() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// requireInitialized guards data operations. Callers hold m.mu.
func (m *Manager) requireInitialized() error {
	if !m.initialized {
		return fmt.Errorf("%w: %s has not been initialized", types.ErrConfiguration, Identifier)
	}
	return nil
}

// marshalTraits renders trait data as the traits_json column value.
func marshalTraits(data *types.TraitsData) (string, error) {
	byTrait := make(map[string]map[string]any)
	for _, traitID := range data.TraitSet().IDs() {
		props := data.Properties(traitID)
		if props == nil {
			props = map[string]any{}
		}
		byTrait[traitID] = props
	}
	raw, err := json.Marshal(byTrait)
	if err != nil {
		return "", fmt.Errorf("marshal traits: %w", err)
	}
	return string(raw), nil
}

// unmarshalTraits hydrates trait data from the traits_json column.
func unmarshalTraits(raw string) (*types.TraitsData, error) {
	var byTrait map[string]map[string]any
	if err := json.Unmarshal([]byte(raw), &byTrait); err != nil {
		return nil, fmt.Errorf("unmarshal traits: %w", err)
	}
	data := types.NewTraitsData()
	for traitID, props := range byTrait {
		data.AddTrait(traitID)
		for key, value := range props {
			data.SetProperty(traitID, key, value)
		}
	}
	return data, nil
}
