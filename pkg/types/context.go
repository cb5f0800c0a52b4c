package types

// State is an opaque manager-session handle, created by managers that
// report CapabilityStatefulContexts. The dispatch and composition
// layers never inspect it.
type State interface{}

// Context carries per-session information through every operation:
// the host's locale traits and, for stateful managers, the manager
// state handle. Both are passed through opaquely.
type Context struct {
	// Locale describes the calling host environment, as trait data.
	Locale *TraitsData

	// ManagerState is the opaque state handle for stateful managers,
	// nil otherwise.
	ManagerState State
}

// NewContext returns a Context with an empty locale and no manager
// state.
func NewContext() *Context {
	return &Context{Locale: NewTraitsData()}
}
