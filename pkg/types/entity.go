package types

// EntityReference is an opaque, manager-defined string identifying one
// entity. Hosts must not parse or construct references themselves;
// only the owning manager understands their format.
type EntityReference string

// String returns the reference as a plain string.
func (r EntityReference) String() string {
	return string(r)
}

// EntityReferencePager is a cursor over a potentially large
// relationship-query result set. A pager is owned by the single
// implementation that answered the query that produced it; it must not
// retain references to the caller's input arguments.
type EntityReferencePager interface {
	// HasNext reports whether a further page is available after the
	// current one.
	HasNext() bool

	// Get returns the current page of references. The returned slice
	// is owned by the caller.
	Get() []EntityReference

	// Next advances to the next page. Advancing past the last page
	// leaves the pager on an empty page.
	Next()

	// Close releases any resources held by the pager. Idempotent.
	Close() error
}
