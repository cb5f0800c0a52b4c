package sqlite

import "github.com/mediaforge/manifold/pkg/types"

// refPager pages over a materialized reference list. The list is
// copied out of the query results at construction, so the pager stays
// valid after the caller releases the query arguments and after the
// manager moves on to other work.
type refPager struct {
	refs     []types.EntityReference
	pageSize int
	offset   int
}

var _ types.EntityReferencePager = (*refPager)(nil)

// newRefPager copies refs and returns a pager positioned on the first
// page.
func newRefPager(refs []types.EntityReference, pageSize int) *refPager {
	owned := make([]types.EntityReference, len(refs))
	copy(owned, refs)
	return &refPager{refs: owned, pageSize: pageSize}
}

// HasNext reports whether a page follows the current one.
func (p *refPager) HasNext() bool {
	return p.offset+p.pageSize < len(p.refs)
}

// Get returns a copy of the current page.
func (p *refPager) Get() []types.EntityReference {
	if p.offset >= len(p.refs) {
		return nil
	}
	end := p.offset + p.pageSize
	if end > len(p.refs) {
		end = len(p.refs)
	}
	page := make([]types.EntityReference, end-p.offset)
	copy(page, p.refs[p.offset:end])
	return page
}

// Next advances to the next page; advancing past the end leaves the
// pager on an empty page.
func (p *refPager) Next() {
	if p.offset < len(p.refs) {
		p.offset += p.pageSize
	}
}

// Close is a no-op; the page data is already materialized.
func (p *refPager) Close() error {
	return nil
}
