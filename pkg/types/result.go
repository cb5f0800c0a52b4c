package types

// Result holds the outcome of one batch element: either a value or a
// BatchElementError, never both.
type Result[T any] struct {
	Value T
	Err   *BatchElementError
}

// Ok reports whether the element succeeded.
func (r Result[T]) Ok() bool {
	return r.Err == nil
}
