package manager

import (
	"fmt"

	"github.com/mediaforge/manifold/pkg/types"
)

// gather performs one batch-native call and collects per-element
// outcomes into input order. The two internal callbacks write into a
// slot array indexed by element position, so the arrival order of
// callbacks is irrelevant. invoke's error is a call-level failure and
// yields no results.
func gather[T any](n int, invoke func(success func(int, T), failure types.ErrorCallback) error) ([]types.Result[T], error) {
	results := make([]types.Result[T], n)
	err := invoke(
		func(index int, value T) {
			results[index] = types.Result[T]{Value: value}
		},
		func(index int, elementErr types.BatchElementError) {
			e := elementErr
			results[index] = types.Result[T]{Err: &e}
		},
	)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// firstFailure scans results in index order and converts the first
// error slot into a BatchElementFailure. All outcomes have already
// been observed by the time this runs; the lowest-indexed failure
// wins, not the first to arrive.
func firstFailure[T any](results []types.Result[T], access types.Access, refAt func(index int) string) error {
	for i, r := range results {
		if r.Err != nil {
			return &types.BatchElementFailure{
				Index:  i,
				Err:    *r.Err,
				Access: access,
				Ref:    refAt(i),
			}
		}
	}
	return nil
}

// successValues unpacks an all-success result slice. Call only after
// firstFailure returned nil.
func successValues[T any](results []types.Result[T]) []T {
	values := make([]T, len(results))
	for i, r := range results {
		values[i] = r.Value
	}
	return values
}

// singleResult projects a one-element result slice onto the singular
// conventions.
func singleResult[T any](results []types.Result[T]) types.Result[T] {
	return results[0]
}

// requireEqualLengths validates that two parallel input slices have
// the same length, naming both arguments in the failure.
func requireEqualLengths(nameA string, lenA int, nameB string, lenB int) error {
	if lenA != lenB {
		return fmt.Errorf("%w: %s has %d elements, %s has %d",
			types.ErrInvalidInput, nameA, lenA, nameB, lenB)
	}
	return nil
}

// requireNoNilData validates that a trait-data slice holds no nil
// elements.
func requireNoNilData(name string, items []*types.TraitsData) error {
	for i, item := range items {
		if item == nil {
			return fmt.Errorf("%w: %s element %d is nil", types.ErrInvalidInput, name, i)
		}
	}
	return nil
}

// requireNoNilTraitSets validates that a trait-set slice holds no nil
// elements.
func requireNoNilTraitSets(name string, sets []types.TraitSet) error {
	for i, set := range sets {
		if set == nil {
			return fmt.Errorf("%w: %s element %d is nil", types.ErrInvalidInput, name, i)
		}
	}
	return nil
}

// requirePageSize validates an explicit page size.
func requirePageSize(pageSize int) error {
	if pageSize < 1 {
		return fmt.Errorf("%w: page size must be at least 1, got %d", types.ErrInvalidInput, pageSize)
	}
	return nil
}
