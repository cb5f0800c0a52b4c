package types

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestBatchElementError(t *testing.T) {
	t.Run("structural equality", func(t *testing.T) {
		a := BatchElementError{Code: ErrorCodeEntityResolutionError, Message: "missing"}
		b := BatchElementError{Code: ErrorCodeEntityResolutionError, Message: "missing"}
		if a != b {
			t.Fatalf("expected %v == %v", a, b)
		}
		c := BatchElementError{Code: ErrorCodeEntityResolutionError, Message: "other"}
		if a == c {
			t.Fatalf("expected %v != %v", a, c)
		}
	})

	t.Run("message includes code display name", func(t *testing.T) {
		e := BatchElementError{Code: ErrorCodeMalformedEntityReference, Message: "no scheme"}
		if got := e.Error(); got != "malformed entity reference: no scheme" {
			t.Fatalf("unexpected message: %q", got)
		}
	})
}

func TestBatchElementFailure(t *testing.T) {
	failure := &BatchElementFailure{
		Index:  3,
		Err:    BatchElementError{Code: ErrorCodeEntityAccessError, Message: "forbidden"},
		Access: AccessWrite,
		Ref:    "test://asset/1",
	}

	t.Run("renders full context", func(t *testing.T) {
		msg := failure.Error()
		for _, want := range []string{"entity access error", "forbidden", "index=3", "access=write", "ref=test://asset/1"} {
			if !strings.Contains(msg, want) {
				t.Fatalf("message %q missing %q", msg, want)
			}
		}
	})

	t.Run("unwraps to element error", func(t *testing.T) {
		var element BatchElementError
		if !errors.As(failure, &element) {
			t.Fatal("expected errors.As to find BatchElementError")
		}
		if element != failure.Err {
			t.Fatalf("expected %v, got %v", failure.Err, element)
		}
	})
}

func TestErrorFamiliesDisjoint(t *testing.T) {
	wrapped := fmt.Errorf("%w: refs has 2 elements, hints has 3", ErrInvalidInput)
	if !errors.Is(wrapped, ErrInvalidInput) {
		t.Fatal("expected ErrInvalidInput family")
	}
	if errors.Is(wrapped, ErrNotImplemented) || errors.Is(wrapped, ErrConfiguration) {
		t.Fatal("families must be disjoint")
	}
}
