package zerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormattingWithAndWithoutWrappedCause(t *testing.T) {
	plain := Configurationf("missing field %q", "R")
	if plain.Error() != "ConfigurationError: missing field \"R\"" {
		t.Fatalf("Error() = %q", plain.Error())
	}

	wrapped := WrapLinearSolve(errors.New("singular matrix"), "factorization failed")
	want := "LinearSolveError: factorization failed: singular matrix"
	if wrapped.Error() != want {
		t.Fatalf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestUnwrapExposesWrappedCause(t *testing.T) {
	cause := errors.New("singular matrix")
	wrapped := WrapLinearSolve(cause, "factorization failed")
	if errors.Unwrap(wrapped) != cause {
		t.Fatal("Unwrap did not return the wrapped cause")
	}
}

func TestIsKindMatchesAcrossWrapping(t *testing.T) {
	err := fmt.Errorf("step failed: %w", Divergencef("no convergence at t=%g", 1.5))
	if !IsKind(err, NonlinearDivergence) {
		t.Fatal("IsKind did not find the wrapped NonlinearDivergence error")
	}
	if IsKind(err, Graph) {
		t.Fatal("IsKind incorrectly matched Graph on a NonlinearDivergence error")
	}
}

func TestIsComparesOnlyKind(t *testing.T) {
	a := Configurationf("first message")
	b := Configurationf("second message")
	if !a.Is(b) {
		t.Fatal("errors of the same Kind should satisfy Is regardless of message")
	}
	c := Graphf("dangling node")
	if a.Is(c) {
		t.Fatal("errors of different Kind should not satisfy Is")
	}
}
