// Package zerr defines the typed error kinds surfaced by the solver
// core, per spec §7. All are fail-fast: nothing in this module retries
// or swallows one of these once raised.
package zerr

import "fmt"

// Kind identifies one of the five error categories the core can raise.
type Kind int

const (
	// Configuration inconsistencies: mismatched cardiac periods,
	// unknown block/junction/BC type, missing required parameter,
	// duplicate block name.
	Configuration Kind = iota
	// GraphError: dangling node reference, invalid external-coupling
	// target.
	Graph
	// DimensionError: solution/derivative vector of the wrong size.
	Dimension
	// NonlinearDivergence: Newton failed to reach atol within
	// max_iter iterations.
	NonlinearDivergence
	// LinearSolveError: sparse/dense factorization failed (singular
	// Jacobian).
	LinearSolve
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "ConfigurationError"
	case Graph:
		return "GraphError"
	case Dimension:
		return "DimensionError"
	case NonlinearDivergence:
		return "NonlinearDivergence"
	case LinearSolve:
		return "LinearSolveError"
	default:
		return "UnknownError"
	}
}

// Error is a typed error carrying a Kind so callers can branch with
// errors.As without parsing strings.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target has the same Kind, so errors.Is(err,
// &zerr.Error{Kind: k}) matches any error of Kind k.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

func wrap(k Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Configurationf builds a ConfigurationError.
func Configurationf(format string, args ...any) *Error { return newf(Configuration, format, args...) }

// Graphf builds a GraphError.
func Graphf(format string, args ...any) *Error { return newf(Graph, format, args...) }

// Dimensionf builds a DimensionError.
func Dimensionf(format string, args ...any) *Error { return newf(Dimension, format, args...) }

// Divergencef builds a NonlinearDivergence error.
func Divergencef(format string, args ...any) *Error {
	return newf(NonlinearDivergence, format, args...)
}

// LinearSolvef builds a LinearSolveError.
func LinearSolvef(format string, args ...any) *Error { return newf(LinearSolve, format, args...) }

// WrapLinearSolve wraps a lower-level factorization error.
func WrapLinearSolve(err error, format string, args ...any) *Error {
	return wrap(LinearSolve, err, format, args...)
}

// IsKind reports whether err (or any error it wraps) is a *Error of
// kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	for err != nil {
		if ze, ok := err.(*Error); ok {
			e = ze
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return false
	}
	return e.Kind == k
}
