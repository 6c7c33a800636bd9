// Package state implements State (spec §4.G): the (y, ydot) pair an
// Integrator step consumes and produces, grounded on
// _examples/RuiCat-circuit/types/element.go's use of
// gonum.org/v1/gonum/mat.VecDense for solution vectors.
package state

import "gonum.org/v1/gonum/mat"

// State is a snapshot of the solution vector and its time derivative
// at one instant. Integrator.Step takes a State by value and returns
// a new one, never mutating its input (spec §4.G: "value semantics").
type State struct {
	Y    *mat.VecDense
	Ydot *mat.VecDense
}

// Zero allocates a State of length n with both vectors set to zero.
func Zero(n int) State {
	return State{Y: mat.NewVecDense(n, nil), Ydot: mat.NewVecDense(n, nil)}
}

// Len returns the vector length.
func (s State) Len() int { return s.Y.Len() }

// Clone returns a deep copy, so callers may hold onto a State across
// mutation of a later one without aliasing gonum's backing arrays.
func (s State) Clone() State {
	c := Zero(s.Len())
	c.Y.CopyVec(s.Y)
	c.Ydot.CopyVec(s.Ydot)
	return c
}
