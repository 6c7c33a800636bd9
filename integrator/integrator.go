// Package integrator implements the generalized-alpha predictor-
// corrector with an inner Newton loop (spec §4.H), grounded on
// _examples/original_source/src/algebra/integrator.hpp, using the
// spec's redesigned predictor (y_{n+1}^(0) = y_n) rather than the
// source's older y_n + 0.5*dt*ydot_n draft — see DESIGN.md.
package integrator

import (
	"zerod0d/internal/telemetry"
	"zerod0d/model"
	"zerod0d/state"
	"zerod0d/zerr"
)

// Integrator advances a Model's State by one time step at a time
// using the generalized-alpha method (Jansen et al., 2000).
type Integrator struct {
	dt      float64
	atol    float64
	maxIter int

	alphaM float64
	alphaF float64
	gamma  float64
	eCoeff float64

	yAf, ydotAm []float64

	Telemetry telemetry.Newton
}

// New constructs an Integrator for time step size dt, spectral radius
// rho in (0,1], convergence tolerance atol, and Newton iteration cap
// maxIter. size is the DAE system dimension.
func New(dt, rho, atol float64, maxIter, size int) *Integrator {
	alphaM := 0.5 * (3.0 - rho) / (1.0 + rho)
	alphaF := 1.0 / (1.0 + rho)
	gamma := 0.5 + alphaM - alphaF
	return &Integrator{
		dt:      dt,
		atol:    atol,
		maxIter: maxIter,
		alphaM:  alphaM,
		alphaF:  alphaF,
		gamma:   gamma,
		eCoeff:  alphaM / (alphaF * gamma * dt),
		yAf:     make([]float64, size),
		ydotAm:  make([]float64, size),
	}
}

// Step advances state y_n, ydot_n at time t to state y_{n+1}, ydot_{n+1}
// at t+dt, driving m's update_time/update_solution/update_residual/
// update_jacobian/solve per spec §4.H's Newton loop.
func (in *Integrator) Step(s state.State, t float64, m *model.Model) (state.State, error) {
	yN := s.Y.RawVector().Data
	ydotN := s.Ydot.RawVector().Data
	n := len(yN)

	ydotInitCoeff := (in.gamma - 1) / in.gamma

	// Predictor: y_{n+1}^(0) = y_n, ydot_{n+1}^(0) = ((gamma-1)/gamma)*ydot_n.
	yNext0 := make([]float64, n)
	ydotNext0 := make([]float64, n)
	copy(yNext0, yN)
	for i := range ydotNext0 {
		ydotNext0[i] = ydotInitCoeff * ydotN[i]
	}

	// Intermediate initialization.
	for i := 0; i < n; i++ {
		in.yAf[i] = yN[i] + in.alphaF*(yNext0[i]-yN[i])
		in.ydotAm[i] = ydotN[i] + in.alphaM*(ydotNext0[i]-ydotN[i])
	}

	tAf := t + in.alphaF*in.dt
	m.UpdateTime(tAf)

	sys := m.System()
	converged := false
	iters := 0
	for k := 0; k < in.maxIter; k++ {
		iters = k + 1
		m.UpdateSolution(in.yAf, in.ydotAm)
		if err := sys.UpdateResidual(in.yAf, in.ydotAm); err != nil {
			return state.State{}, err
		}
		if sys.ResidualInfNorm() < in.atol {
			converged = true
			break
		}
		if k == in.maxIter-1 {
			break
		}
		sys.UpdateJacobian(in.eCoeff)
		if err := sys.Solve(); err != nil {
			return state.State{}, err
		}
		for i := 0; i < n; i++ {
			in.yAf[i] += sys.Dy[i]
			in.ydotAm[i] += sys.Dy[i] * in.eCoeff
		}
	}
	if !converged {
		return state.State{}, zerr.Divergencef("Newton iteration failed to converge to atol=%g within %d iterations at t=%g", in.atol, in.maxIter, t)
	}
	in.Telemetry.RecordStep(iters)

	next := state.Zero(n)
	yOut := next.Y.RawVector().Data
	ydotOut := next.Ydot.RawVector().Data
	for i := 0; i < n; i++ {
		yOut[i] = yN[i] + (in.yAf[i]-yN[i])/in.alphaF
		ydotOut[i] = ydotN[i] + (in.ydotAm[i]-ydotN[i])/in.alphaM
	}
	return next, nil
}
