// Package sim orchestrates a full run: optional steady-state
// initialization followed by the transient time loop (spec §4.G),
// grounded on _examples/original_source/src/main.cpp's two-phase
// solve (a throwaway steady model run through 31 pseudo-steps at
// dt = cardiac_cycle_period/10 and rho=0.1, then the real transient
// Integrator).
package sim

import (
	"zerod0d/config"
	"zerod0d/integrator"
	"zerod0d/internal/telemetry"
	"zerod0d/model"
	"zerod0d/state"
	"zerod0d/zerr"
)

// steadyRho is the fixed spectral radius main.cpp uses for the
// throwaway steady-state integrator; it is never exposed as a
// configuration field in the original solver.
const steadyRho = 0.1

// steadySteps is the number of pseudo-integration steps main.cpp runs
// the steady model through before handing its state off as the
// transient run's initial condition.
const steadySteps = 31

// Run holds everything a completed simulation produced.
type Run struct {
	Model     *model.Model
	Times     []float64
	History   []state.State
	Telemetry telemetry.Newton
	StepIters []int
}

// Execute runs a loaded configuration end to end. steadyInitial
// overrides cfg.Sim.SteadyInitial when non-nil.
func Execute(cfg *config.Result, steadyInitial *bool) (*Run, error) {
	useSteady := cfg.Sim.SteadyInitial
	if steadyInitial != nil {
		useSteady = *steadyInitial
	}
	if useSteady && cfg.Model.HasClosedLoopHeart() {
		return nil, zerr.Configurationf("steady_initial is not supported with a ClosedLoopHeartAndPulmonary block")
	}

	m := cfg.Model
	dt := cfg.TimeStepSize
	size := m.DOF().Size()

	initial := cfg.Initial
	if useSteady {
		steady, err := runSteady(m, size)
		if err != nil {
			return nil, err
		}
		initial = steady
	}

	return runTransient(m, initial, dt, cfg.Sim.AbsoluteTolerance, cfg.Sim.MaximumNonlinearIterations, cfg.Sim.NumTimeSteps())
}

// runSteady collapses periodic parameters and Windkessel capacitances
// to their steady-state values, primes the sparse pattern, and
// advances 31 pseudo-steps at dt = period/10 to settle the model onto
// a physically consistent steady solution.
func runSteady(m *model.Model, size int) (state.State, error) {
	m.ToSteady()
	defer m.ToUnsteady()

	if err := primeSystem(m, size); err != nil {
		return state.State{}, err
	}

	dtSteady := m.CardiacCyclePeriod() / 10.0
	in := integrator.New(dtSteady, steadyRho, 1e-3, 100, size)

	s := state.Zero(size)
	for i := 0; i < steadySteps; i++ {
		next, err := in.Step(s, dtSteady*float64(i), m)
		if err != nil {
			return state.State{}, err
		}
		s = next
	}
	return s, nil
}

// runTransient advances the model for the full requested number of
// time steps starting from initial.
func runTransient(m *model.Model, initial state.State, dt, atol float64, maxIter, numSteps int) (*Run, error) {
	size := m.DOF().Size()
	if err := primeSystem(m, size); err != nil {
		return nil, err
	}

	in := integrator.New(dt, 0.5, atol, maxIter, size)

	times := make([]float64, numSteps)
	history := make([]state.State, numSteps)
	stepIters := make([]int, 0, numSteps-1)

	times[0] = 0
	history[0] = initial

	s := initial
	for i := 1; i < numSteps; i++ {
		t := float64(i-1) * dt
		before := in.Telemetry.Steps
		itersBefore := in.Telemetry.TotalIters
		next, err := in.Step(s, t, m)
		if err != nil {
			return nil, err
		}
		if in.Telemetry.Steps > before {
			stepIters = append(stepIters, in.Telemetry.TotalIters-itersBefore)
		}
		s = next
		times[i] = t + dt
		history[i] = s
	}

	return &Run{Model: m, Times: times, History: history, Telemetry: in.Telemetry, StepIters: stepIters}, nil
}

// primeSystem runs one update_constant+update_time+update_solution
// pass at the zero state to discover every structural nonzero, then
// freezes the sparse pattern (spec §3): the first assembly pass is the
// only one allowed to introduce new coordinates into the Jacobian.
func primeSystem(m *model.Model, size int) error {
	zero := make([]float64, size)
	m.UpdateConstant()
	m.UpdateTime(0)
	m.UpdateSolution(zero, zero)
	m.System().Freeze()
	return nil
}
