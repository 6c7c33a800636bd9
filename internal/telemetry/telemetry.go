// Package telemetry accumulates lightweight run counters (spec §4.H:
// "count total Newton iterations and steps; expose mean Newton
// iterations per step"), grounded on
// _examples/RuiCat-circuit/mna/debug's use of a small in-process
// counter struct rather than a metrics library, since nothing in the
// example pack wires a metrics SDK (see DESIGN.md).
package telemetry

// Newton tracks Newton-iteration counts across a simulation run.
type Newton struct {
	Steps          int
	TotalIters     int
	MaxItersOnStep int
}

// RecordStep records that a time step converged after iters Newton
// iterations.
func (n *Newton) RecordStep(iters int) {
	n.Steps++
	n.TotalIters += iters
	if iters > n.MaxItersOnStep {
		n.MaxItersOnStep = iters
	}
}

// MeanIters returns the mean Newton iterations per step, or 0 if no
// steps have run yet.
func (n *Newton) MeanIters() float64 {
	if n.Steps == 0 {
		return 0
	}
	return float64(n.TotalIters) / float64(n.Steps)
}
