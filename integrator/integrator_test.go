package integrator

import (
	"math"
	"testing"

	"zerod0d/block"
	"zerod0d/model"
	"zerod0d/param"
	"zerod0d/state"
)

// buildRCModel wires flow-source -> vessel -> pressure-sink, the
// smallest topology that exercises a genuine transient (the vessel's
// capacitance gives the system a real ydot).
func buildRCModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New()
	q := m.AddParameter(1.0)
	p := m.AddParameter(0.0)
	r := m.AddParameter(1.0)
	c := m.AddParameter(1.0)
	l := m.AddParameter(0.0)
	s := m.AddParameter(0.0)

	src, err := m.AddBlock(block.NewFlowReferenceBC("src", q), false)
	if err != nil {
		t.Fatalf("AddBlock(src): %v", err)
	}
	v, err := m.AddBlock(block.NewVessel("v0", []param.ID{r, c, l, s}), false)
	if err != nil {
		t.Fatalf("AddBlock(v0): %v", err)
	}
	snk, err := m.AddBlock(block.NewPressureReferenceBC("snk", p), false)
	if err != nil {
		t.Fatalf("AddBlock(snk): %v", err)
	}
	m.AddNode(src, v, "src:v0")
	m.AddNode(v, snk, "v0:snk")

	if err := m.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return m
}

func primeForTest(t *testing.T, m *model.Model) {
	t.Helper()
	size := m.DOF().Size()
	zero := make([]float64, size)
	m.UpdateConstant()
	m.UpdateTime(0)
	m.UpdateSolution(zero, zero)
	m.System().Freeze()
}

func TestStepConvergesAndAdvancesTime(t *testing.T) {
	m := buildRCModel(t)
	primeForTest(t, m)

	size := m.DOF().Size()
	in := New(0.01, 0.5, 1e-8, 30, size)

	s := state.Zero(size)
	next, err := in.Step(s, 0, m)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if next.Len() != size {
		t.Fatalf("Len() = %d, want %d", next.Len(), size)
	}
	if in.Telemetry.Steps != 1 {
		t.Fatalf("Telemetry.Steps = %d, want 1", in.Telemetry.Steps)
	}
}

func TestStepDoesNotMutateInputState(t *testing.T) {
	m := buildRCModel(t)
	primeForTest(t, m)

	size := m.DOF().Size()
	in := New(0.01, 0.5, 1e-8, 30, size)

	s := state.Zero(size)
	before := s.Clone()

	if _, err := in.Step(s, 0, m); err != nil {
		t.Fatalf("Step: %v", err)
	}
	for i := 0; i < size; i++ {
		if s.Y.AtVec(i) != before.Y.AtVec(i) || s.Ydot.AtVec(i) != before.Ydot.AtVec(i) {
			t.Fatalf("Step mutated its input state at index %d", i)
		}
	}
}

func TestRepeatedStepsSettleTowardSteadyPressure(t *testing.T) {
	m := buildRCModel(t)
	primeForTest(t, m)

	size := m.DOF().Size()
	in := New(0.01, 0.5, 1e-8, 30, size)

	s := state.Zero(size)
	for i := 0; i < 500; i++ {
		next, err := in.Step(s, float64(i)*0.01, m)
		if err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
		s = next
	}

	// With Q=1, R=1, Pout=0, steady inlet pressure should approach
	// Pin = R*Q + Pout = 1.
	pin := s.Y.AtVec(0)
	if math.Abs(pin-1.0) > 1e-2 {
		t.Fatalf("inlet pressure after settling = %g, want ~1.0", pin)
	}
}
