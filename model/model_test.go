package model

import (
	"testing"

	"zerod0d/block"
	"zerod0d/param"
)

// buildFlowVesselPressure wires FlowReferenceBC -> Vessel -> PressureReferenceBC,
// the minimal three-block chain any real configuration reduces to, and
// returns the finalized model.
func buildFlowVesselPressure(t *testing.T) *Model {
	t.Helper()
	m := New()
	q := m.AddParameter(5.0)
	p := m.AddParameter(10.0)
	r := m.AddParameter(1.0)
	c := m.AddParameter(0.5)
	l := m.AddParameter(0.1)
	s := m.AddParameter(0)

	flowID, err := m.AddBlock(block.NewFlowReferenceBC("inflow", q), false)
	if err != nil {
		t.Fatalf("AddBlock(inflow): %v", err)
	}
	vesselID, err := m.AddBlock(block.NewVessel("v0", []param.ID{r, c, l, s}), false)
	if err != nil {
		t.Fatalf("AddBlock(v0): %v", err)
	}
	pressureID, err := m.AddBlock(block.NewPressureReferenceBC("outflow", p), false)
	if err != nil {
		t.Fatalf("AddBlock(outflow): %v", err)
	}

	m.AddNode(flowID, vesselID, "inflow:v0")
	m.AddNode(vesselID, pressureID, "v0:outflow")

	if err := m.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return m
}

func TestModelSquareAfterFinalize(t *testing.T) {
	m := buildFlowVesselPressure(t)
	nv, ne := m.DOF().NumVariables(), m.DOF().NumEquations()
	if nv != ne {
		t.Fatalf("model not square: %d variables, %d equations", nv, ne)
	}
	// 2 nodes x 2 DOFs + 1 internal Vessel capacitor node = 5.
	if nv != 5 {
		t.Fatalf("NumVariables() = %d, want 5", nv)
	}
}

func TestModelRejectsDuplicateBlockName(t *testing.T) {
	m := New()
	q := m.AddParameter(1.0)
	if _, err := m.AddBlock(block.NewFlowReferenceBC("dup", q), false); err != nil {
		t.Fatalf("first AddBlock: %v", err)
	}
	if _, err := m.AddBlock(block.NewFlowReferenceBC("dup", q), false); err == nil {
		t.Fatal("expected duplicate block name to be rejected")
	}
}

func TestBlocksExcludesInternal(t *testing.T) {
	m := New()
	q := m.AddParameter(1.0)
	if _, err := m.AddBlock(block.NewFlowReferenceBC("visible", q), false); err != nil {
		t.Fatalf("AddBlock(visible): %v", err)
	}
	if _, err := m.AddBlock(block.NewFlowReferenceBC("hidden", q), true); err != nil {
		t.Fatalf("AddBlock(hidden): %v", err)
	}
	blocks := m.Blocks()
	if len(blocks) != 1 || blocks[0].Base().Name != "visible" {
		t.Fatalf("Blocks() = %v, want only [visible]", blocks)
	}
}

func TestCardiacPeriodDefaultsToOne(t *testing.T) {
	m := buildFlowVesselPressure(t)
	if got := m.CardiacCyclePeriod(); got != 1.0 {
		t.Fatalf("CardiacCyclePeriod() = %g, want 1.0 default", got)
	}
}

// buildTwoVesselChain wires FlowReferenceBC -> Vessel -> Vessel ->
// ResistanceBC. With two internal-variable blocks in series, the
// second Vessel's node DOFs are not a contiguous prefix from 0, so its
// GlobalVarIDs is not the identity permutation — the configuration
// that exposed RegisterInternalVariable returning a global DOF instead
// of a local GlobalVarIDs position (the second Vessel's internal Pc
// stamp indexed past the end of its own GlobalVarIDs slice).
func buildTwoVesselChain(t *testing.T, q, r1, r2 float64) *Model {
	t.Helper()
	m := New()
	qID := m.AddParameter(q)
	r1ID := m.AddParameter(r1)
	r2ID := m.AddParameter(r2)
	zero := m.AddParameter(0)
	rTermID := m.AddParameter(0)
	pdID := m.AddParameter(0)

	src, err := m.AddBlock(block.NewFlowReferenceBC("src", qID), false)
	if err != nil {
		t.Fatalf("AddBlock(src): %v", err)
	}
	v1, err := m.AddBlock(block.NewVessel("v1", []param.ID{r1ID, zero, zero, zero}), false)
	if err != nil {
		t.Fatalf("AddBlock(v1): %v", err)
	}
	v2, err := m.AddBlock(block.NewVessel("v2", []param.ID{r2ID, zero, zero, zero}), false)
	if err != nil {
		t.Fatalf("AddBlock(v2): %v", err)
	}
	snk, err := m.AddBlock(block.NewResistanceBC("snk", []param.ID{rTermID, pdID}), false)
	if err != nil {
		t.Fatalf("AddBlock(snk): %v", err)
	}

	m.AddNode(src, v1, "src:v1")
	m.AddNode(v1, v2, "v1:v2")
	m.AddNode(v2, snk, "v2:snk")

	if err := m.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return m
}

func TestMultiVesselChainStampsAtLocalInternalVariablePositions(t *testing.T) {
	q, r1, r2 := 3.0, 1.0, 2.0
	m := buildTwoVesselChain(t, q, r1, r2)

	size := m.DOF().Size()
	if size != 8 {
		t.Fatalf("DOF size = %d, want 8 (3 nodes x 2 + 2 internal Pc)", size)
	}

	// Steady analytic solution: P_C = 0 (zero-resistance ResistanceBC),
	// P_B = R2*Q, P_A = (R1+R2)*Q, every flow DOF equal to Q, and each
	// Vessel's internal Pc pinned to its own outlet pressure.
	y := make([]float64, size)
	ydot := make([]float64, size)
	pA, qA := m.Nodes()[0].PresDOF, m.Nodes()[0].FlowDOF
	pB, qB := m.Nodes()[1].PresDOF, m.Nodes()[1].FlowDOF
	pC, qC := m.Nodes()[2].PresDOF, m.Nodes()[2].FlowDOF
	y[pA], y[qA] = (r1+r2)*q, q
	y[pB], y[qB] = r2*q, q
	y[pC], y[qC] = 0, q

	v1, _ := m.GetBlock("v1")
	v2, _ := m.GetBlock("v2")
	y[v1.Base().GlobalVarIDs[4]] = y[pB] // v1's internal Pc pinned to its outlet (node B)
	y[v2.Base().GlobalVarIDs[4]] = y[pC] // v2's internal Pc pinned to its outlet (node C)

	m.UpdateConstant()
	m.UpdateTime(0)
	m.UpdateSolution(y, ydot)
	m.System().Freeze()

	if err := m.System().UpdateResidual(y, ydot); err != nil {
		t.Fatalf("UpdateResidual: %v", err)
	}
	if norm := m.System().ResidualInfNorm(); norm > 1e-9 {
		t.Fatalf("residual inf-norm = %g at the analytic steady solution, want ~0", norm)
	}
}

func TestSteadyZeroesCapacitanceAndRestores(t *testing.T) {
	m := buildFlowVesselPressure(t)
	vessel, ok := m.GetBlock("v0")
	if !ok {
		t.Fatal("v0 not found")
	}
	cs, ok := vessel.(block.CapacitanceSource)
	if !ok {
		t.Fatal("Vessel does not implement CapacitanceSource")
	}
	cID := cs.CapacitanceParamIDs()[0]

	before := m.Value(cID)
	if before != 0.5 {
		t.Fatalf("capacitance before ToSteady = %g, want 0.5", before)
	}
	m.ToSteady()
	if got := m.Value(cID); got != 0 {
		t.Fatalf("capacitance after ToSteady = %g, want 0", got)
	}
	m.ToUnsteady()
	if got := m.Value(cID); got != before {
		t.Fatalf("capacitance after ToUnsteady = %g, want restored %g", got, before)
	}
}
