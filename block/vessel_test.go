package block

import (
	"testing"

	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// constParams is a minimal ParamSource backed by a plain slice, indexed
// directly by param.ID, for exercising a single block's stamps in
// isolation without a full model.Model.
type constParams []float64

func (c constParams) Value(id param.ID) float64 { return c[id] }

func TestVesselBalancesEquationsAndVariables(t *testing.T) {
	h := dof.New()
	// Two external nodes: inlet (pressure, flow) and outlet (pressure, flow).
	inP := h.RegisterVariable("pressure:in")
	inQ := h.RegisterVariable("flow:in")
	outP := h.RegisterVariable("pressure:out")
	outQ := h.RegisterVariable("flow:out")

	v := NewVessel("v0", []param.ID{0, 1, 2, 3})
	v.SetNodeVarIDs([]int{inP, inQ, outP, outQ})
	v.SetupDOFs(h)

	if h.NumVariables() != 5 {
		t.Fatalf("NumVariables() = %d, want 5 (4 node DOFs + 1 internal Pc)", h.NumVariables())
	}
	if h.NumEquations() != 3 {
		t.Fatalf("NumEquations() = %d, want 3", h.NumEquations())
	}
}

func TestVesselStampsAndSolves(t *testing.T) {
	h := dof.New()
	inP := h.RegisterVariable("pressure:in")
	inQ := h.RegisterVariable("flow:in")
	outP := h.RegisterVariable("pressure:out")
	outQ := h.RegisterVariable("flow:out")

	v := NewVessel("v0", []param.ID{0, 1, 2, 3})
	v.SetNodeVarIDs([]int{inP, inQ, outP, outQ})
	v.SetupDOFs(h)

	n := h.Size()
	sys := sparse.NewSystem(n)
	params := constParams{1.0, 0.5, 0.1, 0.0} // R, C, L, S

	y := make([]float64, n)
	ydot := make([]float64, n)
	y[inP], y[outP] = 10, 8
	y[inQ], y[outQ] = 2, 2

	v.UpdateConstant(sys, params)
	v.UpdateTime(sys, params, 0)
	v.UpdateSolution(sys, params, y, ydot)
	sys.Freeze()

	if err := sys.UpdateResidual(y, ydot); err != nil {
		t.Fatalf("UpdateResidual: %v", err)
	}
	// Pc was never set in y (defaults to 0); eq2 (Pc-Pout=0) should be
	// nonzero, confirming the block actually stamped that row.
	if sys.Residual[v.GlobalEqnIDs[2]] == 0 {
		t.Fatal("expected nonzero residual on the Pc-Pout pinning equation with Pc=0, Pout=8")
	}
}

func TestVesselCapacitanceParamID(t *testing.T) {
	v := NewVessel("v0", []param.ID{7, 8, 9, 10})
	ids := v.CapacitanceParamIDs()
	if len(ids) != 1 || ids[0] != 8 {
		t.Fatalf("CapacitanceParamIDs() = %v, want [8] (the C parameter)", ids)
	}
}
