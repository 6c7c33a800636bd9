package block

import (
	"testing"

	"zerod0d/dof"
	"zerod0d/sparse"
)

func TestExternalCouplingBCBalanced(t *testing.T) {
	h := dof.New()
	ids := setupPorts(h, 1)
	b := NewExternalCouplingBC("ext", 0, CouplingFlow)
	b.SetNodeVarIDs(ids)
	b.SetupDOFs(h)
	checkBalance(t, "ExternalCouplingBC", h, len(ids), 1)
}

func TestExternalCouplingBCPrescribesFlow(t *testing.T) {
	h := dof.New()
	ids := setupPorts(h, 1)
	b := NewExternalCouplingBC("ext", 0, CouplingFlow)
	b.SetNodeVarIDs(ids)
	b.SetupDOFs(h)

	n := h.Size()
	sys := sparse.NewSystem(n)
	params := constParams{3.5}
	y := make([]float64, n)
	ydot := make([]float64, n)

	b.UpdateConstant(sys, params)
	b.UpdateTime(sys, params, 0)
	sys.Freeze()

	if err := sys.UpdateResidual(y, ydot); err != nil {
		t.Fatalf("UpdateResidual: %v", err)
	}
	eq := b.GlobalEqnIDs[0]
	if sys.Residual[eq] == 0 {
		t.Fatal("expected nonzero residual: flow unset (0) vs prescribed 3.5")
	}
}

func TestExternalCouplingBCPrescribesPressure(t *testing.T) {
	h := dof.New()
	ids := setupPorts(h, 1)
	b := NewExternalCouplingBC("ext", 0, CouplingPressure)
	b.SetNodeVarIDs(ids)
	b.SetupDOFs(h)

	if got := b.targetVar(); got != ids[0] {
		t.Fatalf("targetVar() = %d, want pressure DOF %d", got, ids[0])
	}
}
