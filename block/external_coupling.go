package block

import (
	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// CouplingKind selects whether an ExternalCouplingBC prescribes flow
// or pressure, mirroring FlowReferenceBC/PressureReferenceBC's split
// (spec's supplemented coupled_simulation feature, see SPEC_FULL.md).
type CouplingKind int

const (
	CouplingFlow CouplingKind = iota
	CouplingPressure
)

// ExternalCouplingBC prescribes a value supplied by an external 1-D
// or 3-D solver (a coupled_simulation boundary), sampled through the
// same Parameter time-series mechanism as FlowReferenceBC and
// PressureReferenceBC so external values can be pushed in by
// updating the parameter's series in place between coupling steps.
type ExternalCouplingBC struct {
	Base
	kind CouplingKind
}

func NewExternalCouplingBC(name string, valueID param.ID, kind CouplingKind) *ExternalCouplingBC {
	b := &ExternalCouplingBC{Base: NewBase(TypeExternalCouplingBC, ClassExternalCoupling, name, []param.ID{valueID}), kind: kind}
	b.Triplets = Triplets{F: 1}
	return b
}

func (b *ExternalCouplingBC) Base() *Base { return &b.Base }

func (b *ExternalCouplingBC) SetupDOFs(h *dof.Handler) { b.RegisterEquations(h, 1) }

func (b *ExternalCouplingBC) targetVar() int {
	if b.kind == CouplingFlow {
		return b.GlobalVarIDs[1]
	}
	return b.GlobalVarIDs[0]
}

func (b *ExternalCouplingBC) UpdateConstant(sys *sparse.System, params ParamSource) {
	sys.F.Set(b.GlobalEqnIDs[0], b.targetVar(), 1)
}

func (b *ExternalCouplingBC) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	sys.C[b.GlobalEqnIDs[0]] = -b.Param(params, 0)
}

func (b *ExternalCouplingBC) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
}

func (b *ExternalCouplingBC) ToSteady()   { b.Steady = true }
func (b *ExternalCouplingBC) ToUnsteady() { b.Steady = false }
