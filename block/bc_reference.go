package block

import (
	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// FlowReferenceBC prescribes Qin = Q̂(t) (spec §4.D), grounded on
// _examples/original_source/src/model/flowreferencebc.hpp.
type FlowReferenceBC struct {
	Base
}

func NewFlowReferenceBC(name string, qID param.ID) *FlowReferenceBC {
	b := &FlowReferenceBC{Base: NewBase(TypeFlowReferenceBC, ClassBoundaryCondition, name, []param.ID{qID})}
	b.Triplets = Triplets{F: 1}
	return b
}

func (b *FlowReferenceBC) Base() *Base { return &b.Base }

func (b *FlowReferenceBC) SetupDOFs(h *dof.Handler) { b.RegisterEquations(h, 1) }

func (b *FlowReferenceBC) UpdateConstant(sys *sparse.System, params ParamSource) {
	eq := b.GlobalEqnIDs[0]
	qin := b.GlobalVarIDs[1]
	sys.F.Set(eq, qin, 1)
}

func (b *FlowReferenceBC) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	eq := b.GlobalEqnIDs[0]
	sys.C[eq] = -b.Param(params, 0)
}

func (b *FlowReferenceBC) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
}

func (b *FlowReferenceBC) ToSteady()   { b.Steady = true }
func (b *FlowReferenceBC) ToUnsteady() { b.Steady = false }

// PressureReferenceBC prescribes Pin = P̂(t), the pressure dual of
// FlowReferenceBC.
type PressureReferenceBC struct {
	Base
}

func NewPressureReferenceBC(name string, pID param.ID) *PressureReferenceBC {
	b := &PressureReferenceBC{Base: NewBase(TypePressureReferenceBC, ClassBoundaryCondition, name, []param.ID{pID})}
	b.Triplets = Triplets{F: 1}
	return b
}

func (b *PressureReferenceBC) Base() *Base { return &b.Base }

func (b *PressureReferenceBC) SetupDOFs(h *dof.Handler) { b.RegisterEquations(h, 1) }

func (b *PressureReferenceBC) UpdateConstant(sys *sparse.System, params ParamSource) {
	eq := b.GlobalEqnIDs[0]
	pin := b.GlobalVarIDs[0]
	sys.F.Set(eq, pin, 1)
}

func (b *PressureReferenceBC) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	eq := b.GlobalEqnIDs[0]
	sys.C[eq] = -b.Param(params, 0)
}

func (b *PressureReferenceBC) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
}

func (b *PressureReferenceBC) ToSteady()   { b.Steady = true }
func (b *PressureReferenceBC) ToUnsteady() { b.Steady = false }

// ResistanceBC is a pure resistive terminal: Pin - R*Qin - Pd = 0.
// Parameter order: [R, Pd].
type ResistanceBC struct {
	Base
}

func NewResistanceBC(name string, paramIDs []param.ID) *ResistanceBC {
	b := &ResistanceBC{Base: NewBase(TypeResistanceBC, ClassBoundaryCondition, name, paramIDs)}
	b.Triplets = Triplets{F: 2}
	return b
}

func (b *ResistanceBC) Base() *Base { return &b.Base }

func (b *ResistanceBC) SetupDOFs(h *dof.Handler) { b.RegisterEquations(h, 1) }

func (b *ResistanceBC) UpdateConstant(sys *sparse.System, params ParamSource) {
	eq := b.GlobalEqnIDs[0]
	pin := b.GlobalVarIDs[0]
	sys.F.Set(eq, pin, 1)
}

func (b *ResistanceBC) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	eq := b.GlobalEqnIDs[0]
	qin := b.GlobalVarIDs[1]
	R := b.Param(params, 0)
	Pd := b.Param(params, 1)
	sys.F.Set(eq, qin, -R)
	sys.C[eq] = -Pd
}

func (b *ResistanceBC) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
}

func (b *ResistanceBC) ToSteady()   { b.Steady = true }
func (b *ResistanceBC) ToUnsteady() { b.Steady = false }
