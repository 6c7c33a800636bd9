package block

import (
	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// ClosedLoopRCRBC is the closed-loop counterpart of WindkesselBC: the
// distal pressure is a second node (wired by the Model into the
// venous/atrial return of a ClosedLoopHeartPulmonary block) instead
// of a fixed parameter Pd. Parameter order: [Rp, C, Rd].
//
//	Pin - Rp*Qin - Pc = 0
//	C*Pc_dot + (Pc - Pout)/Rd - Qin = 0
//	Qout - (Pc - Pout)/Rd = 0
type ClosedLoopRCRBC struct {
	Base
	pc int
}

func NewClosedLoopRCRBC(name string, paramIDs []param.ID) *ClosedLoopRCRBC {
	b := &ClosedLoopRCRBC{Base: NewBase(TypeClosedLoopRCRBC, ClassClosedLoop, name, paramIDs)}
	b.Triplets = Triplets{F: 9, E: 1}
	return b
}

func (b *ClosedLoopRCRBC) Base() *Base { return &b.Base }

func (b *ClosedLoopRCRBC) SetupDOFs(h *dof.Handler) {
	b.pc = b.RegisterInternalVariable(h, "internal_pressure:"+b.Name)
	b.RegisterEquations(h, 3)
}

func (b *ClosedLoopRCRBC) UpdateConstant(sys *sparse.System, params ParamSource) {
	eq0, eq2 := b.GlobalEqnIDs[0], b.GlobalEqnIDs[2]
	pin, qout := b.GlobalVarIDs[0], b.GlobalVarIDs[3]
	pc := b.GlobalVarIDs[b.pc]
	sys.F.Set(eq0, pin, 1)
	sys.F.Set(eq0, pc, -1)
	sys.F.Set(eq2, qout, 1)
}

func (b *ClosedLoopRCRBC) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	eq0, eq1, eq2 := b.GlobalEqnIDs[0], b.GlobalEqnIDs[1], b.GlobalEqnIDs[2]
	qin, pout := b.GlobalVarIDs[1], b.GlobalVarIDs[2]
	pc := b.GlobalVarIDs[b.pc]

	Rp := b.Param(params, 0)
	C := b.Param(params, 1)
	Rd := b.Param(params, 2)

	sys.F.Set(eq0, qin, -Rp)

	sys.E.Set(eq1, pc, C)
	sys.F.Set(eq1, qin, -1)
	sys.F.Set(eq1, pc, 1.0/Rd)
	sys.F.Set(eq1, pout, -1.0/Rd)

	sys.F.Set(eq2, pc, -1.0/Rd)
	sys.F.Set(eq2, pout, 1.0/Rd)
}

func (b *ClosedLoopRCRBC) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
}

func (b *ClosedLoopRCRBC) ToSteady()   { b.Steady = true }
func (b *ClosedLoopRCRBC) ToUnsteady() { b.Steady = false }
