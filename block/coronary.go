package block

import (
	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// OpenLoopCoronaryBC is a two-capacitor coronary Windkessel with an
// intramyocardial pressure source Pim(t) (spec §3; concrete stamps
// per the standard coronary lumped-parameter formulation of Kim et
// al., 2010, since neither spec.md nor original_source/ spells out
// this block's algebra — see DESIGN.md). Parameter order:
// [Ra, Ca, Ram, Cim, Rv, Pv, Pim].
//
//	Pin - Ra*Qin - P1 = 0
//	Ca*P1_dot - Qin + (P1-P2)/Ram = 0
//	Cim*P2_dot - (P1-P2)/Ram + (P2 - Pv - Pim(t))/Rv = 0
type OpenLoopCoronaryBC struct {
	Base
	p1, p2 int
}

const (
	coronaryRa = iota
	coronaryCa
	coronaryRam
	coronaryCim
	coronaryRv
	coronaryPv
	coronaryPim
)

func NewOpenLoopCoronaryBC(name string, paramIDs []param.ID) *OpenLoopCoronaryBC {
	b := &OpenLoopCoronaryBC{Base: NewBase(TypeOpenLoopCoronaryBC, ClassBoundaryCondition, name, paramIDs)}
	b.Triplets = Triplets{F: 8, E: 2}
	return b
}

func (b *OpenLoopCoronaryBC) Base() *Base { return &b.Base }

func (b *OpenLoopCoronaryBC) SetupDOFs(h *dof.Handler) {
	b.p1 = b.RegisterInternalVariable(h, "coronary_p1:"+b.Name)
	b.p2 = b.RegisterInternalVariable(h, "coronary_p2:"+b.Name)
	b.RegisterEquations(h, 3)
}

func (b *OpenLoopCoronaryBC) UpdateConstant(sys *sparse.System, params ParamSource) {
	eq0 := b.GlobalEqnIDs[0]
	pin := b.GlobalVarIDs[0]
	p1 := b.GlobalVarIDs[b.p1]
	sys.F.Set(eq0, pin, 1)
	sys.F.Set(eq0, p1, -1)
}

func (b *OpenLoopCoronaryBC) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	eq0, eq1, eq2 := b.GlobalEqnIDs[0], b.GlobalEqnIDs[1], b.GlobalEqnIDs[2]
	qin := b.GlobalVarIDs[1]
	p1, p2 := b.GlobalVarIDs[b.p1], b.GlobalVarIDs[b.p2]

	Ra := b.Param(params, coronaryRa)
	Ca := b.Param(params, coronaryCa)
	Ram := b.Param(params, coronaryRam)
	Cim := b.Param(params, coronaryCim)
	Rv := b.Param(params, coronaryRv)
	Pv := b.Param(params, coronaryPv)
	Pim := b.Param(params, coronaryPim)

	sys.F.Set(eq0, qin, -Ra)

	sys.E.Set(eq1, p1, Ca)
	sys.F.Set(eq1, qin, -1)
	sys.F.Set(eq1, p1, 1.0/Ram)
	sys.F.Set(eq1, p2, -1.0/Ram)

	sys.E.Set(eq2, p2, Cim)
	sys.F.Set(eq2, p1, -1.0/Ram)
	sys.F.Set(eq2, p2, 1.0/Ram+1.0/Rv)
	sys.C[eq2] = -(Pv + Pim) / Rv
}

func (b *OpenLoopCoronaryBC) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
}

func (b *OpenLoopCoronaryBC) ToSteady()   { b.Steady = true }
func (b *OpenLoopCoronaryBC) ToUnsteady() { b.Steady = false }
