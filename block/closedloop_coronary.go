package block

import (
	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// ClosedLoopCoronaryBC is the closed-loop counterpart of
// OpenLoopCoronaryBC: instead of terminating against a fixed distal
// pressure parameter Pv, its venous side couples to a second node
// (the systemic venous/atrial return, wired by package config through
// the heart's inlet junction to a ClosedLoopHeartPulmonary inlet) so
// no flow is lost across the boundary. Left and Right share the same
// algebra and the same wiring; only their Type tag differs (spec §3
// lists both as catalogue members with no distinguishing algebra).
// Parameter order: [Ra, Ca, Ram, Cim, Rv, Pim].
//
//	Pin - Ra*Qin - P1 = 0
//	Ca*P1_dot - Qin + (P1-P2)/Ram = 0
//	Cim*P2_dot - (P1-P2)/Ram + (P2 - Pout - Pim(t))/Rv = 0
//	Qout - (P2 - Pout - Pim(t))/Rv = 0
type ClosedLoopCoronaryBC struct {
	Base
	p1, p2 int
}

const (
	clCoronaryRa = iota
	clCoronaryCa
	clCoronaryRam
	clCoronaryCim
	clCoronaryRv
	clCoronaryPim
)

func newClosedLoopCoronaryBC(t Type, name string, paramIDs []param.ID) *ClosedLoopCoronaryBC {
	b := &ClosedLoopCoronaryBC{Base: NewBase(t, ClassClosedLoop, name, paramIDs)}
	b.Triplets = Triplets{F: 12, E: 2}
	return b
}

func NewClosedLoopCoronaryLeftBC(name string, paramIDs []param.ID) *ClosedLoopCoronaryBC {
	return newClosedLoopCoronaryBC(TypeClosedLoopCoronaryLeftBC, name, paramIDs)
}

func NewClosedLoopCoronaryRightBC(name string, paramIDs []param.ID) *ClosedLoopCoronaryBC {
	return newClosedLoopCoronaryBC(TypeClosedLoopCoronaryRightBC, name, paramIDs)
}

func (b *ClosedLoopCoronaryBC) Base() *Base { return &b.Base }

func (b *ClosedLoopCoronaryBC) SetupDOFs(h *dof.Handler) {
	b.p1 = b.RegisterInternalVariable(h, "coronary_p1:"+b.Name)
	b.p2 = b.RegisterInternalVariable(h, "coronary_p2:"+b.Name)
	b.RegisterEquations(h, 4)
}

func (b *ClosedLoopCoronaryBC) UpdateConstant(sys *sparse.System, params ParamSource) {
	eq0 := b.GlobalEqnIDs[0]
	pin := b.GlobalVarIDs[0]
	p1 := b.GlobalVarIDs[b.p1]
	sys.F.Set(eq0, pin, 1)
	sys.F.Set(eq0, p1, -1)

	eq3 := b.GlobalEqnIDs[3]
	qout := b.GlobalVarIDs[3]
	sys.F.Set(eq3, qout, 1)
}

func (b *ClosedLoopCoronaryBC) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	eq0, eq1, eq2, eq3 := b.GlobalEqnIDs[0], b.GlobalEqnIDs[1], b.GlobalEqnIDs[2], b.GlobalEqnIDs[3]
	qin := b.GlobalVarIDs[1]
	pout := b.GlobalVarIDs[2]
	p1, p2 := b.GlobalVarIDs[b.p1], b.GlobalVarIDs[b.p2]

	Ra := b.Param(params, clCoronaryRa)
	Ca := b.Param(params, clCoronaryCa)
	Ram := b.Param(params, clCoronaryRam)
	Cim := b.Param(params, clCoronaryCim)
	Rv := b.Param(params, clCoronaryRv)
	Pim := b.Param(params, clCoronaryPim)

	sys.F.Set(eq0, qin, -Ra)

	sys.E.Set(eq1, p1, Ca)
	sys.F.Set(eq1, qin, -1)
	sys.F.Set(eq1, p1, 1.0/Ram)
	sys.F.Set(eq1, p2, -1.0/Ram)

	sys.E.Set(eq2, p2, Cim)
	sys.F.Set(eq2, p1, -1.0/Ram)
	sys.F.Set(eq2, p2, 1.0/Ram+1.0/Rv)
	sys.F.Set(eq2, pout, -1.0/Rv)
	sys.C[eq2] = -Pim / Rv

	sys.F.Set(eq3, p2, -1.0/Rv)
	sys.F.Set(eq3, pout, 1.0/Rv)
	sys.C[eq3] = Pim / Rv
}

func (b *ClosedLoopCoronaryBC) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
}

func (b *ClosedLoopCoronaryBC) ToSteady()   { b.Steady = true }
func (b *ClosedLoopCoronaryBC) ToUnsteady() { b.Steady = false }
