package block

import (
	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// WindkesselBC is an RCR boundary condition with a distal pressure
// (spec §4.D), grounded on
// _examples/original_source/src/rcrblockwithdistalpressure.hpp.
// Parameter order: [Rp, C, Rd, Pd].
//
//	Pin - Rp*Qin - Pc = 0
//	C*Pc_dot + (Pc - Pd)/Rd - Qin = 0
//
// WindkesselCapacitanceParamIndex is the position of the capacitance
// parameter in a WindkesselBC's GlobalParamIDs, the same position
// CapacitanceParamIDs reads. The Model's steady-state cache finds the
// parameter to zero and restore through the CapacitanceSource
// interface, not through this constant.
const WindkesselCapacitanceParamIndex = 1

type WindkesselBC struct {
	Base
	pc int
}

func NewWindkesselBC(name string, paramIDs []param.ID) *WindkesselBC {
	b := &WindkesselBC{Base: NewBase(TypeWindkesselBC, ClassBoundaryCondition, name, paramIDs)}
	b.Triplets = Triplets{F: 5, E: 1}
	return b
}

func (b *WindkesselBC) Base() *Base { return &b.Base }

func (b *WindkesselBC) SetupDOFs(h *dof.Handler) {
	b.pc = b.RegisterInternalVariable(h, "internal_pressure:"+b.Name)
	b.RegisterEquations(h, 2)
}

func (b *WindkesselBC) UpdateConstant(sys *sparse.System, params ParamSource) {
	eq0, eq1 := b.GlobalEqnIDs[0], b.GlobalEqnIDs[1]
	pin, qin, pc := b.GlobalVarIDs[0], b.GlobalVarIDs[1], b.GlobalVarIDs[b.pc]

	sys.F.Set(eq0, pin, 1)
	sys.F.Set(eq0, pc, -1)
	sys.F.Set(eq1, qin, -1)
}

func (b *WindkesselBC) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	eq0, eq1 := b.GlobalEqnIDs[0], b.GlobalEqnIDs[1]
	qin, pc := b.GlobalVarIDs[1], b.GlobalVarIDs[b.pc]
	Rp := b.Param(params, 0)
	C := b.Param(params, 1)
	Rd := b.Param(params, 2)
	Pd := b.Param(params, 3)

	sys.F.Set(eq0, qin, -Rp)
	sys.E.Set(eq1, pc, C)
	sys.F.Set(eq1, pc, 1.0/Rd)
	sys.C[eq1] = -Pd / Rd
}

func (b *WindkesselBC) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
}

func (b *WindkesselBC) ToSteady()   { b.Steady = true }
func (b *WindkesselBC) ToUnsteady() { b.Steady = false }
