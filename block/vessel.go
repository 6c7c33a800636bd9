package block

import (
	"math"

	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// Vessel is a BloodVessel: an RCL segment with an optional quadratic
// stenosis term (spec §3/§4.D). Parameter order (GlobalParamIDs):
// [R, C, L, S].
//
// Governing equations (verbatim, spec §4.D):
//
//	Pin - Pout - (R + S|Qin|)*Qin - L*Qin_dot = 0
//	Qin - Qout - C*Pc_dot = 0, with internal variable Pc.
type Vessel struct {
	Base
	// local var indices, filled in SetupDOFs.
	inPres, inFlow, outPres, outFlow, pc int
}

// NewVessel constructs a BloodVessel block. paramIDs must be
// [R, C, L, S] in that order. The capacitor node Pc is pinned to the
// outlet pressure by a third equation (Pc - Pout = 0), since the two
// governing equations alone leave Pc's DC level unconstrained.
func NewVessel(name string, paramIDs []param.ID) *Vessel {
	v := &Vessel{Base: NewBase(TypeBloodVessel, ClassVessel, name, paramIDs)}
	v.Triplets = Triplets{F: 7, E: 2, D: 1}
	return v
}

func (v *Vessel) Base() *Base { return &v.Base }

func (v *Vessel) SetupDOFs(h *dof.Handler) {
	v.inPres, v.inFlow, v.outPres, v.outFlow = 0, 1, 2, 3
	v.pc = v.RegisterInternalVariable(h, "internal_pressure:"+v.Name)
	v.RegisterEquations(h, 3)
}

func (v *Vessel) varID(local int) int { return v.GlobalVarIDs[local] }

func (v *Vessel) UpdateConstant(sys *sparse.System, params ParamSource) {
	eq0, eq1, eq2 := v.GlobalEqnIDs[0], v.GlobalEqnIDs[1], v.GlobalEqnIDs[2]
	pin, qin, pout, qout := v.varID(v.inPres), v.varID(v.inFlow), v.varID(v.outPres), v.varID(v.outFlow)
	pc := v.varID(v.pc)

	sys.F.Set(eq0, pin, 1)
	sys.F.Set(eq0, pout, -1)

	sys.F.Set(eq1, qin, 1)
	sys.F.Set(eq1, qout, -1)

	sys.F.Set(eq2, pc, 1)
	sys.F.Set(eq2, pout, -1)
}

func (v *Vessel) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	L := v.Param(params, 2)
	C := v.Param(params, 1)
	eq0, eq1 := v.GlobalEqnIDs[0], v.GlobalEqnIDs[1]
	qin, pc := v.varID(v.inFlow), v.varID(v.pc)
	sys.E.Set(eq0, qin, -L)
	sys.E.Set(eq1, pc, -C)
}

func (v *Vessel) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
	R := v.Param(params, 0)
	S := v.Param(params, 3)
	eq0 := v.GlobalEqnIDs[0]
	qin := v.varID(v.inFlow)
	Qin := y[qin]
	absQ := math.Abs(Qin)
	Reff := R + S*absQ

	sys.F.Set(eq0, qin, -Reff)
	// Jacobian assembly sums F+dF (sparse.System.UpdateJacobian), and F
	// already carries -Reff, so dF only needs the extra term from
	// differentiating |Qin|: d/dQin[-(R+S|Q|)Q] = -(R+2S|Q|), minus the
	// -Reff already contributed by F, leaves -S|Q|.
	sys.DF.Set(eq0, qin, -S*absQ)
}

func (v *Vessel) ToSteady() {
	v.Steady = true
}

func (v *Vessel) ToUnsteady() {
	v.Steady = false
}
