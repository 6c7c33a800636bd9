package block

import (
	"math"

	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// Valve models a diode-like non-linear resistor (spec §4.D), grounded
// on _examples/original_source/src/model/Valve.h. Parameter order:
// [Rmax, Rmin, k]. The valve's resistance is a sigmoid of the
// pressure drop, closing (Rv -> Rmax) against reverse flow and
// opening (Rv -> Rmin) with forward flow.
//
//	Qin - Qout = 0
//	Pin - Pout - Rv(Pin,Pout)*Qin = 0
//	Rv = Rmin + (Rmax-Rmin)/2 * (1 + tanh(-k*(Pin-Pout)))
type Valve struct {
	Base
}

func NewValve(name string, paramIDs []param.ID) *Valve {
	v := &Valve{Base: NewBase(TypeValve, ClassVessel, name, paramIDs)}
	v.Triplets = Triplets{F: 5, D: 2}
	return v
}

func (v *Valve) Base() *Base { return &v.Base }

func (v *Valve) SetupDOFs(h *dof.Handler) { v.RegisterEquations(h, 2) }

func (v *Valve) UpdateConstant(sys *sparse.System, params ParamSource) {
	eq0, eq1 := v.GlobalEqnIDs[0], v.GlobalEqnIDs[1]
	pin, qin, pout, qout := v.GlobalVarIDs[0], v.GlobalVarIDs[1], v.GlobalVarIDs[2], v.GlobalVarIDs[3]

	sys.F.Set(eq0, pin, 1)
	sys.F.Set(eq0, pout, -1)
	sys.F.Set(eq1, qin, 1)
	sys.F.Set(eq1, qout, -1)
}

func (v *Valve) UpdateTime(sys *sparse.System, params ParamSource, t float64) {}

func (v *Valve) resistance(params ParamSource, Pin, Pout float64) (Rv, dRvDPin, dRvDPout float64) {
	Rmax := v.Param(params, 0)
	Rmin := v.Param(params, 1)
	k := v.Param(params, 2)
	x := -k * (Pin - Pout)
	th := math.Tanh(x)
	sech2 := 1 - th*th
	Rv = Rmin + (Rmax-Rmin)/2*(1+th)
	dRvDPin = (Rmax - Rmin) / 2 * sech2 * (-k)
	dRvDPout = (Rmax - Rmin) / 2 * sech2 * k
	return
}

func (v *Valve) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
	eq0 := v.GlobalEqnIDs[0]
	pin, qin, pout := v.GlobalVarIDs[0], v.GlobalVarIDs[1], v.GlobalVarIDs[2]
	Pin, Qin, Pout := y[pin], y[qin], y[pout]

	Rv, dRvDPin, dRvDPout := v.resistance(params, Pin, Pout)

	sys.F.Set(eq0, qin, -Rv)
	// F already carries -Rv on the qin column, so its contribution to
	// the Jacobian's qin entry needs no dF correction; only the
	// cross-derivatives through Pin/Pout (Rv's own arguments) are added.
	// Spec §4.D calls this bucket dC, but UpdateJacobian sums dF and dC
	// identically, so stamping it into DF alongside the qin term above
	// is equivalent and avoids a separate triplet buffer for one entry.
	sys.DF.Set(eq0, pin, -Qin*dRvDPin)
	sys.DF.Set(eq0, pout, -Qin*dRvDPout)
}

func (v *Valve) ToSteady()   { v.Steady = true }
func (v *Valve) ToUnsteady() { v.Steady = false }
