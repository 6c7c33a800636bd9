package block

import (
	"math"

	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// ChamberKerckhoffs models a cardiac chamber as a time-varying
// elastance capacitor (Kerckhoffs, 2006), grounded on
// _examples/original_source/src/model/ChamberKerckhoffs.h's parameter
// set {Emax, Emin, Vrd, Vrs, t_active, t_twitch} (the doc-comment
// governing equations in that header are a stale copy from Valve.h;
// the enum ParamId is the authoritative parameter list). Two-port
// element (inlet from upstream valve/venous return, outlet to
// downstream valve) with internal volume variable V; the chamber
// itself presents no pressure drop, all impedance living in the
// adjacent Valve blocks.
//
//	Pin - E(t)*V + E(t)*Vrest(t) = 0
//	Pout - Pin = 0
//	V_dot - Qin + Qout = 0
type ChamberKerckhoffs struct {
	Base
	period float64
	v      int
}

const (
	chamberEmax = iota
	chamberEmin
	chamberVrd
	chamberVrs
	chamberTActive
	chamberTTwitch
)

// NewChamberKerckhoffs constructs the block. period is the cardiac
// cycle period the activation function wraps against.
func NewChamberKerckhoffs(name string, paramIDs []param.ID, period float64) *ChamberKerckhoffs {
	c := &ChamberKerckhoffs{Base: NewBase(TypeChamberKerckhoffs, ClassChamber, name, paramIDs), period: period}
	c.Triplets = Triplets{F: 6, E: 1}
	return c
}

func (c *ChamberKerckhoffs) Base() *Base { return &c.Base }

func (c *ChamberKerckhoffs) SetupDOFs(h *dof.Handler) {
	c.v = c.RegisterInternalVariable(h, "chamber_volume:"+c.Name)
	c.RegisterEquations(h, 3)
}

func (c *ChamberKerckhoffs) UpdateConstant(sys *sparse.System, params ParamSource) {
	eq0, eq1, eq2 := c.GlobalEqnIDs[0], c.GlobalEqnIDs[1], c.GlobalEqnIDs[2]
	pin, qin, pout, qout := c.GlobalVarIDs[0], c.GlobalVarIDs[1], c.GlobalVarIDs[2], c.GlobalVarIDs[3]
	sys.F.Set(eq0, pin, 1)

	sys.F.Set(eq1, pout, 1)
	sys.F.Set(eq1, pin, -1)

	sys.F.Set(eq2, qin, -1)
	sys.F.Set(eq2, qout, 1)
}

// activation evaluates a two-phase cosine activation function e(t) in
// [0,1]: a contraction half-cosine over t_active, then a relaxation
// half-cosine over t_twitch, wrapped to the cardiac cycle.
func (c *ChamberKerckhoffs) activation(params ParamSource, t float64) float64 {
	tActive := c.Param(params, chamberTActive)
	tTwitch := c.Param(params, chamberTTwitch)
	tc := math.Mod(t, c.period)
	if tc < 0 {
		tc += c.period
	}
	switch {
	case tc < tActive:
		return 0.5 * (1 - math.Cos(math.Pi*tc/tActive))
	case tc < tActive+tTwitch:
		return 0.5 * (1 + math.Cos(math.Pi*(tc-tActive)/tTwitch))
	default:
		return 0
	}
}

func (c *ChamberKerckhoffs) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	eq0, eq2 := c.GlobalEqnIDs[0], c.GlobalEqnIDs[2]
	v := c.GlobalVarIDs[c.v]

	e := c.activation(params, t)
	Emax := c.Param(params, chamberEmax)
	Emin := c.Param(params, chamberEmin)
	Vrd := c.Param(params, chamberVrd)
	Vrs := c.Param(params, chamberVrs)

	E := Emin + e*(Emax-Emin)
	Vrest := Vrd - e*(Vrd-Vrs)

	sys.F.Set(eq0, v, -E)
	sys.C[eq0] = E * Vrest
	sys.E.Set(eq2, v, 1)
}

func (c *ChamberKerckhoffs) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
}

func (c *ChamberKerckhoffs) ToSteady()   { c.Steady = true }
func (c *ChamberKerckhoffs) ToUnsteady() { c.Steady = false }
