package block

import (
	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// ClosedLoopHeartPulmonary is the compound four-chamber heart plus
// pulmonary circulation network (spec §4.D), grounded on
// _examples/original_source/src/model/closedloopheartpulmonary.hpp's
// chamber/valve topology (right atrium -> tricuspid valve -> right
// ventricle -> pulmonic valve -> pulmonary R/C -> left atrium ->
// mitral valve -> left ventricle -> aortic valve -> systemic outlet),
// but composed from the already-built ChamberKerckhoffs and Valve
// primitives plus a small pulmonary RC leg instead of hand-deriving
// the original's 27-parameter monolithic stamp set. The chamber
// outflow inductances (Lra_v, Lrv_a, ...) and the nonlinear
// atrial pressure-volume terms (Kxp_ra, Kxv_ra, ...) of the source
// are dropped in this composition; see DESIGN.md.
//
// Owns the cardiac cycle period (spec §3/§4.F: "ClosedLoopHeartPulmonary
// ... owns the cardiac cycle period").
type ClosedLoopHeartPulmonary struct {
	Base
	period float64

	ra, rv, la, lv                      *ChamberKerckhoffs
	tricuspid, pulmonic, mitral, aortic *Valve
	pulmonary                           *pulmonaryRC
}

// Parameter block layout: 6 params per chamber (RA,RV,LA,LV in that
// order), then 3 params per valve (tricuspid, pulmonic, mitral,
// aortic), then 2 pulmonary RC params.
const (
	heartChamberParams = 6
	heartValveParams   = 3
)

func heartChamberOffset(i int) int { return i * heartChamberParams }
func heartValveOffset(i int) int   { return 4*heartChamberParams + i*heartValveParams }
func heartPulmonaryOffset() int    { return 4*heartChamberParams + 4*heartValveParams }

// NewClosedLoopHeartPulmonary constructs the block. paramIDs must
// hold, in order: 4 chambers x 6 elastance params, 4 valves x 3
// sigmoid params, then [Rp, C] for the pulmonary leg. period is the
// cardiac cycle length.
func NewClosedLoopHeartPulmonary(name string, paramIDs []param.ID, period float64) *ClosedLoopHeartPulmonary {
	h := &ClosedLoopHeartPulmonary{
		Base:   NewBase(TypeClosedLoopHeartPulmonary, ClassClosedLoop, name, paramIDs),
		period: period,
	}
	return h
}

// Period returns the cardiac cycle length this block owns, for the
// Model's cardiac_cycle_period consistency check.
func (h *ClosedLoopHeartPulmonary) Period() float64 { return h.period }

func (h *ClosedLoopHeartPulmonary) Base() *Base { return &h.Base }

func chamberParamIDs(all []param.ID, i int) []param.ID {
	o := heartChamberOffset(i)
	return all[o : o+heartChamberParams]
}

func valveParamIDs(all []param.ID, i int) []param.ID {
	o := heartValveOffset(i)
	return all[o : o+heartValveParams]
}

func (h *ClosedLoopHeartPulmonary) SetupDOFs(dh *dof.Handler) {
	pin, qin, pout, qout := h.GlobalVarIDs[0], h.GlobalVarIDs[1], h.GlobalVarIDs[2], h.GlobalVarIDs[3]

	newInternalNode := func(label string) (int, int) {
		p := dh.RegisterVariable("internal_pressure:" + h.Name + ":" + label)
		q := dh.RegisterVariable("internal_flow:" + h.Name + ":" + label)
		return p, q
	}
	pRaOut, qRaOut := newInternalNode("ra_out")
	pRvOut, qRvOut := newInternalNode("rv_out")
	pPaOut, qPaOut := newInternalNode("pa_out")
	pLaOut, qLaOut := newInternalNode("la_out")

	h.ra = NewChamberKerckhoffs(h.Name+"_ra", chamberParamIDs(h.GlobalParamIDs, 0), h.period)
	h.ra.Internal = true
	h.ra.SetNodeVarIDs([]int{pin, qin, pRaOut, qRaOut})
	h.ra.SetupDOFs(dh)

	h.tricuspid = NewValve(h.Name+"_tricuspid", valveParamIDs(h.GlobalParamIDs, 0))
	h.tricuspid.Internal = true
	pRvIn, qRvIn := newInternalNode("rv_in")
	h.tricuspid.SetNodeVarIDs([]int{pRaOut, qRaOut, pRvIn, qRvIn})
	h.tricuspid.SetupDOFs(dh)

	h.rv = NewChamberKerckhoffs(h.Name+"_rv", chamberParamIDs(h.GlobalParamIDs, 1), h.period)
	h.rv.Internal = true
	h.rv.SetNodeVarIDs([]int{pRvIn, qRvIn, pRvOut, qRvOut})
	h.rv.SetupDOFs(dh)

	h.pulmonic = NewValve(h.Name+"_pulmonic", valveParamIDs(h.GlobalParamIDs, 1))
	h.pulmonic.Internal = true
	pPaIn, qPaIn := newInternalNode("pa_in")
	h.pulmonic.SetNodeVarIDs([]int{pRvOut, qRvOut, pPaIn, qPaIn})
	h.pulmonic.SetupDOFs(dh)

	h.pulmonary = newPulmonaryRC(h.Name+"_pulmonary", h.GlobalParamIDs[heartPulmonaryOffset():heartPulmonaryOffset()+2])
	h.pulmonary.Internal = true
	h.pulmonary.SetNodeVarIDs([]int{pPaIn, qPaIn, pPaOut, qPaOut})
	h.pulmonary.SetupDOFs(dh)

	h.mitral = NewValve(h.Name+"_mitral", valveParamIDs(h.GlobalParamIDs, 2))
	h.mitral.Internal = true
	pLvIn, qLvIn := newInternalNode("lv_in")
	h.mitral.SetNodeVarIDs([]int{pLaOut, qLaOut, pLvIn, qLvIn})
	h.mitral.SetupDOFs(dh)

	h.la = NewChamberKerckhoffs(h.Name+"_la", chamberParamIDs(h.GlobalParamIDs, 2), h.period)
	h.la.Internal = true
	h.la.SetNodeVarIDs([]int{pPaOut, qPaOut, pLaOut, qLaOut})
	h.la.SetupDOFs(dh)

	h.aortic = NewValve(h.Name+"_aortic", valveParamIDs(h.GlobalParamIDs, 3))
	h.aortic.Internal = true
	pLvOut, qLvOut := newInternalNode("lv_out")
	h.aortic.SetNodeVarIDs([]int{pLvOut, qLvOut, pout, qout})
	h.aortic.SetupDOFs(dh)

	h.lv = NewChamberKerckhoffs(h.Name+"_lv", chamberParamIDs(h.GlobalParamIDs, 3), h.period)
	h.lv.Internal = true
	h.lv.SetNodeVarIDs([]int{pLvIn, qLvIn, pLvOut, qLvOut})
	h.lv.SetupDOFs(dh)

	h.Triplets = h.children().sumTriplets()
}

func (h *ClosedLoopHeartPulmonary) children() childList {
	return childList{h.ra, h.tricuspid, h.rv, h.pulmonic, h.pulmonary, h.mitral, h.la, h.aortic, h.lv}
}

type childList []Block

func (c childList) sumTriplets() Triplets {
	var t Triplets
	for _, b := range c {
		bt := b.Base().Triplets
		t.F += bt.F
		t.E += bt.E
		t.D += bt.D
	}
	return t
}

func (h *ClosedLoopHeartPulmonary) UpdateConstant(sys *sparse.System, params ParamSource) {
	for _, c := range h.children() {
		c.UpdateConstant(sys, params)
	}
}

func (h *ClosedLoopHeartPulmonary) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	for _, c := range h.children() {
		c.UpdateTime(sys, params, t)
	}
}

func (h *ClosedLoopHeartPulmonary) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
	for _, c := range h.children() {
		c.UpdateSolution(sys, params, y, ydot)
	}
}

func (h *ClosedLoopHeartPulmonary) ToSteady() {
	h.Steady = true
	for _, c := range h.children() {
		c.ToSteady()
	}
}

func (h *ClosedLoopHeartPulmonary) ToUnsteady() {
	h.Steady = false
	for _, c := range h.children() {
		c.ToUnsteady()
	}
}

// pulmonaryRC is the lumped pulmonary vasculature leg between the
// pulmonic and mitral valves: a series resistor into a capacitor to
// ground, matching WindkesselBC's Rp/C pair without a distal
// resistor (the left atrium and mitral valve downstream provide the
// outlet impedance).
//
//	Pin - Rp*Qin - Pc = 0
//	C*Pc_dot - Qin + Qout = 0
//	Pc - Pout = 0
type pulmonaryRC struct {
	Base
	pc int
}

func newPulmonaryRC(name string, paramIDs []param.ID) *pulmonaryRC {
	b := &pulmonaryRC{Base: NewBase(TypeClosedLoopHeartPulmonary, ClassClosedLoop, name, paramIDs)}
	b.Triplets = Triplets{F: 7, E: 1}
	return b
}

func (b *pulmonaryRC) Base() *Base { return &b.Base }

func (b *pulmonaryRC) SetupDOFs(h *dof.Handler) {
	b.pc = b.RegisterInternalVariable(h, "internal_pressure:"+b.Name)
	b.RegisterEquations(h, 3)
}

func (b *pulmonaryRC) UpdateConstant(sys *sparse.System, params ParamSource) {
	eq0, eq2 := b.GlobalEqnIDs[0], b.GlobalEqnIDs[2]
	pin, pout := b.GlobalVarIDs[0], b.GlobalVarIDs[2]
	pc := b.GlobalVarIDs[b.pc]
	sys.F.Set(eq0, pin, 1)
	sys.F.Set(eq0, pc, -1)
	sys.F.Set(eq2, pc, 1)
	sys.F.Set(eq2, pout, -1)
}

func (b *pulmonaryRC) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	eq0, eq1 := b.GlobalEqnIDs[0], b.GlobalEqnIDs[1]
	qin, qout := b.GlobalVarIDs[1], b.GlobalVarIDs[3]
	pc := b.GlobalVarIDs[b.pc]

	Rp := b.Param(params, 0)
	C := b.Param(params, 1)

	sys.F.Set(eq0, qin, -Rp)
	sys.E.Set(eq1, pc, C)
	sys.F.Set(eq1, qin, -1)
	sys.F.Set(eq1, qout, 1)
}

func (b *pulmonaryRC) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
}

func (b *pulmonaryRC) ToSteady()   { b.Steady = true }
func (b *pulmonaryRC) ToUnsteady() { b.Steady = false }
