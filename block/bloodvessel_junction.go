package block

import (
	"math"
	"strconv"

	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// BloodVesselJunction is a star junction with a full RCL BloodVessel
// on every outlet leg, sharing one inlet (spec §9 Design Notes:
// "BloodVesselJunction synthesizes child BloodVessel blocks at
// DOF-setup time"). Grounded on
// _examples/original_source/src/model/bloodvesseljunction.hpp, which
// owns an arena of hidden BloodVessel objects and delegates every
// update_* call to them; here each branch owns its own internal
// inflow variable (rather than aliasing the junction's shared Qin)
// since a shared-Qin branch stamp leaves the system over-determined
// whenever more than one outlet is present — see DESIGN.md.
// GlobalParamIDs holds, per outlet in order, [R, C, L, S] flattened
// (4*numOutlets entries).
type BloodVesselJunction struct {
	Base
	numOutlets int
	branches   []bvBranch
}

// bvBranch is one outlet leg's local state: its own inflow variable
// qk and capacitor node pck, plus the three equations
//
//	Pin - Pout_k - (R+S|qk|)*qk - L*qk_dot = 0
//	qk - Qout_k - C*Pck_dot = 0
//	Pck - Pout_k = 0
type bvBranch struct {
	paramIDs   []param.ID
	qk, pck    int
	eq0, eq1, eq2 int
}

func NewBloodVesselJunction(name string, numOutlets int, paramIDs []param.ID) *BloodVesselJunction {
	j := &BloodVesselJunction{Base: NewBase(TypeBloodVesselJunction, ClassJunction, name, paramIDs), numOutlets: numOutlets}
	j.Triplets = Triplets{F: 8*numOutlets + 1, E: 2 * numOutlets, D: numOutlets}
	return j
}

func (j *BloodVesselJunction) Base() *Base { return &j.Base }

func (j *BloodVesselJunction) SetupDOFs(h *dof.Handler) {
	j.branches = make([]bvBranch, j.numOutlets)
	for k := 0; k < j.numOutlets; k++ {
		br := &j.branches[k]
		br.paramIDs = j.GlobalParamIDs[4*k : 4*k+4]
		br.qk = j.RegisterInternalVariable(h, j.Name+"_q"+strconv.Itoa(k))
		br.pck = j.RegisterInternalVariable(h, j.Name+"_pc"+strconv.Itoa(k))
	}
	for k := range j.branches {
		ids := j.RegisterEquations(h, 3)
		j.branches[k].eq0, j.branches[k].eq1, j.branches[k].eq2 = ids[0], ids[1], ids[2]
	}
	j.RegisterEquations(h, 1) // total continuity: Qin - sum(qk) = 0
}

// CapacitanceParamIDs implements CapacitanceSource, delegating to each
// branch's own capacitance parameter (index 1 of its [R,C,L,S] tuple).
func (j *BloodVesselJunction) CapacitanceParamIDs() []param.ID {
	ids := make([]param.ID, len(j.branches))
	for k, br := range j.branches {
		ids[k] = br.paramIDs[1]
	}
	return ids
}

func (j *BloodVesselJunction) UpdateConstant(sys *sparse.System, params ParamSource) {
	pin, qin := j.GlobalVarIDs[0], j.GlobalVarIDs[1]
	totalEq := j.GlobalEqnIDs[len(j.GlobalEqnIDs)-1]
	sys.F.Set(totalEq, qin, 1)

	for k, br := range j.branches {
		pout, qout := j.GlobalVarIDs[2+2*k], j.GlobalVarIDs[3+2*k]
		qk, pck := j.GlobalVarIDs[br.qk], j.GlobalVarIDs[br.pck]

		sys.F.Set(br.eq0, pin, 1)
		sys.F.Set(br.eq0, pout, -1)

		sys.F.Set(br.eq1, qk, 1)
		sys.F.Set(br.eq1, qout, -1)

		sys.F.Set(br.eq2, pck, 1)
		sys.F.Set(br.eq2, pout, -1)

		sys.F.Set(totalEq, qk, -1)
	}
}

func (j *BloodVesselJunction) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	for _, br := range j.branches {
		C := params.Value(br.paramIDs[1])
		L := params.Value(br.paramIDs[2])
		qk, pck := j.GlobalVarIDs[br.qk], j.GlobalVarIDs[br.pck]
		sys.E.Set(br.eq0, qk, -L)
		sys.E.Set(br.eq1, pck, -C)
	}
}

func (j *BloodVesselJunction) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
	for _, br := range j.branches {
		R := params.Value(br.paramIDs[0])
		S := params.Value(br.paramIDs[3])
		qk := j.GlobalVarIDs[br.qk]
		Qk := y[qk]
		absQ := math.Abs(Qk)
		Reff := R + S*absQ

		sys.F.Set(br.eq0, qk, -Reff)
		sys.DF.Set(br.eq0, qk, -S*absQ)
	}
}

func (j *BloodVesselJunction) ToSteady()   { j.Steady = true }
func (j *BloodVesselJunction) ToUnsteady() { j.Steady = false }
