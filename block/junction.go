package block

import (
	"zerod0d/dof"
	"zerod0d/sparse"
)

// Junction models an arbitrary-fanout junction: pressure continuity
// across every incident node and total mass conservation (spec §4.D,
// grounded on
// _examples/original_source/src/model/junction.hpp's update_constant).
// GlobalVarIDs after node wiring holds, in order,
// [Pin0, Qin0, Pin1, Qin1, ..., Pout0, Qout0, ...].
type Junction struct {
	Base
	numInlets, numOutlets int
}

// NewJunction constructs a Junction with the given inlet/outlet
// counts, known once the model has wired its incident nodes.
func NewJunction(name string, numInlets, numOutlets int) *Junction {
	j := &Junction{Base: NewBase(TypeJunction, ClassJunction, name, nil), numInlets: numInlets, numOutlets: numOutlets}
	n := numInlets + numOutlets
	j.Triplets = Triplets{F: 2*(n-1) + n}
	return j
}

func (j *Junction) Base() *Base { return &j.Base }

func (j *Junction) SetupDOFs(h *dof.Handler) {
	n := j.numInlets + j.numOutlets
	j.RegisterEquations(h, n)
}

// UpdateConstant stamps pressure continuity for the first n-1
// incident node pairs (relative to node 0) and mass conservation
// (Σ Qin = Σ Qout) into the last row, verbatim per the reference
// junction.hpp.
func (j *Junction) UpdateConstant(sys *sparse.System, params ParamSource) {
	n := j.numInlets + j.numOutlets
	p0 := j.GlobalVarIDs[0]

	for i := 0; i < n-1; i++ {
		eq := j.GlobalEqnIDs[i]
		sys.F.Set(eq, p0, 1)
		sys.F.Set(eq, j.GlobalVarIDs[2*i+2], -1)
	}

	massEq := j.GlobalEqnIDs[n-1]
	for i := 1; i < j.numInlets*2; i += 2 {
		sys.F.Set(massEq, j.GlobalVarIDs[i], 1)
	}
	for i := j.numInlets*2 + 1; i < n*2; i += 2 {
		sys.F.Set(massEq, j.GlobalVarIDs[i], -1)
	}
}

func (j *Junction) UpdateTime(sys *sparse.System, params ParamSource, t float64) {}

func (j *Junction) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {}

func (j *Junction) ToSteady()   {}
func (j *Junction) ToUnsteady() {}
