package block

import (
	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// ResistiveJunction is a star junction with a purely resistive path
// from every inlet and outlet to a shared internal node Pc (spec §3,
// grounded on the doc-comment governing equations of
// _examples/original_source/src/model/bloodvesseljunction.hpp,
// restricted to the resistive-only case named separately in
// _examples/original_source/src/io/configreader.hpp's "NORMAL_JUNCTION"
// branch). GlobalParamIDs holds one resistance per inlet+outlet, in
// the same inlet-then-outlet order as GlobalVarIDs.
//
//	Pin,i - Pc = R_i * Qin,i   for every inlet i
//	Pc - Pout,j = R_j * Qout,j for every outlet j
//	Σ Qin - Σ Qout = 0
type ResistiveJunction struct {
	Base
	numInlets, numOutlets int
	pc                    int
}

func NewResistiveJunction(name string, numInlets, numOutlets int, r []param.ID) *ResistiveJunction {
	j := &ResistiveJunction{
		Base:      NewBase(TypeResistiveJunction, ClassJunction, name, r),
		numInlets: numInlets, numOutlets: numOutlets,
	}
	n := numInlets + numOutlets
	j.Triplets = Triplets{F: 3*n + n}
	return j
}

func (j *ResistiveJunction) Base() *Base { return &j.Base }

func (j *ResistiveJunction) SetupDOFs(h *dof.Handler) {
	j.pc = j.RegisterInternalVariable(h, "internal_pressure:"+j.Name)
	j.RegisterEquations(h, j.numInlets+j.numOutlets+1)
}

func (j *ResistiveJunction) UpdateConstant(sys *sparse.System, params ParamSource) {
	n := j.numInlets + j.numOutlets
	pc := j.GlobalVarIDs[j.pc]
	massEq := j.GlobalEqnIDs[n]

	for i := 0; i < j.numInlets; i++ {
		eq := j.GlobalEqnIDs[i]
		pIn, qIn := j.GlobalVarIDs[2*i], j.GlobalVarIDs[2*i+1]
		sys.F.Set(eq, pIn, 1)
		sys.F.Set(eq, pc, -1)
		sys.F.Set(massEq, qIn, 1)
	}
	for k := 0; k < j.numOutlets; k++ {
		i := j.numInlets + k
		eq := j.GlobalEqnIDs[i]
		pOut, qOut := j.GlobalVarIDs[2*i], j.GlobalVarIDs[2*i+1]
		sys.F.Set(eq, pc, 1)
		sys.F.Set(eq, pOut, -1)
		sys.F.Set(massEq, qOut, -1)
	}
}

func (j *ResistiveJunction) UpdateTime(sys *sparse.System, params ParamSource, t float64) {
	n := j.numInlets + j.numOutlets
	for i := 0; i < n; i++ {
		eq := j.GlobalEqnIDs[i]
		q := j.GlobalVarIDs[2*i+1]
		R := j.Param(params, i)
		sys.F.Set(eq, q, -R)
	}
}

func (j *ResistiveJunction) UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64) {
}

func (j *ResistiveJunction) ToSteady()   {}
func (j *ResistiveJunction) ToUnsteady() {}
