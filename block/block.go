// Package block implements the Block trait and catalogue of spec
// §4.D: the local-stamp contract every physical element obeys, plus
// the Type tags and their display names (grounded on
// _examples/RuiCat-circuit/types/elementType.go's element-type enum,
// generalized from electronic parts to the vascular catalogue named in
// spec §3). Type strings from a config file are resolved by package
// config, not by a registry here.
package block

import (
	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
)

// Type tags a block variant from the catalogue in spec §3.
type Type int

const (
	TypeBloodVessel Type = iota
	TypeJunction
	TypeResistiveJunction
	TypeBloodVesselJunction
	TypeFlowReferenceBC
	TypePressureReferenceBC
	TypeResistanceBC
	TypeWindkesselBC
	TypeOpenLoopCoronaryBC
	TypeClosedLoopCoronaryLeftBC
	TypeClosedLoopCoronaryRightBC
	TypeClosedLoopRCRBC
	TypeClosedLoopHeartPulmonary
	TypeChamberKerckhoffs
	TypeValve
	TypeExternalCouplingBC
)

var typeNames = map[Type]string{
	TypeBloodVessel:               "BloodVessel",
	TypeJunction:                  "Junction",
	TypeResistiveJunction:         "ResistiveJunction",
	TypeBloodVesselJunction:       "BloodVesselJunction",
	TypeFlowReferenceBC:           "FlowReferenceBC",
	TypePressureReferenceBC:       "PressureReferenceBC",
	TypeResistanceBC:              "ResistanceBC",
	TypeWindkesselBC:              "WindkesselBC",
	TypeOpenLoopCoronaryBC:        "OpenLoopCoronaryBC",
	TypeClosedLoopCoronaryLeftBC:  "ClosedLoopCoronaryLeftBC",
	TypeClosedLoopCoronaryRightBC: "ClosedLoopCoronaryRightBC",
	TypeClosedLoopRCRBC:           "ClosedLoopRCRBC",
	TypeClosedLoopHeartPulmonary:  "ClosedLoopHeartPulmonary",
	TypeChamberKerckhoffs:         "ChamberKerckhoffs",
	TypeValve:                     "Valve",
	TypeExternalCouplingBC:        "ExternalCouplingBC",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "Unknown"
}

// Class is the policy tag of spec §3, used e.g. to identify
// closed-loop outlets during steady-initial validation.
type Class int

const (
	ClassVessel Class = iota
	ClassJunction
	ClassBoundaryCondition
	ClassChamber
	ClassClosedLoop
	ClassExternalCoupling
)

// Triplets is the per-block declaration of how many nonzero triplets
// it contributes to F, E and the solution-dependent D bucket
// (dE+dF+dC), used by sparse.System.Reserve (spec §4.C/§4.D).
type Triplets struct {
	F, E, D int
}

// ParamSource lets a block read the model's live parameter values
// during UpdateTime/UpdateSolution without importing package model
// (which imports block), matching spec §4.F's
// parameter_values[id] -> double cache.
type ParamSource interface {
	Value(id param.ID) float64
}

// Block is the contract every catalogue member implements (spec
// §4.D). Any method may be a no-op if the block contributes nothing
// to that category.
type Block interface {
	Base() *Base
	SetupDOFs(h *dof.Handler)
	UpdateConstant(sys *sparse.System, params ParamSource)
	UpdateTime(sys *sparse.System, params ParamSource, t float64)
	UpdateSolution(sys *sparse.System, params ParamSource, y, ydot []float64)
	ToSteady()
	ToUnsteady()
}

// Base holds the fields common to every block (spec §3): identity,
// parameter references, node wiring, DOF assignment, and the
// steady-state flag. Catalogue types embed Base.
type Base struct {
	Type     Type
	Class    Class
	Name     string
	Internal bool

	GlobalParamIDs []param.ID

	InletNodeIdx  []int // indices into model.Model.nodes
	OutletNodeIdx []int

	GlobalVarIDs []int // inlet/outlet node DOFs, then internal vars
	GlobalEqnIDs []int

	Steady bool

	Triplets Triplets
}

// NewBase constructs the shared block state.
func NewBase(t Type, class Class, name string, paramIDs []param.ID) Base {
	return Base{Type: t, Class: class, Name: name, GlobalParamIDs: paramIDs}
}

// SetNodeVarIDs is called by model.Model.Finalize before SetupDOFs,
// seeding GlobalVarIDs with the inlet/outlet node DOFs (pressure then
// flow, inlets then outlets) so that SetupDOFs only has to append the
// block's own internal variables, per spec §4.D.
func (b *Base) SetNodeVarIDs(ids []int) {
	b.GlobalVarIDs = append([]int(nil), ids...)
}

// RegisterInternalVariable registers one internal variable DOF
// (e.g. the internal capacitor-node pressure of a BloodVessel),
// appends its global DOF to GlobalVarIDs, and returns its local
// position within GlobalVarIDs — not the global DOF itself — so call
// sites can address it the same way they address node ports, via
// GlobalVarIDs[local], per spec §4.D's setup_dofs contract.
func (b *Base) RegisterInternalVariable(h *dof.Handler, label string) int {
	idx := h.RegisterVariable(label)
	b.GlobalVarIDs = append(b.GlobalVarIDs, idx)
	return len(b.GlobalVarIDs) - 1
}

// RegisterEquations registers n equations and records their global
// indices in GlobalEqnIDs.
func (b *Base) RegisterEquations(h *dof.Handler, n int) []int {
	ids := make([]int, n)
	for i := 0; i < n; i++ {
		ids[i] = h.RegisterEquation()
	}
	b.GlobalEqnIDs = append(b.GlobalEqnIDs, ids...)
	return ids
}

// Param returns the current value of the block's i'th declared
// parameter.
func (b *Base) Param(params ParamSource, i int) float64 {
	return params.Value(b.GlobalParamIDs[i])
}
