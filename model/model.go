package model

import (
	"math"

	"zerod0d/block"
	"zerod0d/dof"
	"zerod0d/param"
	"zerod0d/sparse"
	"zerod0d/zerr"
)

// periodTolerance bounds how far apart two declared cardiac cycle
// periods may be before Model.Finalize treats them as inconsistent
// (spec §4.F).
const periodTolerance = 1e-9

// Model owns every block, node and parameter in the assembly, assigns
// their DOFs through a dof.Handler, and drives the local-stamp
// contract (spec §4.B/§4.F), grounded on
// _examples/original_source/src/model/Model.h. Unlike Model.h's
// kind-driven add_block factory, blocks are constructed directly
// through package block's typed constructors and handed to AddBlock
// already built — Go's typed constructors replace the C++ switch on
// an enum (see DESIGN.md).
type Model struct {
	dof    *dof.Handler
	system *sparse.System

	params    []*param.Parameter
	blocks    []block.Block
	nameIndex map[string]BlockID
	nodes     []*Node

	cardiacCyclePeriod float64
	periodSet          bool

	steady   bool
	capCache map[param.ID]float64

	currentTime float64

	finalized bool
}

// New returns an empty Model.
func New() *Model {
	return &Model{
		dof:       dof.New(),
		nameIndex: make(map[string]BlockID),
		capCache:  make(map[param.ID]float64),
	}
}

// AddParameter registers a constant-valued parameter and returns its
// ID.
func (m *Model) AddParameter(v float64) param.ID {
	id := param.ID(len(m.params))
	m.params = append(m.params, param.NewConstant(id, v))
	return id
}

// AddParameterSeries registers a time-series parameter and returns
// its ID.
func (m *Model) AddParameterSeries(times, values []float64, periodic bool) (param.ID, error) {
	id := param.ID(len(m.params))
	p, err := param.NewSeries(id, times, values, periodic)
	if err != nil {
		return 0, err
	}
	m.params = append(m.params, p)
	return id, nil
}

// UpdateParameterValue overwrites a constant parameter's value in
// place (spec §4.F's update_parameter_value, used by coupled
// simulations to push externally-supplied values in between steps).
func (m *Model) UpdateParameterValue(id param.ID, v float64) {
	m.params[id].Update(v)
}

// AddBlock registers a fully-constructed block, marking it internal
// if requested, and indexes it by name. Duplicate names are rejected
// (spec §4.F: "duplicate block name" is a ConfigurationError).
func (m *Model) AddBlock(b block.Block, internal bool) (BlockID, error) {
	name := b.Base().Name
	if _, exists := m.nameIndex[name]; exists {
		return 0, zerr.Configurationf("duplicate block name %q", name)
	}
	b.Base().Internal = internal
	id := BlockID(len(m.blocks))
	m.blocks = append(m.blocks, b)
	m.nameIndex[name] = id
	return id, nil
}

// GetBlock resolves a block by name.
func (m *Model) GetBlock(name string) (block.Block, bool) {
	id, ok := m.nameIndex[name]
	if !ok {
		return nil, false
	}
	return m.blocks[id], true
}

// GetBlockID resolves a block's ID by name.
func (m *Model) GetBlockID(name string) (BlockID, bool) {
	id, ok := m.nameIndex[name]
	return id, ok
}

// GetBlockByID resolves a block by its ID.
func (m *Model) GetBlockByID(id BlockID) block.Block { return m.blocks[id] }

// Blocks returns every non-internal block, in insertion order, for
// result export and diagnostics. Blocks added with internal=true are
// skipped here even though they carry real DOFs; the child blocks a
// ClosedLoopHeartPulmonary composes itself from are never registered
// with the Model, so they do not appear either.
func (m *Model) Blocks() []block.Block {
	out := make([]block.Block, 0, len(m.blocks))
	for _, b := range m.blocks {
		if !b.Base().Internal {
			out = append(out, b)
		}
	}
	return out
}

// AddNode links a single upstream block's outlet to a single
// downstream block's inlet through a new Node (spec §4.E). The
// original Model.h accepts a vector of blocks on each side purely to
// batch-construct several nodes at once; every node it produces still
// couples exactly one outlet to exactly one inlet, so AddNode takes
// the pair directly.
func (m *Model) AddNode(inlet, outlet BlockID, name string) NodeID {
	n := &Node{Name: name, Inlet: inlet, Outlet: outlet}
	id := NodeID(len(m.nodes))
	m.nodes = append(m.nodes, n)
	ib, ob := m.blocks[inlet].Base(), m.blocks[outlet].Base()
	ib.OutletNodeIdx = append(ib.OutletNodeIdx, int(id))
	ob.InletNodeIdx = append(ob.InletNodeIdx, int(id))
	return id
}

// SetCardiacCyclePeriod fixes the period explicitly (spec §4.F);
// otherwise Finalize infers it from any periodic parameters and
// ClosedLoopHeartPulmonary blocks present, defaulting to 1.0 if none
// declare one.
func (m *Model) SetCardiacCyclePeriod(p float64) {
	m.cardiacCyclePeriod = p
	m.periodSet = true
}

// CardiacCyclePeriod returns the model's cardiac cycle length.
func (m *Model) CardiacCyclePeriod() float64 { return m.cardiacCyclePeriod }

// HasClosedLoopHeart reports whether any block in the assembly is a
// ClosedLoopHeartPulmonary, used by the simulation driver to reject
// steady_initial (spec §4.G: closed-loop heart models have no
// meaningful steady state to initialize from).
func (m *Model) HasClosedLoopHeart() bool {
	for _, b := range m.blocks {
		if _, ok := b.(*block.ClosedLoopHeartPulmonary); ok {
			return true
		}
	}
	return false
}

// checkCardiacPeriod collects every declared period (periodic
// parameters and ClosedLoopHeartPulmonary.Period()) and fails if two
// disagree beyond periodTolerance (spec §4.F).
func (m *Model) checkCardiacPeriod() error {
	found := false
	period := 0.0
	consider := func(p float64, source string) error {
		if !found {
			period, found = p, true
			return nil
		}
		if math.Abs(p-period) > periodTolerance {
			return zerr.Configurationf("inconsistent cardiac cycle period: %s declares %g, expected %g", source, p, period)
		}
		return nil
	}
	for _, p := range m.params {
		if p.IsPeriodic() {
			if err := consider(p.CyclePeriod(), "a periodic parameter"); err != nil {
				return err
			}
		}
	}
	for _, b := range m.blocks {
		if h, ok := b.(*block.ClosedLoopHeartPulmonary); ok {
			if err := consider(h.Period(), h.Base().Name); err != nil {
				return err
			}
		}
	}
	if m.periodSet {
		if err := consider(m.cardiacCyclePeriod, "an explicit cardiac_cycle_period"); err != nil {
			return err
		}
	}
	if !found {
		period = 1.0
	}
	m.cardiacCyclePeriod = period
	m.periodSet = true
	return nil
}

// Finalize assigns every DOF (nodes first, then blocks in insertion
// order, matching setup order in Model.h), resolves the cardiac cycle
// period, and allocates the sparse.System sized to the resulting
// variable/equation count. It does not stamp or Freeze the system:
// the caller (package sim) performs the first full
// update_constant+update_time+update_solution pass and then calls
// System().Freeze(), since only that first pass at the initial guess
// discovers every structural nonzero (spec §3).
func (m *Model) Finalize() error {
	if m.finalized {
		return nil
	}
	for _, n := range m.nodes {
		n.SetupDOFs(m.dof)
	}
	for _, b := range m.blocks {
		base := b.Base()
		idx := append(append([]int(nil), base.InletNodeIdx...), base.OutletNodeIdx...)
		base.SetNodeVarIDs(nodeVarIDs(m.nodes, idx))
		b.SetupDOFs(m.dof)
	}
	if err := m.checkCardiacPeriod(); err != nil {
		return err
	}

	n := m.dof.Size()
	if n != m.dof.NumVariables() || n != m.dof.NumEquations() {
		return zerr.Dimensionf("model is not square after finalize: %d variables, %d equations", m.dof.NumVariables(), m.dof.NumEquations())
	}
	m.system = sparse.NewSystem(n)

	var tF, tE, tD int
	for _, b := range m.blocks {
		t := b.Base().Triplets
		tF += t.F
		tE += t.E
		tD += t.D
	}
	m.system.Reserve(tF, tE, tD)

	m.finalized = true
	return nil
}

// System returns the assembled sparse.System (valid after Finalize).
func (m *Model) System() *sparse.System { return m.system }

// DOF returns the underlying dof.Handler, for result export against
// variable labels.
func (m *Model) DOF() *dof.Handler { return m.dof }

// Nodes returns every node, for result export.
func (m *Model) Nodes() []*Node { return m.nodes }

// Value implements block.ParamSource. UpdateSolution stamps at the
// same instant the most recent UpdateTime ran at, since it receives
// no explicit t (spec §4.C/§4.D).
func (m *Model) Value(id param.ID) float64 { return m.params[id].Get(m.currentTime) }

func (m *Model) UpdateConstant() {
	for _, b := range m.blocks {
		b.UpdateConstant(m.system, m)
	}
}

func (m *Model) UpdateTime(t float64) {
	m.currentTime = t
	for _, b := range m.blocks {
		b.UpdateTime(m.system, m, t)
	}
}

func (m *Model) UpdateSolution(y, ydot []float64) {
	for _, b := range m.blocks {
		b.UpdateSolution(m.system, m, y, ydot)
	}
}

// ToSteady collapses every periodic parameter to its cycle mean, and
// zeroes every Windkessel-like block's capacitance parameter, caching
// the original for ToUnsteady (spec §4.F/§9).
func (m *Model) ToSteady() {
	if m.steady {
		return
	}
	m.steady = true
	m.capCache = make(map[param.ID]float64)
	for _, p := range m.params {
		p.ToSteady()
	}
	for _, b := range m.blocks {
		if cs, ok := b.(block.CapacitanceSource); ok {
			for _, id := range cs.CapacitanceParamIDs() {
				if _, done := m.capCache[id]; done {
					continue
				}
				m.capCache[id] = m.params[id].Get(0)
				m.params[id].Update(0)
			}
		}
		b.ToSteady()
	}
}

// ToUnsteady restores every parameter and capacitance cached by
// ToSteady.
func (m *Model) ToUnsteady() {
	if !m.steady {
		return
	}
	m.steady = false
	for _, p := range m.params {
		p.ToUnsteady()
	}
	for _, b := range m.blocks {
		if cs, ok := b.(block.CapacitanceSource); ok {
			for _, id := range cs.CapacitanceParamIDs() {
				if v, ok := m.capCache[id]; ok {
					m.params[id].Update(v)
				}
			}
		}
		b.ToUnsteady()
	}
}
