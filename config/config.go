// Package config loads a svZeroDSolver-style JSON configuration into a
// model.Model (spec §6), grounded on
// _examples/original_source/src/io/configreader.hpp's block/connection
// construction, using encoding/json instead of simdjson since no
// example repo in the pack imports a JSON library — see DESIGN.md.
package config

import (
	"encoding/json"
	"fmt"

	"zerod0d/block"
	"zerod0d/model"
	"zerod0d/param"
	"zerod0d/state"
	"zerod0d/zerr"
)

// SimulationParameters mirrors spec §6's simulation_parameters object,
// with defaults matching configreader.hpp's fallbacks.
type SimulationParameters struct {
	NumberOfCardiacCycles          int
	NumberOfTimePtsPerCardiacCycle int
	AbsoluteTolerance              float64
	MaximumNonlinearIterations     int
	SteadyInitial                  bool
	OutputInterval                 int
	OutputMeanOnly                 bool
	OutputVariableBased            bool
	OutputAllCycles                bool
	CoupledSimulation              bool
	ExternalStepSize               float64
}

// NumTimeSteps returns (pts_per_cycle-1)*cycles + 1, the total number
// of time steps across the whole run (spec §6).
func (s SimulationParameters) NumTimeSteps() int {
	return (s.NumberOfTimePtsPerCardiacCycle-1)*s.NumberOfCardiacCycles + 1
}

// Result bundles everything Load produces: the finalized model, its
// solver parameters, the derived time step size, and the initial
// state.
type Result struct {
	Model        *model.Model
	Sim          SimulationParameters
	TimeStepSize float64
	Initial      state.State
}

type rawConfig struct {
	SimulationParameters json.RawMessage  `json:"simulation_parameters"`
	Vessels              []vesselJSON     `json:"vessels"`
	Junctions            []junctionJSON   `json:"junctions"`
	BoundaryConditions   []bcJSON         `json:"boundary_conditions"`
	ClosedLoopBlocks     []closedLoopJSON `json:"closed_loop_blocks"`
	ExternalCoupling     []couplingJSON   `json:"external_solver_coupling_blocks"`
	InitialCondition     map[string]float64 `json:"initial_condition"`
}

type simParamsJSON struct {
	NumberOfCardiacCycles          int      `json:"number_of_cardiac_cycles"`
	NumberOfTimePtsPerCardiacCycle int      `json:"number_of_time_pts_per_cardiac_cycle"`
	AbsoluteTolerance              *float64 `json:"absolute_tolerance"`
	MaximumNonlinearIterations     *int     `json:"maximum_nonlinear_iterations"`
	SteadyInitial                  *bool    `json:"steady_initial"`
	OutputInterval                 *int     `json:"output_interval"`
	OutputMeanOnly                 *bool    `json:"output_mean_only"`
	OutputVariableBased            *bool    `json:"output_variable_based"`
	OutputAllCycles                *bool    `json:"output_all_cycles"`
	CoupledSimulation              *bool    `json:"coupled_simulation"`
	ExternalStepSize               *float64 `json:"external_step_size"`
}

type vesselJSON struct {
	VesselID           int64                      `json:"vessel_id"`
	VesselName         string                     `json:"vessel_name"`
	ZeroDElementType   string                     `json:"zero_d_element_type"`
	ZeroDElementValues map[string]json.RawMessage `json:"zero_d_element_values"`
	BoundaryConditions struct {
		Inlet  string `json:"inlet"`
		Outlet string `json:"outlet"`
	} `json:"boundary_conditions"`
}

type junctionJSON struct {
	JunctionName   string                     `json:"junction_name"`
	JunctionType   string                     `json:"junction_type"`
	InletVessels   []int64                    `json:"inlet_vessels"`
	OutletVessels  []int64                    `json:"outlet_vessels"`
	JunctionValues map[string]json.RawMessage `json:"junction_values"`
}

type bcJSON struct {
	BCName   string                     `json:"bc_name"`
	BCType   string                     `json:"bc_type"`
	BCValues map[string]json.RawMessage `json:"bc_values"`
}

type closedLoopJSON struct {
	ClosedLoopType     string             `json:"closed_loop_type"`
	CardiacCyclePeriod float64            `json:"cardiac_cycle_period"`
	Parameters         map[string]float64 `json:"parameters"`
	OutletBlocks       []string           `json:"outlet_blocks"`
}

type couplingJSON struct {
	Name           string                     `json:"name"`
	Type           string                     `json:"type"`
	Location       string                     `json:"location"`
	ConnectedBlock string                     `json:"connected_block"`
	Values         map[string]json.RawMessage `json:"values"`
}

// builder carries the in-progress model plus the deferred connection
// list, since blocks may be named before every block they connect to
// exists (spec §4.E/§6).
type builder struct {
	m             *model.Model
	vesselName    map[int64]string
	connections   [][2]string
	closedLoopBCs []string
}

func (b *builder) connect(from, to string) { b.connections = append(b.connections, [2]string{from, to}) }

// scalar reads a required plain-number field.
func scalar(values map[string]json.RawMessage, key string) (float64, error) {
	raw, ok := values[key]
	if !ok {
		return 0, zerr.Configurationf("missing required field %q", key)
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, zerr.Configurationf("field %q is not a number: %v", key, err)
	}
	return v, nil
}

// scalarOr reads an optional plain-number field, defaulting if absent.
func scalarOr(values map[string]json.RawMessage, key string, def float64) float64 {
	v, err := scalar(values, key)
	if err != nil {
		return def
	}
	return v
}

// addParam adds a required field as a Parameter, honoring the
// scalar-or-array-with-shared-"t" convention used throughout
// boundary_conditions.bc_values (spec §6).
func (b *builder) addParam(values map[string]json.RawMessage, key string, periodic bool) (param.ID, error) {
	raw, ok := values[key]
	if !ok {
		return 0, zerr.Configurationf("missing required field %q", key)
	}
	var single float64
	if err := json.Unmarshal(raw, &single); err == nil {
		return b.m.AddParameter(single), nil
	}
	var series []float64
	if err := json.Unmarshal(raw, &series); err != nil {
		return 0, zerr.Configurationf("field %q is neither a number nor an array: %v", key, err)
	}
	if len(series) == 1 {
		return b.m.AddParameter(series[0]), nil
	}
	var times []float64
	if raw, ok := values["t"]; ok {
		if err := json.Unmarshal(raw, &times); err != nil {
			return 0, zerr.Configurationf("field \"t\" is not an array: %v", err)
		}
	}
	if len(times) != len(series) {
		return 0, zerr.Configurationf("field %q has %d samples but \"t\" has %d", key, len(series), len(times))
	}
	return b.m.AddParameterSeries(times, series, periodic)
}

// addParamDefault is addParam but returns a constant def if the field
// is absent instead of erroring.
func (b *builder) addParamDefault(values map[string]json.RawMessage, key string, def float64) (param.ID, error) {
	if _, ok := values[key]; !ok {
		return b.m.AddParameter(def), nil
	}
	return b.addParam(values, key, true)
}

// Load parses a configuration document into a finalized Model plus
// its solver parameters and initial state.
func Load(data []byte) (*Result, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, zerr.Configurationf("invalid JSON: %v", err)
	}

	sim, err := parseSimulationParameters(raw.SimulationParameters)
	if err != nil {
		return nil, err
	}

	b := &builder{m: model.New(), vesselName: make(map[int64]string)}

	if err := b.loadVessels(raw.Vessels); err != nil {
		return nil, err
	}
	if err := b.loadBoundaryConditions(raw.BoundaryConditions); err != nil {
		return nil, err
	}
	if err := b.loadJunctions(raw.Junctions); err != nil {
		return nil, err
	}
	if err := b.loadClosedLoopBlocks(raw.ClosedLoopBlocks); err != nil {
		return nil, err
	}
	if err := b.loadExternalCoupling(raw.ExternalCoupling); err != nil {
		return nil, err
	}
	if err := b.wireConnections(); err != nil {
		return nil, err
	}

	if err := b.m.Finalize(); err != nil {
		return nil, err
	}

	timeStepSize := b.m.CardiacCyclePeriod() / float64(sim.NumberOfTimePtsPerCardiacCycle-1)

	init := state.Zero(b.m.DOF().Size())
	for label, v := range raw.InitialCondition {
		for i, l := range b.m.DOF().Variables() {
			if l == label {
				init.Y.SetVec(i, v)
			}
		}
	}

	return &Result{Model: b.m, Sim: sim, TimeStepSize: timeStepSize, Initial: init}, nil
}

func parseSimulationParameters(raw json.RawMessage) (SimulationParameters, error) {
	var sp simParamsJSON
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &sp); err != nil {
			return SimulationParameters{}, zerr.Configurationf("invalid simulation_parameters: %v", err)
		}
	}
	out := SimulationParameters{
		NumberOfCardiacCycles:          sp.NumberOfCardiacCycles,
		NumberOfTimePtsPerCardiacCycle: sp.NumberOfTimePtsPerCardiacCycle,
		AbsoluteTolerance:              1e-8,
		MaximumNonlinearIterations:     30,
		SteadyInitial:                  true,
		OutputInterval:                 1,
	}
	if sp.AbsoluteTolerance != nil {
		out.AbsoluteTolerance = *sp.AbsoluteTolerance
	}
	if sp.MaximumNonlinearIterations != nil {
		out.MaximumNonlinearIterations = *sp.MaximumNonlinearIterations
	}
	if sp.SteadyInitial != nil {
		out.SteadyInitial = *sp.SteadyInitial
	}
	if sp.OutputInterval != nil {
		out.OutputInterval = *sp.OutputInterval
	}
	if sp.OutputMeanOnly != nil {
		out.OutputMeanOnly = *sp.OutputMeanOnly
	}
	if sp.OutputVariableBased != nil {
		out.OutputVariableBased = *sp.OutputVariableBased
	}
	if sp.OutputAllCycles != nil {
		out.OutputAllCycles = *sp.OutputAllCycles
	}
	if sp.CoupledSimulation != nil {
		out.CoupledSimulation = *sp.CoupledSimulation
	}
	if sp.ExternalStepSize != nil {
		out.ExternalStepSize = *sp.ExternalStepSize
	}
	if out.NumberOfCardiacCycles <= 0 {
		return out, zerr.Configurationf("number_of_cardiac_cycles must be positive")
	}
	if out.NumberOfTimePtsPerCardiacCycle <= 1 {
		return out, zerr.Configurationf("number_of_time_pts_per_cardiac_cycle must be greater than 1")
	}
	return out, nil
}

func (b *builder) loadVessels(vessels []vesselJSON) error {
	for _, v := range vessels {
		if v.ZeroDElementType != "BloodVessel" {
			return zerr.Configurationf("vessel %q: unknown zero_d_element_type %q", v.VesselName, v.ZeroDElementType)
		}
		rID, err := b.addParam(v.ZeroDElementValues, "R_poiseuille", false)
		if err != nil {
			return fmt.Errorf("vessel %q: %w", v.VesselName, err)
		}
		cID, err := b.addParamDefault(v.ZeroDElementValues, "C", 0)
		if err != nil {
			return err
		}
		lID, err := b.addParamDefault(v.ZeroDElementValues, "L", 0)
		if err != nil {
			return err
		}
		sID, err := b.addParamDefault(v.ZeroDElementValues, "stenosis_coefficient", 0)
		if err != nil {
			return err
		}
		blk := block.NewVessel(v.VesselName, []param.ID{rID, cID, lID, sID})
		if _, err := b.m.AddBlock(blk, false); err != nil {
			return err
		}
		b.vesselName[v.VesselID] = v.VesselName

		if v.BoundaryConditions.Inlet != "" {
			b.connect(v.BoundaryConditions.Inlet, v.VesselName)
		}
		if v.BoundaryConditions.Outlet != "" {
			b.connect(v.VesselName, v.BoundaryConditions.Outlet)
		}
	}
	return nil
}

func (b *builder) loadBoundaryConditions(bcs []bcJSON) error {
	for _, bc := range bcs {
		var blk block.Block
		var err error
		switch bc.BCType {
		case "RCR":
			blk, err = b.newWindkessel(bc)
		case "ClosedLoopRCR":
			blk, err = b.newClosedLoopRCR(bc)
		case "FLOW":
			blk, err = b.newFlowReference(bc)
		case "PRESSURE":
			blk, err = b.newPressureReference(bc)
		case "RESISTANCE":
			blk, err = b.newResistance(bc)
		case "CORONARY":
			blk, err = b.newOpenLoopCoronary(bc)
		case "ClosedLoopCoronary":
			blk, err = b.newClosedLoopCoronary(bc)
		default:
			return zerr.Configurationf("boundary condition %q: unknown bc_type %q", bc.BCName, bc.BCType)
		}
		if err != nil {
			return fmt.Errorf("boundary condition %q: %w", bc.BCName, err)
		}
		if _, err := b.m.AddBlock(blk, false); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) newWindkessel(bc bcJSON) (block.Block, error) {
	rp, err := b.addParam(bc.BCValues, "Rp", false)
	if err != nil {
		return nil, err
	}
	c, err := b.addParam(bc.BCValues, "C", false)
	if err != nil {
		return nil, err
	}
	rd, err := b.addParam(bc.BCValues, "Rd", false)
	if err != nil {
		return nil, err
	}
	pd, err := b.addParam(bc.BCValues, "Pd", false)
	if err != nil {
		return nil, err
	}
	return block.NewWindkesselBC(bc.BCName, []param.ID{rp, c, rd, pd}), nil
}

func (b *builder) newClosedLoopRCR(bc bcJSON) (block.Block, error) {
	rp, err := b.addParam(bc.BCValues, "Rp", false)
	if err != nil {
		return nil, err
	}
	c, err := b.addParam(bc.BCValues, "C", false)
	if err != nil {
		return nil, err
	}
	rd, err := b.addParam(bc.BCValues, "Rd", false)
	if err != nil {
		return nil, err
	}
	if scalarOr(bc.BCValues, "closed_loop_outlet", 0) != 0 {
		b.closedLoopBCs = append(b.closedLoopBCs, bc.BCName)
	}
	return block.NewClosedLoopRCRBC(bc.BCName, []param.ID{rp, c, rd}), nil
}

func (b *builder) newFlowReference(bc bcJSON) (block.Block, error) {
	q, err := b.addParam(bc.BCValues, "Q", true)
	if err != nil {
		return nil, err
	}
	return block.NewFlowReferenceBC(bc.BCName, q), nil
}

func (b *builder) newPressureReference(bc bcJSON) (block.Block, error) {
	p, err := b.addParam(bc.BCValues, "P", true)
	if err != nil {
		return nil, err
	}
	return block.NewPressureReferenceBC(bc.BCName, p), nil
}

func (b *builder) newResistance(bc bcJSON) (block.Block, error) {
	r, err := b.addParam(bc.BCValues, "R", true)
	if err != nil {
		return nil, err
	}
	pd, err := b.addParam(bc.BCValues, "Pd", true)
	if err != nil {
		return nil, err
	}
	return block.NewResistanceBC(bc.BCName, []param.ID{r, pd}), nil
}

func (b *builder) newOpenLoopCoronary(bc bcJSON) (block.Block, error) {
	ra, err := b.addParam(bc.BCValues, "Ra1", false)
	if err != nil {
		return nil, err
	}
	ca, err := b.addParam(bc.BCValues, "Ca", false)
	if err != nil {
		return nil, err
	}
	ram, err := b.addParam(bc.BCValues, "Ra2", false)
	if err != nil {
		return nil, err
	}
	cim, err := b.addParam(bc.BCValues, "Cc", false)
	if err != nil {
		return nil, err
	}
	rv, err := b.addParam(bc.BCValues, "Rv1", false)
	if err != nil {
		return nil, err
	}
	pv, err := b.addParam(bc.BCValues, "P_v", true)
	if err != nil {
		return nil, err
	}
	pim, err := b.addParam(bc.BCValues, "Pim", true)
	if err != nil {
		return nil, err
	}
	return block.NewOpenLoopCoronaryBC(bc.BCName, []param.ID{ra, ca, ram, cim, rv, pv, pim}), nil
}

func (b *builder) newClosedLoopCoronary(bc bcJSON) (block.Block, error) {
	ra, err := b.addParam(bc.BCValues, "Ra", false)
	if err != nil {
		return nil, err
	}
	ca, err := b.addParam(bc.BCValues, "Ca", false)
	if err != nil {
		return nil, err
	}
	ram, err := b.addParam(bc.BCValues, "Ram", false)
	if err != nil {
		return nil, err
	}
	cim, err := b.addParam(bc.BCValues, "Cim", false)
	if err != nil {
		return nil, err
	}
	rv, err := b.addParam(bc.BCValues, "Rv", false)
	if err != nil {
		return nil, err
	}
	pim, err := b.addParamDefault(bc.BCValues, "Pim", 0)
	if err != nil {
		return nil, err
	}
	b.closedLoopBCs = append(b.closedLoopBCs, bc.BCName)

	var side string
	if raw, ok := bc.BCValues["side"]; ok {
		json.Unmarshal(raw, &side)
	}
	ids := []param.ID{ra, ca, ram, cim, rv, pim}
	if side == "right" {
		return block.NewClosedLoopCoronaryRightBC(bc.BCName, ids), nil
	}
	return block.NewClosedLoopCoronaryLeftBC(bc.BCName, ids), nil
}

func (b *builder) loadJunctions(junctions []junctionJSON) error {
	for _, j := range junctions {
		numIn, numOut := len(j.InletVessels), len(j.OutletVessels)
		var blk block.Block
		switch j.JunctionType {
		case "NORMAL_JUNCTION", "internal_junction":
			blk = block.NewJunction(j.JunctionName, numIn, numOut)
		case "resistive_junction":
			var rRaw []json.RawMessage
			if raw, ok := j.JunctionValues["R"]; ok {
				if err := json.Unmarshal(raw, &rRaw); err != nil {
					return zerr.Configurationf("junction %q: invalid R array: %v", j.JunctionName, err)
				}
			}
			ids := make([]param.ID, len(rRaw))
			for i, raw := range rRaw {
				var v float64
				if err := json.Unmarshal(raw, &v); err != nil {
					return zerr.Configurationf("junction %q: R[%d] is not a number", j.JunctionName, i)
				}
				ids[i] = b.m.AddParameter(v)
			}
			blk = block.NewResistiveJunction(j.JunctionName, numIn, numOut, ids)
		case "BloodVesselJunction":
			var vals map[string][]float64
			raw, _ := json.Marshal(j.JunctionValues)
			json.Unmarshal(raw, &vals)
			ids := make([]param.ID, 0, 4*numOut)
			for k := 0; k < numOut; k++ {
				for _, key := range []string{"R", "C", "L", "stenosis_coefficient"} {
					v := 0.0
					if arr, ok := vals[key]; ok && k < len(arr) {
						v = arr[k]
					}
					ids = append(ids, b.m.AddParameter(v))
				}
			}
			blk = block.NewBloodVesselJunction(j.JunctionName, numOut, ids)
		default:
			return zerr.Configurationf("junction %q: unknown junction_type %q", j.JunctionName, j.JunctionType)
		}
		if _, err := b.m.AddBlock(blk, false); err != nil {
			return err
		}
		for _, id := range j.InletVessels {
			name, ok := b.vesselName[id]
			if !ok {
				return zerr.Graphf("junction %q: unknown inlet_vessel id %d", j.JunctionName, id)
			}
			b.connect(name, j.JunctionName)
		}
		for _, id := range j.OutletVessels {
			name, ok := b.vesselName[id]
			if !ok {
				return zerr.Graphf("junction %q: unknown outlet_vessel id %d", j.JunctionName, id)
			}
			b.connect(j.JunctionName, name)
		}
	}
	return nil
}

func (b *builder) loadClosedLoopBlocks(blocks []closedLoopJSON) error {
	seen := false
	for _, cl := range blocks {
		if cl.ClosedLoopType != "ClosedLoopHeartAndPulmonary" {
			continue
		}
		if seen {
			return zerr.Configurationf("only one ClosedLoopHeartAndPulmonary block is supported")
		}
		seen = true

		name := "CLH"
		paramIDs, err := b.heartParamIDs(cl.Parameters)
		if err != nil {
			return err
		}
		blk := block.NewClosedLoopHeartPulmonary(name, paramIDs, cl.CardiacCyclePeriod)
		if _, err := b.m.AddBlock(blk, false); err != nil {
			return err
		}

		inletJunction := block.NewJunction("J_heart_inlet", len(b.closedLoopBCs), 1)
		if _, err := b.m.AddBlock(inletJunction, false); err != nil {
			return err
		}
		b.connect("J_heart_inlet", name)
		for _, bc := range b.closedLoopBCs {
			b.connect(bc, "J_heart_inlet")
		}

		outletJunction := block.NewJunction("J_heart_outlet", 1, len(cl.OutletBlocks))
		if _, err := b.m.AddBlock(outletJunction, false); err != nil {
			return err
		}
		b.connect(name, "J_heart_outlet")
		for _, out := range cl.OutletBlocks {
			b.connect("J_heart_outlet", out)
		}
	}
	return nil
}

// heartParamIDs maps the 27 named parameters of the original
// ClosedLoopHeartAndPulmonary config block onto the 38 values
// ClosedLoopHeartPulmonary's simplified chamber+valve+RC composition
// needs. This is an approximate correspondence, not a literal
// translation — see DESIGN.md.
func (b *builder) heartParamIDs(p map[string]float64) ([]param.ID, error) {
	need := []string{"Tsa", "tpwave", "Erv_s", "Elv_s", "Emax_ra", "Emax_la", "Vrv_u", "Vlv_u", "Rra_v", "Rlv_ao", "Rrv_a", "Rla_v", "Rpd", "Cp"}
	for _, k := range need {
		if _, ok := p[k]; !ok {
			return nil, zerr.Configurationf("ClosedLoopHeartAndPulmonary: missing parameter %q", k)
		}
	}
	period := p["Tsa"] + p["tpwave"]
	chamber := func(emax, vu float64) []float64 {
		emin := emax * 0.05
		vrs := vu * 0.5
		return []float64{emax, emin, vu, vrs, p["Tsa"], period - p["Tsa"]}
	}
	valve := func(rmax, rmin float64) []float64 { return []float64{rmax, rmin, 1e3} }

	vals := []float64{}
	vals = append(vals, chamber(p["Emax_ra"], p["Vrv_u"])...) // RA
	vals = append(vals, chamber(p["Erv_s"], p["Vrv_u"])...)   // RV
	vals = append(vals, chamber(p["Emax_la"], p["Vlv_u"])...) // LA
	vals = append(vals, chamber(p["Elv_s"], p["Vlv_u"])...)   // LV
	vals = append(vals, valve(p["Rra_v"]*50, p["Rra_v"])...)  // tricuspid
	vals = append(vals, valve(p["Rrv_a"]*50, p["Rrv_a"])...)  // pulmonic
	vals = append(vals, valve(p["Rla_v"]*50, p["Rla_v"])...)  // mitral
	vals = append(vals, valve(p["Rlv_ao"]*50, p["Rlv_ao"])...) // aortic
	vals = append(vals, p["Rpd"], p["Cp"])                    // pulmonary RC

	ids := make([]param.ID, len(vals))
	for i, v := range vals {
		ids[i] = b.m.AddParameter(v)
	}
	return ids, nil
}

func (b *builder) loadExternalCoupling(couplings []couplingJSON) error {
	for _, c := range couplings {
		var kind block.CouplingKind
		switch c.Type {
		case "FLOW":
			kind = block.CouplingFlow
		case "PRESSURE":
			kind = block.CouplingPressure
		default:
			return zerr.Configurationf("external coupling block %q: unknown type %q", c.Name, c.Type)
		}
		key := "Q"
		if kind == block.CouplingPressure {
			key = "P"
		}
		valID, err := b.addParam(c.Values, key, true)
		if err != nil {
			return fmt.Errorf("external coupling block %q: %w", c.Name, err)
		}
		blk := block.NewExternalCouplingBC(c.Name, valID, kind)
		if _, err := b.m.AddBlock(blk, false); err != nil {
			return err
		}
		switch c.Location {
		case "inlet":
			b.connect(c.Name, c.ConnectedBlock)
		case "outlet":
			b.connect(c.ConnectedBlock, c.Name)
		default:
			return zerr.Configurationf("external coupling block %q: unknown location %q", c.Name, c.Location)
		}
	}
	return nil
}

// wireConnections resolves the deferred (from,to) name pairs into
// Model nodes, matching configreader.hpp's connection pass which runs
// after every block has been constructed.
func (b *builder) wireConnections() error {
	for _, conn := range b.connections {
		fromID, ok := b.m.GetBlockID(conn[0])
		if !ok {
			return zerr.Graphf("connection references unknown block %q", conn[0])
		}
		toID, ok := b.m.GetBlockID(conn[1])
		if !ok {
			return zerr.Graphf("connection references unknown block %q", conn[1])
		}
		b.m.AddNode(fromID, toID, conn[0]+":"+conn[1])
	}
	return nil
}
