package sim

import (
	"testing"

	"zerod0d/block"
	"zerod0d/config"
	"zerod0d/model"
	"zerod0d/param"
	"zerod0d/state"
)

func buildSimpleModel(t *testing.T) *config.Result {
	t.Helper()
	const cfg = `{
	  "simulation_parameters": {
	    "number_of_cardiac_cycles": 2,
	    "number_of_time_pts_per_cardiac_cycle": 6,
	    "steady_initial": false
	  },
	  "vessels": [
	    {
	      "vessel_id": 0,
	      "vessel_name": "branch0",
	      "zero_d_element_type": "BloodVessel",
	      "zero_d_element_values": {"R_poiseuille": 1.0, "C": 1.0},
	      "boundary_conditions": {"inlet": "INFLOW", "outlet": "OUT"}
	    }
	  ],
	  "boundary_conditions": [
	    {"bc_name": "INFLOW", "bc_type": "FLOW", "bc_values": {"Q": 2.0}},
	    {"bc_name": "OUT", "bc_type": "RCR", "bc_values": {"Rp": 1.0, "C": 1.0, "Rd": 1.0, "Pd": 0.0}}
	  ]
	}`
	r, err := config.Load([]byte(cfg))
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return r
}

func TestExecuteRunsTransientAndRecordsEveryTimeStep(t *testing.T) {
	cfg := buildSimpleModel(t)
	run, err := Execute(cfg, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(run.Times) != cfg.Sim.NumTimeSteps() {
		t.Fatalf("len(Times) = %d, want %d", len(run.Times), cfg.Sim.NumTimeSteps())
	}
	if len(run.History) != len(run.Times) {
		t.Fatalf("len(History) = %d, want %d", len(run.History), len(run.Times))
	}
	if run.Telemetry.Steps != len(run.Times)-1 {
		t.Fatalf("Telemetry.Steps = %d, want %d", run.Telemetry.Steps, len(run.Times)-1)
	}
}

func TestExecuteWithSteadyInitialOverride(t *testing.T) {
	cfg := buildSimpleModel(t)
	yes := true
	run, err := Execute(cfg, &yes)
	if err != nil {
		t.Fatalf("Execute with steady_initial=true: %v", err)
	}
	if len(run.History) == 0 {
		t.Fatal("expected a non-empty history")
	}
}

func TestExecuteRejectsSteadyInitialForClosedLoopHeart(t *testing.T) {
	m := model.New()
	ids := make([]param.ID, 38)
	for i := range ids {
		ids[i] = m.AddParameter(1.0)
	}
	if _, err := m.AddBlock(block.NewClosedLoopHeartPulmonary("CLH", ids, 1.0), false); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}

	cfg := &config.Result{
		Model:        m,
		Sim:          config.SimulationParameters{NumberOfCardiacCycles: 1, NumberOfTimePtsPerCardiacCycle: 6, SteadyInitial: true},
		TimeStepSize: 0.1,
		Initial:      state.Zero(0),
	}
	if _, err := Execute(cfg, nil); err == nil {
		t.Fatal("expected steady_initial to be rejected for a ClosedLoopHeartAndPulmonary model")
	}
}
