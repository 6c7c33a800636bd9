package block

import "zerod0d/param"

// CapacitanceSource is implemented by blocks that own a genuine
// capacitance parameter subject to the steady-state zeroing rule of
// spec §4.D/§9: "capacitance parameters of Windkessel-like blocks are
// temporarily replaced by zero and cached for later restoration."
// The cache itself lives in the Model, since only the Model can
// mutate a Parameter by ID.
type CapacitanceSource interface {
	CapacitanceParamIDs() []param.ID
}

func (v *Vessel) CapacitanceParamIDs() []param.ID { return []param.ID{v.GlobalParamIDs[1]} }

func (b *WindkesselBC) CapacitanceParamIDs() []param.ID { return []param.ID{b.GlobalParamIDs[1]} }

func (b *ClosedLoopRCRBC) CapacitanceParamIDs() []param.ID { return []param.ID{b.GlobalParamIDs[1]} }

func (b *OpenLoopCoronaryBC) CapacitanceParamIDs() []param.ID {
	return []param.ID{b.GlobalParamIDs[coronaryCa], b.GlobalParamIDs[coronaryCim]}
}

func (b *ClosedLoopCoronaryBC) CapacitanceParamIDs() []param.ID {
	return []param.ID{b.GlobalParamIDs[clCoronaryCa], b.GlobalParamIDs[clCoronaryCim]}
}

func (b *pulmonaryRC) CapacitanceParamIDs() []param.ID { return []param.ID{b.GlobalParamIDs[1]} }

func (h *ClosedLoopHeartPulmonary) CapacitanceParamIDs() []param.ID {
	return h.pulmonary.CapacitanceParamIDs()
}
