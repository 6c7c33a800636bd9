// Package model implements Model and Node (spec §4.B/§4.E): the graph
// container that owns blocks, nodes and parameters, assigns DOFs
// through a dof.Handler, and drives the local-stamp contract across
// the whole assembly, grounded on
// _examples/original_source/src/model/Model.h and
// _examples/original_source/src/model/Node.h.
package model

import (
	"zerod0d/dof"
)

// BlockID and NodeID index into Model's block and node tables.
type BlockID int
type NodeID int

// Node couples exactly one upstream block's outlet to exactly one
// downstream block's inlet (spec §4.E): "each Node is listed in
// exactly one upstream block's outlet_nodes and exactly one downstream
// block's inlet_nodes." It owns one pressure/flow DOF pair shared by
// both blocks.
type Node struct {
	Name    string
	Inlet   BlockID // block whose outlet this node terminates
	Outlet  BlockID // block whose inlet this node feeds
	PresDOF int
	FlowDOF int
}

// SetupDOFs registers the node's pressure and flow variables (spec
// §4.E), grounded on Node.h's setup_dofs registering "pressure:<name>"
// and "flow:<name>".
func (n *Node) SetupDOFs(h *dof.Handler) {
	n.PresDOF = h.RegisterVariable("pressure:" + n.Name)
	n.FlowDOF = h.RegisterVariable("flow:" + n.Name)
}

// varIDs returns [pressure, flow] for wiring into a Block's
// GlobalVarIDs slot.
func (n *Node) varIDs() []int { return []int{n.PresDOF, n.FlowDOF} }

// nodeVarIDs concatenates the [P,Q] pairs of a block's inlet nodes
// followed by its outlet nodes, matching the order every catalogue
// block in package block assumes in SetupDOFs (spec §4.D).
func nodeVarIDs(nodes []*Node, idx []int) []int {
	ids := make([]int, 0, 2*len(idx))
	for _, i := range idx {
		ids = append(ids, nodes[i].varIDs()...)
	}
	return ids
}
