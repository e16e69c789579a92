package ast

import "strings"

// FlowFlags describe a point in the control-flow graph.
type FlowFlags uint32

const (
	FlowUnreachable FlowFlags = 1 << iota
	FlowStart
	FlowBranchLabel
	FlowLoopLabel
	FlowAssignment
	FlowTrueCondition
	FlowFalseCondition
	FlowSwitchClause
	FlowArrayMutation
	FlowCall
	FlowReduceLabel
	FlowReferenced
	FlowShared
)

var flowFlagNames = []struct {
	flag FlowFlags
	name string
}{
	{FlowUnreachable, "Unreachable"},
	{FlowStart, "Start"},
	{FlowBranchLabel, "BranchLabel"},
	{FlowLoopLabel, "LoopLabel"},
	{FlowAssignment, "Assignment"},
	{FlowTrueCondition, "TrueCondition"},
	{FlowFalseCondition, "FalseCondition"},
	{FlowSwitchClause, "SwitchClause"},
	{FlowArrayMutation, "ArrayMutation"},
	{FlowCall, "Call"},
	{FlowReduceLabel, "ReduceLabel"},
	{FlowReferenced, "Referenced"},
	{FlowShared, "Shared"},
}

// Has reports whether all bits of flag are set.
func (f FlowFlags) Has(flag FlowFlags) bool { return f&flag == flag }

// String returns the set flags joined with '|'.
func (f FlowFlags) String() string {
	if f == 0 {
		return "None"
	}

	var names []string
	for _, fn := range flowFlagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// FlowNode is one point in the control-flow graph. Edges point backwards:
// a node names its antecedent(s), never its successors. Label nodes
// (branch merges, loop headers) use Antecedents; all others use Antecedent.
type FlowNode struct {
	Flags       FlowFlags
	Antecedent  *FlowNode
	Antecedents []*FlowNode
	// Node is the condition expression for TrueCondition/FalseCondition nodes.
	Node Node
}

// Reachable reports whether control can reach this point. The Unreachable
// flag is propagated eagerly when the graph is built, so antecedents are
// never consulted.
func (f *FlowNode) Reachable() bool {
	return f.Flags&FlowUnreachable == 0
}
