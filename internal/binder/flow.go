package binder

import "github.com/orizon-lang/minijs/internal/ast"

// newCondition creates a TrueCondition/FalseCondition node. A condition
// reached only from dead code is itself dead.
func newCondition(flags ast.FlowFlags, expr ast.Node, antecedent *ast.FlowNode) *ast.FlowNode {
	if !antecedent.Reachable() {
		flags |= ast.FlowUnreachable
	}
	return &ast.FlowNode{Flags: flags, Antecedent: antecedent, Node: expr}
}

// newLabel creates a join point. It is unreachable when every antecedent
// known at creation time is unreachable.
func newLabel(flags ast.FlowFlags, antecedents ...*ast.FlowNode) *ast.FlowNode {
	label := &ast.FlowNode{Flags: flags, Antecedents: antecedents}
	if allUnreachable(antecedents) {
		label.Flags |= ast.FlowUnreachable
	}
	return label
}

func allUnreachable(flows []*ast.FlowNode) bool {
	if len(flows) == 0 {
		return false
	}
	for _, f := range flows {
		if f.Reachable() {
			return false
		}
	}
	return true
}

func (b *Binder) bindIfStatement(node *ast.IfStatement) {
	b.bind(node.Expression)
	preIf := b.flow

	b.flow = newCondition(ast.FlowTrueCondition, node.Expression, preIf)
	b.bind(node.ThenStatement)
	thenFlow := b.flow

	b.flow = newCondition(ast.FlowFalseCondition, node.Expression, preIf)
	b.bind(node.ElseStatement)
	elseFlow := b.flow

	b.flow = newLabel(ast.FlowBranchLabel, thenFlow, elseFlow)
}

// bindLoop threads flow through a loop: the header label joins the
// pre-loop flow and the back edge, the body runs under TrueCondition and
// control leaves through FalseCondition on the label.
func (b *Binder) bindLoop(cond ast.Node, bindCondition, bindBody func()) {
	loopLabel := newLabel(ast.FlowLoopLabel, b.flow)
	b.flow = loopLabel

	bindCondition()

	b.flow = newCondition(ast.FlowTrueCondition, cond, b.flow)
	bindBody()

	loopLabel.Antecedents = append(loopLabel.Antecedents, b.flow)

	b.flow = newCondition(ast.FlowFalseCondition, cond, loopLabel)
}

func (b *Binder) bindWhileStatement(node *ast.WhileStatement) {
	b.bindLoop(node.Expression,
		func() { b.bind(node.Expression) },
		func() { b.bind(node.Statement) },
	)
}

func (b *Binder) bindForStatement(node *ast.ForStatement) {
	b.bind(node.Initializer)

	var cond ast.Node = node
	if node.Condition != nil {
		cond = node.Condition
	}

	b.bindLoop(cond,
		func() { b.bind(node.Condition) },
		func() {
			b.bind(node.Statement)
			b.bind(node.Incrementor)
		},
	)
}

func (b *Binder) bindForInStatement(node *ast.ForInStatement) {
	b.bind(node.Expression)

	b.bindLoop(node.Expression,
		func() { b.bind(node.Initializer) },
		func() { b.bind(node.Statement) },
	)
}

// bindFunctionDeclaration binds the body under a fresh Start flow; the
// caller's flow is restored afterwards.
func (b *Binder) bindFunctionDeclaration(node *ast.FunctionDeclaration) {
	b.bind(node.Name)
	for _, p := range node.Parameters {
		b.bind(p)
	}

	saveFlow := b.flow
	b.flow = &ast.FlowNode{Flags: ast.FlowStart}
	b.bind(node.Body)
	b.flow = saveFlow
}

func (b *Binder) bindReturnStatement(node *ast.ReturnStatement) {
	ast.ForEachChild(node, b.visit)
	b.flow = &ast.FlowNode{Flags: ast.FlowUnreachable, Antecedent: b.flow}
}
