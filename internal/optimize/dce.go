package optimize

import (
	"go.uber.org/zap"

	"github.com/orizon-lang/minijs/internal/ast"
	"github.com/orizon-lang/minijs/internal/binder"
	"github.com/orizon-lang/minijs/internal/transform"
)

// entryPoint is the function name that is always kept.
const entryPoint = "main"

// DeadCodeElimination returns a pass that removes statements the binder
// marked unreachable, declarations whose symbol is not live, and `if`
// statements whose condition is a boolean literal. Liveness is computed
// once per run from the top-level statements; a symbol used only by dead
// code is itself dead.
func DeadCodeElimination() transform.Pass {
	return func(ctx *transform.Context) transform.Transformer {
		return func(node ast.Node) ast.Node {
			file, ok := node.(*ast.SourceFile)
			if !ok {
				return node
			}

			e := &eliminator{ctx: ctx, live: analyzeLiveness(file)}
			out := e.visit(file)

			ctx.Logger.Debug("Dead code elimination done",
				zap.Int("live_symbols", len(e.live)),
				zap.Int("removed", e.removed),
			)
			return out
		}
	}
}

// isPure reports whether evaluating expr has no side effects.
func isPure(expr ast.Expression) bool {
	switch n := expr.(type) {
	case *ast.NumericLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.Identifier:
		return true
	case *ast.BinaryExpression:
		return isPure(n.Left) && isPure(n.Right)
	}
	return false
}

// hasDeclarationOnly reports whether stmt declares something without any
// effect worth keeping on its own.
func hasDeclarationOnly(stmt ast.Node) bool {
	switch n := stmt.(type) {
	case *ast.FunctionDeclaration:
		return true
	case *ast.VariableStatement:
		init := n.Declaration.Initializer
		return init == nil || isPure(init)
	}
	return false
}

// isFunction reports whether n is a function declaration. Declarations
// are hoisted, so one placed after a return is still callable.
func isFunction(n ast.Node) bool {
	_, ok := n.(*ast.FunctionDeclaration)
	return ok
}

func unreachable(n ast.Node) bool {
	flow := n.FlowNode()
	return flow != nil && !flow.Reachable()
}

// ===== Liveness =====

type liveness struct {
	symbols map[*ast.Symbol]bool
	seen    map[ast.Node]bool
	work    []ast.Node
}

func analyzeLiveness(file *ast.SourceFile) map[*ast.Symbol]bool {
	l := &liveness{
		symbols: make(map[*ast.Symbol]bool),
		seen:    make(map[ast.Node]bool),
	}

	for _, stmt := range file.Statements {
		switch n := stmt.(type) {
		case *ast.FunctionDeclaration:
			if n.Name.Text == entryPoint {
				if sym := binder.LookupSymbol(n.Name.Text, n.Parent()); sym != nil {
					l.markSymbol(sym)
				}
			}
		case *ast.VariableStatement:
			if init := n.Declaration.Initializer; init != nil && !isPure(init) {
				l.mark(init)
			}
		default:
			l.mark(stmt)
		}
	}

	for head := 0; head < len(l.work); head++ {
		l.propagate(l.work[head])
	}

	return l.symbols
}

func (l *liveness) mark(n ast.Node) {
	if l.seen[n] {
		return
	}
	l.seen[n] = true
	l.work = append(l.work, n)
}

func (l *liveness) markSymbol(sym *ast.Symbol) {
	if l.symbols[sym] {
		return
	}
	l.symbols[sym] = true
	for _, decl := range sym.Declarations {
		l.mark(decl)
	}
}

func (l *liveness) propagate(n ast.Node) {
	if unreachable(n) && !isFunction(n) {
		return
	}

	switch node := n.(type) {
	case *ast.Identifier:
		if !ast.IsDeclarationName(node) && node.Symbol() != nil {
			l.markSymbol(node.Symbol())
		}
		return

	case *ast.Block, *ast.SourceFile:
		// Declarations inside a block only matter once something uses them.
		ast.ForEachChild(n, func(child ast.Node) bool {
			if !hasDeclarationOnly(child) {
				l.mark(child)
			}
			return true
		})
		return

	case *ast.FunctionDeclaration:
		for _, p := range node.Parameters {
			l.mark(p)
		}
		l.mark(node.Body)
		return
	}

	ast.ForEachChild(n, func(child ast.Node) bool {
		l.mark(child)
		return true
	})
}

// ===== Sweep =====

type eliminator struct {
	ctx     *transform.Context
	live    map[*ast.Symbol]bool
	removed int
}

// isLive reports whether the symbol declared by name, looked up from
// scope, is live. Names that do not resolve are kept.
func (e *eliminator) isLive(name *ast.Identifier, scope ast.Node) bool {
	sym := binder.LookupSymbol(name.Text, scope)
	return sym == nil || e.live[sym]
}

func (e *eliminator) visit(node ast.Node) ast.Node {
	if unreachable(node) && !isFunction(node) {
		e.removed++
		return nil
	}

	switch n := node.(type) {
	case *ast.SourceFile:
		return e.ctx.Factory.UpdateSourceFile(n, e.visitStatements(n.Statements))

	case *ast.Block:
		return e.ctx.Factory.UpdateBlock(n, e.visitStatements(n.Statements))

	case *ast.FunctionDeclaration:
		if n.Name.Text != entryPoint && !e.isLive(n.Name, n.Parent()) {
			e.removed++
			return nil
		}
		// The name and parameters carry the flow of the declaration site,
		// which is unreachable for a function declared after a return.
		body, ok := e.visit(n.Body).(*ast.Block)
		if !ok {
			body = n.Body
		}
		return e.ctx.Factory.UpdateFunctionDeclaration(n, n.Name, n.Parameters, body)

	case *ast.VariableStatement:
		decl := n.Declaration
		if !e.isLive(decl.Name, n.Parent()) {
			e.removed++
			if decl.Initializer == nil || isPure(decl.Initializer) {
				return nil
			}
			// Keep the side effect, drop the binding.
			return &ast.ExpressionStatement{
				NodeBase:   ast.NewNodeBase(n.Pos(), n.End()),
				Expression: decl.Initializer,
			}
		}
	}

	visited := e.ctx.VisitEachChild(node, e.visit)

	if ifStmt, ok := visited.(*ast.IfStatement); ok {
		if cond, ok := ifStmt.Expression.(*ast.BooleanLiteral); ok {
			e.removed++
			if cond.Value {
				return ifStmt.ThenStatement
			}
			if ifStmt.ElseStatement != nil {
				return ifStmt.ElseStatement
			}
			// An empty block is valid in any statement slot; statement lists
			// drop it when splicing.
			return e.ctx.Factory.CreateBlock(nil)
		}
	}

	return visited
}

// visitStatements sweeps a statement list. A block that replaced an `if`
// is spliced into the list when it declares nothing, so `if (true) { ... }`
// leaves no wrapper behind. The original slice is returned when nothing
// changed.
func (e *eliminator) visitStatements(list []ast.Statement) []ast.Statement {
	var out []ast.Statement
	changed := false

	for _, stmt := range list {
		result := e.visit(stmt)
		if result != ast.Node(stmt) {
			changed = true
		}
		if result == nil {
			continue
		}

		if _, wasIf := stmt.(*ast.IfStatement); wasIf {
			if block, ok := result.(*ast.Block); ok && block.Locals().Len() == 0 {
				out = append(out, block.Statements...)
				continue
			}
		}
		out = append(out, result.(ast.Statement))
	}

	if !changed {
		return list
	}
	if out == nil {
		out = []ast.Statement{}
	}
	return out
}
