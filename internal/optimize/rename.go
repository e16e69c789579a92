package optimize

import (
	"go.uber.org/zap"

	"github.com/orizon-lang/minijs/internal/ast"
	"github.com/orizon-lang/minijs/internal/transform"
)

// ShortName returns the i-th name of the sequence a, b, ..., z, aa, ab, ...
func ShortName(i int) string {
	var buf []byte
	for {
		buf = append(buf, byte('a'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return string(buf)
}

// RenameIdentifiers returns a pass that gives every declared symbol a
// short name. Names are handed out as scopes are entered, in declaration
// order, and each symbol keeps its name for all of its occurrences.
// References follow the symbol the binder resolved them to, so property
// names and references without a symbol (host globals) are left alone.
//
// The pass relies on the scopes recorded by the binder, so it must not
// follow a pass that invalidates them.
func RenameIdentifiers() transform.Pass {
	return func(ctx *transform.Context) transform.Transformer {
		return func(node ast.Node) ast.Node {
			r := &renamer{ctx: ctx, names: make(map[*ast.Symbol]string)}
			out := r.visit(node)
			ctx.Logger.Debug("Identifier renaming done", zap.Int("symbols", r.next))
			return out
		}
	}
}

type renamer struct {
	ctx   *transform.Context
	names map[*ast.Symbol]string
	stack []*ast.Scope
	next  int
}

func (r *renamer) visit(node ast.Node) ast.Node {
	if id, ok := node.(*ast.Identifier); ok {
		return r.renameIdentifier(id)
	}

	var scope *ast.Scope
	if c, ok := node.(ast.LocalsContainer); ok {
		scope = c.Locals()
	}
	if scope != nil {
		r.enter(scope)
		defer r.leave()
	}

	return r.ctx.VisitEachChild(node, r.visit)
}

func (r *renamer) enter(scope *ast.Scope) {
	r.stack = append(r.stack, scope)
	for _, sym := range scope.Symbols() {
		if _, ok := r.names[sym]; !ok {
			r.names[sym] = ShortName(r.next)
			r.next++
		}
	}
}

func (r *renamer) leave() {
	r.stack = r.stack[:len(r.stack)-1]
}

// renameIdentifier renames a reference through its resolved symbol and a
// declaration name through the innermost active scope declaring it.
func (r *renamer) renameIdentifier(id *ast.Identifier) ast.Node {
	if ast.IsPropertyName(id) {
		return id
	}
	if !ast.IsDeclarationName(id) {
		if sym := id.Symbol(); sym != nil {
			if name, ok := r.names[sym]; ok {
				return r.ctx.Factory.RenameIdentifier(id, name)
			}
		}
		return id
	}

	// A function's own name lives in the enclosing scope, not in the
	// scope the function opens.
	var skip *ast.Scope
	if fn, ok := id.Parent().(*ast.FunctionDeclaration); ok && fn.Name == id {
		skip = fn.Locals()
	}

	for i := len(r.stack) - 1; i >= 0; i-- {
		scope := r.stack[i]
		if scope == skip {
			continue
		}
		if sym, ok := scope.Lookup(id.Text); ok {
			if name, ok := r.names[sym]; ok {
				return r.ctx.Factory.RenameIdentifier(id, name)
			}
			break
		}
	}
	return id
}
