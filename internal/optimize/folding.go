package optimize

import (
	"go.uber.org/zap"

	"github.com/orizon-lang/minijs/internal/ast"
	"github.com/orizon-lang/minijs/internal/transform"
)

// ConstantFolding returns a pass that evaluates binary expressions whose
// operands are both literals. Folding runs bottom-up, so `1 + 2 * 3`
// becomes `7` in one run. Folded literals are synthetic and carry no
// source position.
func ConstantFolding() transform.Pass {
	return func(ctx *transform.Context) transform.Transformer {
		folded := 0

		var visitor transform.Visitor
		visitor = func(node ast.Node) ast.Node {
			visited := ctx.VisitEachChild(node, visitor)

			if bin, ok := visited.(*ast.BinaryExpression); ok {
				if result := foldBinary(ctx.Factory, bin); result != nil {
					folded++
					return result
				}
			}
			return visited
		}

		return func(node ast.Node) ast.Node {
			folded = 0
			out := visitor(node)
			ctx.Logger.Debug("Constant folding done", zap.Int("folded", folded))
			return out
		}
	}
}

// foldBinary returns the literal bin evaluates to, or nil when it cannot
// be evaluated at compile time.
func foldBinary(f *ast.Factory, bin *ast.BinaryExpression) ast.Expression {
	switch left := bin.Left.(type) {
	case *ast.NumericLiteral:
		right, ok := bin.Right.(*ast.NumericLiteral)
		if !ok {
			return nil
		}
		return foldNumbers(f, left.Value, bin.Operator, right.Value)

	case *ast.StringLiteral:
		right, ok := bin.Right.(*ast.StringLiteral)
		if !ok || bin.Operator != ast.PlusToken {
			return nil
		}
		return f.CreateStringLiteral(left.Value + right.Value)
	}
	return nil
}

func foldNumbers(f *ast.Factory, l float64, op ast.SyntaxKind, r float64) ast.Expression {
	switch op {
	case ast.PlusToken:
		return f.CreateNumericLiteral(l + r)
	case ast.MinusToken:
		return f.CreateNumericLiteral(l - r)
	case ast.AsteriskToken:
		return f.CreateNumericLiteral(l * r)
	case ast.SlashToken:
		return f.CreateNumericLiteral(l / r)
	case ast.GreaterThanToken:
		return f.CreateBooleanLiteral(l > r)
	case ast.LessThanToken:
		return f.CreateBooleanLiteral(l < r)
	case ast.GreaterThanEqualsToken:
		return f.CreateBooleanLiteral(l >= r)
	case ast.LessThanEqualsToken:
		return f.CreateBooleanLiteral(l <= r)
	case ast.EqualsEqualsToken:
		return f.CreateBooleanLiteral(l == r)
	case ast.ExclamationEqualsToken:
		return f.CreateBooleanLiteral(l != r)
	}
	return nil
}
