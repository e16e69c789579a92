package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/orizon-lang/minijs/internal/ast"
	"github.com/orizon-lang/minijs/internal/binder"
	"github.com/orizon-lang/minijs/internal/diagnostic"
	"github.com/orizon-lang/minijs/internal/parser"
)

func newASTCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the bound syntax tree of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			file, err := a.parseFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, astTree(file))
			return nil
		},
	}
}

// parseFile reads, parses and binds path. Syntax errors are rendered to
// stderr before being returned.
func (a *app) parseFile(path string) (*ast.SourceFile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	file, err := parser.ParseFile(string(src))
	if err != nil {
		fmt.Fprint(a.stderr, diagnostic.Render(path, string(src), err))
		return nil, fmt.Errorf("%s: parse failed", path)
	}
	binder.Bind(file)
	return file, nil
}

// astTree renders file as an indented tree, one node per line.
func astTree(file *ast.SourceFile) string {
	root := treeprint.New()
	addChildren(root.AddBranch(nodeLabel(file)), file)
	return root.String()
}

func addChildren(t treeprint.Tree, node ast.Node) {
	ast.ForEachChild(node, func(child ast.Node) bool {
		if hasChildren(child) {
			addChildren(t.AddBranch(nodeLabel(child)), child)
		} else {
			t.AddNode(nodeLabel(child))
		}
		return true
	})
}

func hasChildren(node ast.Node) bool {
	found := false
	ast.ForEachChild(node, func(ast.Node) bool {
		found = true
		return false
	})
	return found
}

// nodeLabel describes one node: its kind, span, the token it carries and
// what the binder attached to it.
func nodeLabel(node ast.Node) string {
	var b strings.Builder
	b.WriteString(node.Kind().String())
	if node.Pos() >= 0 {
		fmt.Fprintf(&b, " [%d,%d)", node.Pos(), node.End())
	}

	switch n := node.(type) {
	case *ast.Identifier:
		fmt.Fprintf(&b, " %s", n.Text)
		switch {
		case n.Symbol() != nil:
			b.WriteString(" -> symbol")
		case !ast.IsDeclarationName(n) && !ast.IsPropertyName(n):
			b.WriteString(" (global)")
		}
	case *ast.NumericLiteral:
		fmt.Fprintf(&b, " %s", n.Text)
	case *ast.StringLiteral:
		fmt.Fprintf(&b, " %s", strconv.Quote(n.Value))
	case *ast.BinaryExpression:
		fmt.Fprintf(&b, " %s", ast.OperatorText(n.Operator))
	case *ast.PrefixUnaryExpression:
		fmt.Fprintf(&b, " %s", ast.OperatorText(n.Operator))
	case *ast.PostfixUnaryExpression:
		fmt.Fprintf(&b, " %s", ast.OperatorText(n.Operator))
	}

	if c, ok := node.(ast.LocalsContainer); ok && c.Locals() != nil {
		fmt.Fprintf(&b, " locals=%v", c.Locals().Names())
	}
	if flow := node.FlowNode(); flow != nil && !flow.Reachable() {
		b.WriteString(" unreachable")
	}
	return b.String()
}
