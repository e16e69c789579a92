package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/orizon-lang/minijs/internal/ast"
)

func newScopesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scopes <file>",
		Short: "Print the scope tree of a file as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			file, err := a.parseFile(args[0])
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(a.stdout)
			enc.SetIndent(2)
			if err := enc.Encode(scopeTree(file)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

type scopeView struct {
	Kind    string       `yaml:"kind"`
	Symbols []symbolView `yaml:"symbols,omitempty"`
	Scopes  []scopeView  `yaml:"scopes,omitempty"`
}

type symbolView struct {
	Name         string `yaml:"name"`
	Declarations int    `yaml:"declarations"`
	Referenced   bool   `yaml:"referenced"`
}

// scopeTree collects the scopes below root, nested the way the binder
// opened them.
func scopeTree(root ast.LocalsContainer) scopeView {
	view := scopeView{Kind: root.Kind().String()}
	for _, sym := range root.Locals().Symbols() {
		view.Symbols = append(view.Symbols, symbolView{
			Name:         sym.Name,
			Declarations: len(sym.Declarations),
			Referenced:   sym.Referenced,
		})
	}
	collectScopes(root, &view.Scopes)
	return view
}

func collectScopes(node ast.Node, out *[]scopeView) {
	ast.ForEachChild(node, func(child ast.Node) bool {
		if c, ok := child.(ast.LocalsContainer); ok && c.Locals() != nil {
			*out = append(*out, scopeTree(c))
		} else {
			collectScopes(child, out)
		}
		return true
	})
}
