// Package optimize provides the built-in rewrite passes: constant folding,
// dead code elimination and identifier renaming. Each pass is exposed as a
// zero-argument factory so hosts can mix them with passes of their own.
//
// All three passes expect a tree that has been bound exactly once and is
// never re-bound between passes. None of them fails on a well-formed tree.
package optimize

import (
	"sort"

	"github.com/orizon-lang/minijs/internal/transform"
)

// Pass names accepted by Lookup.
const (
	PassFold   = "fold"
	PassDCE    = "dce"
	PassRename = "rename"
)

var registry = map[string]func() transform.Pass{
	PassFold:   ConstantFolding,
	PassDCE:    DeadCodeElimination,
	PassRename: RenameIdentifiers,
}

// Lookup returns a new instance of the named built-in pass.
func Lookup(name string) (transform.Pass, bool) {
	factory, ok := registry[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Names returns the names of all built-in passes, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Minifier returns the minification preset. Folding runs first so dead
// code elimination sees literal conditions; renaming runs last because it
// depends on the scopes recorded by the binder.
func Minifier() []transform.Pass {
	return []transform.Pass{
		ConstantFolding(),
		DeadCodeElimination(),
		RenameIdentifiers(),
	}
}
