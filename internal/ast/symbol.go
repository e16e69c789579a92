package ast

// Symbol is the compile-time identity of one declared name.
type Symbol struct {
	Name string
	// Declarations lists every node that declared this name, in source order.
	Declarations []Node
	// Referenced is set once a non-declaration use resolves to the symbol.
	Referenced bool
}

// Scope is the symbol table of one lexical region.
type Scope struct {
	symbols map[string]*Symbol
	order   []*Symbol
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{symbols: make(map[string]*Symbol)}
}

// Lookup returns the symbol declared under name in this scope only.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	if s == nil {
		return nil, false
	}
	sym, ok := s.symbols[name]
	return sym, ok
}

// Declare records decl as a declaration of name, creating the symbol on
// first use. Redeclaration appends to the existing symbol.
func (s *Scope) Declare(name string, decl Node) *Symbol {
	sym, ok := s.symbols[name]
	if !ok {
		sym = &Symbol{Name: name}
		s.symbols[name] = sym
		s.order = append(s.order, sym)
	}
	sym.Declarations = append(sym.Declarations, decl)
	return sym
}

// Len returns the number of names declared in the scope.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.symbols)
}

// Names returns the declared names in declaration order.
func (s *Scope) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.order))
	for i, sym := range s.order {
		names[i] = sym.Name
	}
	return names
}

// Symbols returns the declared symbols in declaration order.
func (s *Scope) Symbols() []*Symbol {
	if s == nil {
		return nil
	}
	return append([]*Symbol(nil), s.order...)
}
