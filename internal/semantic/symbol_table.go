package semantic

import "github.com/xjarifx/minic/internal/ast"

// Symbol is a single name→type binding.
type Symbol struct {
	Name string
	Type ast.ValueType
}

// Scope is one lexical scope: a flat name→Symbol map plus a read-only
// back-reference to its parent (spec.md §3: "a child scope holds a
// back-reference to its parent (lookup-only)"). Modeled after the
// teacher's SymbolTable, trimmed to MiniC's single kind of binding —
// no overloads, constants, or forward declarations.
type Scope struct {
	symbols map[string]*Symbol
	outer   *Scope
}

// NewScope creates a scope nested inside outer. outer may be nil for
// the outermost (main) scope.
func NewScope(outer *Scope) *Scope {
	return &Scope{symbols: make(map[string]*Symbol), outer: outer}
}

// Define binds name to typ in this scope, overwriting any prior
// binding. Callers must check IsDeclaredInCurrentScope first to detect
// redeclaration.
func (s *Scope) Define(name string, typ ast.ValueType) *Symbol {
	sym := &Symbol{Name: name, Type: typ}
	s.symbols[name] = sym
	return sym
}

// IsDeclaredInCurrentScope reports whether name is bound in this exact
// scope, ignoring outer scopes.
func (s *Scope) IsDeclaredInCurrentScope(name string) bool {
	_, ok := s.symbols[name]
	return ok
}

// Resolve looks up name in this scope, then walks outward through
// enclosing scopes.
func (s *Scope) Resolve(name string) (*Symbol, bool) {
	if sym, ok := s.symbols[name]; ok {
		return sym, true
	}
	if s.outer != nil {
		return s.outer.Resolve(name)
	}
	return nil, false
}
