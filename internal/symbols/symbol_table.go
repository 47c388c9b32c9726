package symbols

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/typesystem"
)

type SymbolKind int

type ScopeType int

const (
	ScopePrelude ScopeType = iota // Built-in symbols (types, constructors)
	ScopeGlobal                   // User code top-level
	ScopeFunction
	ScopeBlock
)

const (
	VariableSymbol SymbolKind = iota
	TypeSymbol
	ConstructorSymbol
	ComponentSymbol
)

type Symbol struct {
	Name           string
	Type           typesystem.Type
	Kind           SymbolKind
	Generalized    bool     // True for bindings instantiated fresh per reference
	OriginModule   string   // Module where the symbol was originally defined
	DefinitionNode ast.Node // The AST node where this symbol was defined
	DefinitionFile string   // The file path where this symbol was defined
}

type SymbolTable struct {
	store     map[string]Symbol
	outer     *SymbolTable
	scopeType ScopeType
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		store:     make(map[string]Symbol),
		scopeType: ScopeGlobal,
	}
}

func NewEnclosedSymbolTable(outer *SymbolTable, scopeType ScopeType) *SymbolTable {
	st := NewSymbolTable()
	st.outer = outer
	st.scopeType = scopeType
	return st
}

// Outer returns the outer scope symbol table
func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

// IsGlobalScope returns true if this symbol table is the root (global) scope.
func (s *SymbolTable) IsGlobalScope() bool {
	return s.scopeType == ScopeGlobal
}

func (s *SymbolTable) Define(name string, t typesystem.Type, origin string) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: VariableSymbol, OriginModule: origin}
}

// DefineGeneralized defines a binding whose remaining free type variables
// are closed over, so each reference instantiates an independent copy.
func (s *SymbolTable) DefineGeneralized(name string, t typesystem.Type, origin string) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: VariableSymbol, Generalized: true, OriginModule: origin}
}

func (s *SymbolTable) DefineType(name string, t typesystem.Type, origin string) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: TypeSymbol, OriginModule: origin}
}

func (s *SymbolTable) DefineConstructor(name string, t typesystem.Type, origin string) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: ConstructorSymbol, OriginModule: origin}
}

func (s *SymbolTable) DefineComponent(name string, t typesystem.Type, origin string) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: ComponentSymbol, OriginModule: origin}
}

// DefineWithNode defines a symbol and stores the AST node where it was
// defined. The generalized flag marks bindings whose type may be
// instantiated fresh per reference rather than refined in place.
func (s *SymbolTable) DefineWithNode(name string, t typesystem.Type, origin string, node ast.Node, generalized bool) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: VariableSymbol, Generalized: generalized, OriginModule: origin, DefinitionNode: node}
}

// FindWithScope returns the symbol and the scope where it was defined
func (s *SymbolTable) FindWithScope(name string) (Symbol, *SymbolTable, bool) {
	sym, ok := s.store[name]
	if ok {
		return sym, s, true
	}
	if s.outer != nil {
		return s.outer.FindWithScope(name)
	}
	return Symbol{}, nil, false
}

func (s *SymbolTable) Find(name string) (Symbol, bool) {
	sym, _, ok := s.FindWithScope(name)
	return sym, ok
}

// All returns all symbols in the current scope (not including outer scopes).
// Used for iterating over symbols, e.g., for export resolution.
func (s *SymbolTable) All() map[string]Symbol {
	return s.store
}

// IsDefinedLocally checks if a symbol is defined in the current scope (shallow check)
func (s *SymbolTable) IsDefinedLocally(name string) bool {
	_, ok := s.store[name]
	return ok
}

// GetAllNames returns all symbol names in scope (for error suggestions)
func (s *SymbolTable) GetAllNames() []string {
	seen := make(map[string]bool)
	var names []string

	for name := range s.store {
		if !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}

	if s.outer != nil {
		for _, name := range s.outer.GetAllNames() {
			if !seen[name] {
				names = append(names, name)
				seen[name] = true
			}
		}
	}
	return names
}
