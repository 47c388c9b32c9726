package checker

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/symbols"
	"github.com/vela-lang/vela/internal/typesystem"
)

// instantiate produces a fresh-variable copy of a polymorphic type so each
// use site gets independently-refinable variables. Every bindable id found
// free in the type (type variables and zero-argument generic placeholders)
// is renamed to a brand-new variable.
func (s *Session) instantiate(t typesystem.Type) typesystem.Type {
	bindables := make(map[int]string)
	collectBindables(t, bindables)
	if len(bindables) == 0 {
		return t
	}

	renaming := make(typesystem.Subst, len(bindables))
	for id := range bindables {
		renaming[id] = s.FreshVar()
	}
	return t.Apply(renaming)
}

// instantiateGenericType instantiates a parametric type reference for one
// use site. With explicit type arguments of the right arity the generic is
// built directly with them; an arity mismatch is a warning-level event
// reported as a hint, since later unification still catches real
// incompatibilities. Without usable explicit arguments every declared
// parameter is replaced with a fresh variable.
func (s *Session) instantiateGenericType(g typesystem.TGeneric, explicit []typesystem.Type, node ast.Node) typesystem.Type {
	if len(explicit) > 0 {
		if len(explicit) == len(g.Args) {
			return typesystem.TGeneric{ID: g.ID, Name: g.Name, Args: explicit}
		}
		s.hints = append(s.hints, Hint{Node: node, Text: typeArityMessage(g.Name, len(g.Args), len(explicit))})
	}
	if len(g.Args) == 0 {
		return g
	}

	bindables := make(map[int]string)
	for _, a := range g.Args {
		collectBindables(a, bindables)
	}
	renaming := make(typesystem.Subst, len(bindables))
	for id := range bindables {
		renaming[id] = s.FreshVar()
	}
	return g.Apply(renaming)
}

// generalizable reports whether a binding of type t may be instantiated
// fresh at each reference. A type sharing an unbound variable with an
// enclosing monomorphic binding (a function parameter, a pattern binding)
// must not be: its use sites would refine a disconnected copy instead of
// the shared variable.
func (s *Session) generalizable(t typesystem.Type, table *symbols.SymbolTable) bool {
	own := make(map[int]string)
	collectBindables(t, own)
	if len(own) == 0 {
		return true
	}

	for scope := table; scope != nil; scope = scope.Outer() {
		for _, sym := range scope.All() {
			if sym.Kind != symbols.VariableSymbol || sym.Generalized || sym.Type == nil {
				continue
			}
			env := make(map[int]string)
			collectBindables(sym.Type.Apply(s.subst), env)
			for id := range env {
				if _, shared := own[id]; shared {
					return false
				}
			}
		}
	}
	return true
}

// bindExplicitTypeArgs applies explicit call-site type arguments to a freshly
// instantiated function type by unifying them, in order, against the
// distinct variables of the parameter list.
func (s *Session) bindExplicitTypeArgs(fn typesystem.TFunc, explicit []typesystem.Type, node ast.Node) typesystem.TFunc {
	bindables := make(map[int]string)
	var order []int
	collectOrdered(fn, bindables, &order)

	if len(explicit) != len(order) {
		s.hints = append(s.hints, Hint{Node: node, Text: typeArityMessage("call", len(order), len(explicit))})
		if len(explicit) > len(order) {
			explicit = explicit[:len(order)]
		}
	}

	local := s.subst.Clone()
	for i, e := range explicit {
		if i >= len(order) {
			break
		}
		s.unifyAt(node, typesystem.TVar{ID: order[i], Name: bindables[order[i]]}, e, local)
	}
	local.MergeInto(s.subst)
	return fn.Apply(s.subst).(typesystem.TFunc)
}

// collectBindables walks a type structurally, recording every bindable id.
// Unlike FreeTypeVars it descends into ADT parameters, which is what
// constructor types need: the placeholder in (a) -> Option<a> lives inside
// the nominal return type.
func collectBindables(t typesystem.Type, acc map[int]string) {
	switch t := t.(type) {
	case typesystem.TVar:
		acc[t.ID] = t.Name
	case typesystem.TGeneric:
		if len(t.Args) == 0 {
			acc[t.ID] = t.Name
			return
		}
		for _, a := range t.Args {
			collectBindables(a, acc)
		}
	case typesystem.TFunc:
		for _, p := range t.Params {
			collectBindables(p, acc)
		}
		collectBindables(t.Return, acc)
	case typesystem.TArray:
		collectBindables(t.Elem, acc)
	case typesystem.TTuple:
		for _, e := range t.Elements {
			collectBindables(e, acc)
		}
	case typesystem.TRecord:
		for _, f := range t.Fields {
			collectBindables(f.Type, acc)
		}
	case typesystem.TAdt:
		for _, p := range t.Params {
			collectBindables(p, acc)
		}
	case typesystem.TElement:
		collectBindables(t.Attrs, acc)
	}
}

// collectOrdered is collectBindables with a stable first-seen ordering, used
// to pair explicit type arguments with the variables they target.
func collectOrdered(t typesystem.Type, acc map[int]string, order *[]int) {
	switch t := t.(type) {
	case typesystem.TVar:
		if _, seen := acc[t.ID]; !seen {
			acc[t.ID] = t.Name
			*order = append(*order, t.ID)
		}
	case typesystem.TGeneric:
		if len(t.Args) == 0 {
			if _, seen := acc[t.ID]; !seen {
				acc[t.ID] = t.Name
				*order = append(*order, t.ID)
			}
			return
		}
		for _, a := range t.Args {
			collectOrdered(a, acc, order)
		}
	case typesystem.TFunc:
		for _, p := range t.Params {
			collectOrdered(p, acc, order)
		}
		collectOrdered(t.Return, acc, order)
	case typesystem.TArray:
		collectOrdered(t.Elem, acc, order)
	case typesystem.TTuple:
		for _, e := range t.Elements {
			collectOrdered(e, acc, order)
		}
	case typesystem.TRecord:
		for _, f := range t.Fields {
			collectOrdered(f.Type, acc, order)
		}
	case typesystem.TAdt:
		for _, p := range t.Params {
			collectOrdered(p, acc, order)
		}
	case typesystem.TElement:
		collectOrdered(t.Attrs, acc, order)
	}
}
