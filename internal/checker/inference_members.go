package checker

import (
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/symbols"
	"github.com/vela-lang/vela/internal/typesystem"
)

// inferMember types field access. Records resolve through aliases; optional
// fields come back wrapped in Option, which the lowered output must support.
// Arrays expose a small fixed method table built from fresh variables.
func (s *Session) inferMember(n *ast.MemberExpression, table *symbols.SymbolTable) typesystem.Type {
	objType := s.inferExpression(n.Object, table).Apply(s.subst)
	name := n.Property.Value

	switch obj := objType.(type) {
	case typesystem.TArray:
		if t, ok := s.arrayMethod(name, obj.Elem.Apply(s.subst)); ok {
			return t
		}
		s.errorf(diagnostics.ErrC003, n.Property,
			fmt.Sprintf("type %s has no member '%s'", objType, name))
		return typesystem.Unknown

	case typesystem.TCon:
		if obj.Name == config.StringTypeName && name == "length" {
			return typesystem.Num
		}

	case typesystem.TVar:
		// No member set can be determined for an unresolved variable.
		s.errorf(diagnostics.ErrC003, n,
			fmt.Sprintf("cannot determine members of %s, add a type annotation", objType))
		return typesystem.Unknown
	}

	if rec, ok := s.reg.ResolveToRecordType(objType, s.subst); ok {
		f, found := rec.Fields[name]
		if !found {
			s.errorf(diagnostics.ErrC003, n.Property,
				fmt.Sprintf("field '%s' does not exist on %s", name, objType))
			return typesystem.Unknown
		}
		ft := f.Type.Apply(s.subst)
		if f.Optional {
			return s.optionOf(ft)
		}
		return ft
	}

	if typesystem.Equal(objType, typesystem.Unknown) {
		return typesystem.Unknown
	}
	s.errorf(diagnostics.ErrC003, n.Property,
		fmt.Sprintf("type %s has no member '%s'", objType, name))
	return typesystem.Unknown
}

// arrayMethod builds the signature of one array method over the element
// type. Fresh variables per access keep separate call sites independent.
func (s *Session) arrayMethod(name string, elem typesystem.Type) (typesystem.Type, bool) {
	switch name {
	case "length":
		return typesystem.Num, true
	case "map":
		u := s.FreshVar()
		return typesystem.TFunc{
			Params: []typesystem.Type{typesystem.TFunc{Params: []typesystem.Type{elem}, Return: u}},
			Return: typesystem.TArray{Elem: u},
		}, true
	case "filter":
		return typesystem.TFunc{
			Params: []typesystem.Type{typesystem.TFunc{Params: []typesystem.Type{elem}, Return: typesystem.Bool}},
			Return: typesystem.TArray{Elem: elem},
		}, true
	case "reduce":
		u := s.FreshVar()
		return typesystem.TFunc{
			Params: []typesystem.Type{
				typesystem.TFunc{Params: []typesystem.Type{u, elem}, Return: u},
				u,
			},
			Return: u,
		}, true
	case "find":
		return typesystem.TFunc{
			Params: []typesystem.Type{typesystem.TFunc{Params: []typesystem.Type{elem}, Return: typesystem.Bool}},
			Return: s.optionOf(elem),
		}, true
	case "findIndex":
		return typesystem.TFunc{
			Params: []typesystem.Type{typesystem.TFunc{Params: []typesystem.Type{elem}, Return: typesystem.Bool}},
			Return: typesystem.Num,
		}, true
	case "includes":
		return typesystem.TFunc{
			Params: []typesystem.Type{elem},
			Return: typesystem.Bool,
		}, true
	}
	return nil, false
}

// inferIndex types subscript access. Tuple indices must be literal integers
// known at check time and in bounds; array indexing always succeeds with an
// Option since the index may be out of range at runtime.
func (s *Session) inferIndex(n *ast.IndexExpression, table *symbols.SymbolTable) typesystem.Type {
	objType := s.inferExpression(n.Object, table).Apply(s.subst)

	switch obj := objType.(type) {
	case typesystem.TTuple:
		lit, ok := n.Index.(*ast.NumberLiteral)
		if !ok || !lit.IsInteger() {
			s.errorf(diagnostics.ErrC003, n.Index, "tuple index must be a literal integer")
			return typesystem.Unknown
		}
		idx := int(lit.Value)
		if idx < 0 || idx >= len(obj.Elements) {
			s.errorf(diagnostics.ErrC003, n.Index,
				fmt.Sprintf("tuple index %d out of bounds for %s", idx, objType))
			return typesystem.Unknown
		}
		s.typeMap[n.Index] = typesystem.Num
		return obj.Elements[idx].Apply(s.subst)

	case typesystem.TArray:
		idxType := s.inferExpression(n.Index, table)
		s.unifyAt(n.Index, typesystem.Num, idxType, s.subst)
		return s.optionOf(obj.Elem.Apply(s.subst))

	case typesystem.TVar:
		s.errorf(diagnostics.ErrC003, n,
			fmt.Sprintf("cannot index %s, add a type annotation", objType))
		return typesystem.Unknown
	}

	if typesystem.Equal(objType, typesystem.Unknown) {
		s.inferExpression(n.Index, table)
		return typesystem.Unknown
	}
	s.errorf(diagnostics.ErrC003, n, fmt.Sprintf("type %s is not indexable", objType))
	return typesystem.Unknown
}
