package checker

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/symbols"
	"github.com/vela-lang/vela/internal/typesystem"
)

// inferRecordLiteral types each field independently. No upper-bound check
// happens here: the literal is checked against an expected shape only where
// it is used, via the record covariance rule in unification.
func (s *Session) inferRecordLiteral(n *ast.RecordLiteral, table *symbols.SymbolTable) typesystem.Type {
	fields := make(map[string]typesystem.Field, len(n.Fields))
	for _, f := range n.Fields {
		if _, dup := fields[f.Name.Value]; dup {
			s.errorf(diagnostics.ErrC004, f.Name, f.Name.Value)
			continue
		}
		fields[f.Name.Value] = typesystem.Field{
			Type: s.inferExpression(f.Value, table),
		}
	}
	return typesystem.TRecord{Fields: fields}
}

// inferArrayLiteral classifies a bracketed literal as a homogeneous array or
// a fixed-arity tuple. The homogeneity test runs in a local substitution map
// so a heterogeneous literal abandons the hypothesis without polluting
// inference elsewhere; the map merges back only when the array reading wins.
func (s *Session) inferArrayLiteral(n *ast.ArrayLiteral, table *symbols.SymbolTable) typesystem.Type {
	if len(n.Elements) == 0 {
		return typesystem.TArray{Elem: typesystem.Unknown}
	}

	elemTypes := make([]typesystem.Type, len(n.Elements))
	for i, el := range n.Elements {
		elemTypes[i] = s.inferExpression(el, table)
	}

	local := s.subst.Clone()
	unified := elemTypes[0]
	homogeneous := true
	for _, t := range elemTypes[1:] {
		u, err := typesystem.Unify(unified, t, local, s.reg)
		if err != nil {
			homogeneous = false
			break
		}
		unified = u
	}

	if homogeneous {
		local.MergeInto(s.subst)
		return typesystem.TArray{Elem: unified.Apply(s.subst)}
	}

	elems := make([]typesystem.Type, len(elemTypes))
	for i, t := range elemTypes {
		elems[i] = t.Apply(s.subst)
	}
	return typesystem.TTuple{Elements: elems}
}
