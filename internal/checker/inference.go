package checker

import (
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/symbols"
	"github.com/vela-lang/vela/internal/typesystem"
)

// inferExpression produces a type for an expression node and records it in
// the type map for the lowering pass. Every error path reports a diagnostic
// and yields Unknown so checking continues.
func (s *Session) inferExpression(node ast.Expression, table *symbols.SymbolTable) typesystem.Type {
	var t typesystem.Type

	switch n := node.(type) {
	case *ast.NumberLiteral:
		t = typesystem.Num
	case *ast.StringLiteral:
		t = typesystem.Str
	case *ast.BooleanLiteral:
		t = typesystem.Bool
	case *ast.UnitLiteral:
		t = typesystem.Unit

	case *ast.Identifier:
		t = s.inferIdentifier(n, table)
	case *ast.RecordLiteral:
		t = s.inferRecordLiteral(n, table)
	case *ast.ArrayLiteral:
		t = s.inferArrayLiteral(n, table)

	case *ast.BlockExpression:
		t = s.inferBlock(n, table)
	case *ast.IfExpression:
		t = s.inferIf(n, table)
	case *ast.FunctionLiteral:
		t = s.inferFunctionLiteral(n, table)
	case *ast.MatchExpression:
		t = s.inferMatch(n, table)

	case *ast.CallExpression:
		t = s.inferCall(n, table)
	case *ast.MemberExpression:
		t = s.inferMember(n, table)
	case *ast.IndexExpression:
		t = s.inferIndex(n, table)

	case *ast.PrefixExpression:
		t = s.inferPrefix(n, table)
	case *ast.InfixExpression:
		t = s.inferInfix(n, table)

	case *ast.ElementExpression:
		t = s.inferElement(n, table)

	default:
		s.errorf(diagnostics.ErrC003, node, "unsupported expression")
		t = typesystem.Unknown
	}

	if t == nil {
		t = typesystem.Unknown
	}
	s.typeMap[node] = t
	return t
}

// inferIdentifier resolves a name in scope. Referencing a generalized
// binding (a let, an import) or a constructor instantiates it fresh, so
// separate use sites refine independent variables. A parameter or pattern
// binding is returned as-is: the body must refine the binding's own
// variable, not a disconnected copy. A nullary constructor referenced as a
// value denotes the ADT instance itself.
func (s *Session) inferIdentifier(n *ast.Identifier, table *symbols.SymbolTable) typesystem.Type {
	sym, ok := table.Find(n.Value)
	if !ok {
		if near := closestName(n.Value, table.GetAllNames()); near != "" {
			s.errorf(diagnostics.ErrC001, n, fmt.Sprintf("%s (did you mean '%s'?)", n.Value, near))
		} else {
			s.errorf(diagnostics.ErrC001, n, n.Value)
		}
		return typesystem.Unknown
	}

	t := sym.Type.Apply(s.subst)
	if sym.Kind == symbols.ConstructorSymbol {
		inst := s.instantiate(t).(typesystem.TFunc)
		if len(inst.Params) == 0 {
			return inst.Return
		}
		return inst
	}
	if sym.Kind == symbols.VariableSymbol && !sym.Generalized {
		return t
	}
	return s.instantiate(t)
}

// closestName picks the in-scope name nearest to a misspelled reference,
// or "" when nothing is close enough to suggest.
func closestName(name string, candidates []string) string {
	best, bestDist := "", 3
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := editDistance(name, c)
		if d < bestDist || (d == bestDist && best != "" && c < best) {
			best, bestDist = c, d
		}
	}
	return best
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
