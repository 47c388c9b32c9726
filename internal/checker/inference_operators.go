package checker

import (
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/symbols"
	"github.com/vela-lang/vela/internal/typesystem"
)

func (s *Session) inferPrefix(n *ast.PrefixExpression, table *symbols.SymbolTable) typesystem.Type {
	rightType := s.inferExpression(n.Right, table)

	switch n.Operator {
	case "!":
		s.unifyAt(n.Right, typesystem.Bool, rightType, s.subst)
		return typesystem.Bool
	case "-":
		s.unifyAt(n.Right, typesystem.Num, rightType, s.subst)
		return typesystem.Num
	default:
		s.errorf(diagnostics.ErrC003, n, fmt.Sprintf("unknown prefix operator '%s'", n.Operator))
		return typesystem.Unknown
	}
}

func (s *Session) inferInfix(n *ast.InfixExpression, table *symbols.SymbolTable) typesystem.Type {
	leftType := s.inferExpression(n.Left, table)
	rightType := s.inferExpression(n.Right, table)

	switch n.Operator {
	case "+":
		return s.inferPlus(n, leftType, rightType)

	case "-", "*", "/", "%":
		s.unifyAt(n.Left, typesystem.Num, leftType, s.subst)
		s.unifyAt(n.Right, typesystem.Num, rightType, s.subst)
		return typesystem.Num

	case "<", ">", "<=", ">=":
		s.unifyAt(n.Left, typesystem.Num, leftType, s.subst)
		s.unifyAt(n.Right, typesystem.Num, rightType, s.subst)
		return typesystem.Bool

	case "==", "!=":
		s.unifyAt(n, leftType, rightType, s.subst)
		return typesystem.Bool

	case "&&", "||":
		s.unifyAt(n.Left, typesystem.Bool, leftType, s.subst)
		s.unifyAt(n.Right, typesystem.Bool, rightType, s.subst)
		return typesystem.Bool

	default:
		s.errorf(diagnostics.ErrC003, n, fmt.Sprintf("unknown operator '%s'", n.Operator))
		return typesystem.Unknown
	}
}

// inferPlus resolves the overload of '+': number addition or string
// concatenation. Each hypothesis runs in its own local map; only the one
// that fits both operands merges back.
func (s *Session) inferPlus(n *ast.InfixExpression, leftType, rightType typesystem.Type) typesystem.Type {
	for _, prim := range []typesystem.Type{typesystem.Num, typesystem.Str} {
		local := s.subst.Clone()
		_, errL := typesystem.Unify(prim, leftType, local, s.reg)
		_, errR := typesystem.Unify(prim, rightType, local, s.reg)
		if errL == nil && errR == nil {
			local.MergeInto(s.subst)
			return prim
		}
	}
	s.errorf(diagnostics.ErrC003, n,
		fmt.Sprintf("operator '+' expects Number or String operands, got %s and %s",
			leftType.Apply(s.subst), rightType.Apply(s.subst)))
	return typesystem.Unknown
}
