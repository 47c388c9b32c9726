package checker

import (
	"fmt"
	"strings"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/symbols"
	"github.com/vela-lang/vela/internal/typesystem"
)

// inferBlock types a statement sequence in an enclosed scope. The block's
// value is its final expression statement, or Unit when there is none.
func (s *Session) inferBlock(n *ast.BlockExpression, table *symbols.SymbolTable) typesystem.Type {
	scope := symbols.NewEnclosedSymbolTable(table, symbols.ScopeBlock)

	var last typesystem.Type = typesystem.Unit
	for i, stmt := range n.Statements {
		switch st := stmt.(type) {
		case *ast.LetStatement:
			s.checkLet(st, scope)
			last = typesystem.Unit
		case *ast.ExpressionStatement:
			t := s.inferExpression(st.Expression, scope)
			if i == len(n.Statements)-1 {
				last = t
			}
		default:
			s.errorf(diagnostics.ErrC003, stmt, "unsupported statement in block")
		}
	}
	return last.Apply(s.subst)
}

// inferIf types a conditional. With an alternative the branches unify to the
// expression's type; without one the conditional is a statement-shaped
// expression of type Unit.
func (s *Session) inferIf(n *ast.IfExpression, table *symbols.SymbolTable) typesystem.Type {
	condType := s.inferExpression(n.Condition, table)
	s.unifyAt(n.Condition, typesystem.Bool, condType, s.subst)

	consType := s.inferExpression(n.Consequence, table)
	if n.Alternative == nil {
		return typesystem.Unit
	}
	altType := s.inferExpression(n.Alternative, table)
	return s.unifyAt(n, consType, altType, s.subst).Apply(s.subst)
}

// inferFunctionLiteral types an anonymous function. Unannotated parameters
// get fresh variables refined by the body; an annotated return type is
// checked against the inferred body type.
func (s *Session) inferFunctionLiteral(n *ast.FunctionLiteral, table *symbols.SymbolTable) typesystem.Type {
	scope := symbols.NewEnclosedSymbolTable(table, symbols.ScopeFunction)
	sc := newTypeScope(true)

	params := make([]typesystem.Type, len(n.Parameters))
	for i, p := range n.Parameters {
		var pt typesystem.Type
		if p.Type != nil {
			pt = s.buildType(p.Type, sc)
		} else {
			pt = s.FreshVar()
		}
		params[i] = pt
		scope.Define(p.Name.Value, pt, s.file)
	}

	bodyType := s.inferExpression(n.Body, scope)
	ret := bodyType
	if n.ReturnType != nil {
		declared := s.buildType(n.ReturnType, sc)
		ret = s.unifyAt(n, declared, bodyType, s.subst)
	}

	for i := range params {
		params[i] = params[i].Apply(s.subst)
	}
	return typesystem.TFunc{Params: params, Return: ret.Apply(s.subst)}
}

// inferMatch types a match expression. Each arm checks its pattern against
// the scrutinee and contributes its result to the match type; an arm found
// unreachable is still fully checked for other errors but excluded from the
// result unification. Coverage is verified once after all arms.
func (s *Session) inferMatch(n *ast.MatchExpression, table *symbols.SymbolTable) typesystem.Type {
	scrutineeType := s.inferExpression(n.Expression, table)

	cov := s.newCoverage(scrutineeType.Apply(s.subst))

	var result typesystem.Type
	for _, arm := range n.Arms {
		scope := symbols.NewEnclosedSymbolTable(table, symbols.ScopeBlock)
		s.checkPattern(arm.Pattern, scrutineeType.Apply(s.subst), scope)

		reachable := cov.recordArm(arm.Pattern)
		if !reachable {
			s.errorf(diagnostics.ErrC006, arm.Pattern, patternSignature(arm.Pattern))
		}

		armType := s.inferExpression(arm.Expression, scope)
		if !reachable {
			continue
		}
		if result == nil {
			result = armType
		} else {
			result = s.unifyAt(arm.Expression, result, armType, s.subst)
		}
	}

	if !cov.exhaustive() {
		s.errorf(diagnostics.ErrC005, n,
			fmt.Sprintf("missing cases: %s", strings.Join(cov.missing(), ", ")))
	}

	if result == nil {
		return typesystem.Unknown
	}
	return result.Apply(s.subst)
}

// checkPattern unifies a pattern against the scrutinee type and defines any
// bindings it introduces in the arm's scope.
func (s *Session) checkPattern(p ast.Pattern, scrutinee typesystem.Type, scope *symbols.SymbolTable) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		// Matches anything, binds nothing.

	case *ast.IdentifierPattern:
		scope.Define(pat.Name.Value, scrutinee, s.file)

	case *ast.LiteralPattern:
		litType := s.inferExpression(pat.Value, scope)
		s.unifyAt(pat, scrutinee, litType, s.subst)

	case *ast.ConstructorPattern:
		v, ok := s.reg.Constructor(pat.Name.Value)
		if !ok {
			s.errorf(diagnostics.ErrC001, pat.Name, pat.Name.Value)
			return
		}
		ctor := s.instantiate(v.Ctor).(typesystem.TFunc)
		s.unifyAt(pat, scrutinee, ctor.Return, s.subst)

		if pat.Param == nil {
			if len(ctor.Params) != 0 {
				s.errorf(diagnostics.ErrC003, pat,
					fmt.Sprintf("constructor %s carries a payload, pattern binds none", pat.Name.Value))
			}
			return
		}
		if len(ctor.Params) == 0 {
			s.errorf(diagnostics.ErrC003, pat,
				fmt.Sprintf("constructor %s takes no payload", pat.Name.Value))
			return
		}
		s.checkPattern(pat.Param, ctor.Params[0].Apply(s.subst), scope)
	}
}
