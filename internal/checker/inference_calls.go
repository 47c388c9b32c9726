package checker

import (
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/symbols"
	"github.com/vela-lang/vela/internal/typesystem"
)

// inferCall resolves the callee to a function type, arity-checks, and
// unifies each parameter against its argument in a call-local substitution
// map so one call's inferred bindings cannot leak into sibling calls of the
// same polymorphic function. The local map merges back only when every
// argument unified.
func (s *Session) inferCall(n *ast.CallExpression, table *symbols.SymbolTable) typesystem.Type {
	calleeType := s.resolveCallee(n, table)

	fn, ok := calleeType.(typesystem.TFunc)
	if !ok {
		// A callee still inferring as a variable is constrained to a
		// function of the right arity.
		if _, isVar := calleeType.(typesystem.TVar); isVar {
			params := make([]typesystem.Type, len(n.Arguments))
			for i := range n.Arguments {
				params[i] = s.FreshVar()
			}
			want := typesystem.TFunc{Params: params, Return: s.FreshVar()}
			if u, err := typesystem.Unify(calleeType, want, s.subst, s.reg); err == nil {
				fn = u.(typesystem.TFunc)
				ok = true
			}
		}
		if !ok {
			if !typesystem.Equal(calleeType, typesystem.Unknown) {
				s.errorf(diagnostics.ErrC003, n, fmt.Sprintf("cannot call non-function type %s", calleeType))
			}
			return typesystem.Unknown
		}
	}

	if len(n.TypeArgs) > 0 {
		explicit := make([]typesystem.Type, len(n.TypeArgs))
		for i, ta := range n.TypeArgs {
			explicit[i] = s.buildType(ta, newTypeScope(true))
		}
		fn = s.bindExplicitTypeArgs(fn, explicit, n)
	}

	if len(n.Arguments) != len(fn.Params) {
		s.errorf(diagnostics.ErrC003, n,
			fmt.Sprintf("function expects %d arguments, got %d", len(fn.Params), len(n.Arguments)))
		return fn.Return.Apply(s.subst)
	}

	argTypes := make([]typesystem.Type, len(n.Arguments))
	for i, arg := range n.Arguments {
		argTypes[i] = s.inferExpression(arg, table)
	}

	local := s.subst.Clone()
	failed := false
	for i := range argTypes {
		if _, err := typesystem.Unify(fn.Params[i], argTypes[i], local, s.reg); err != nil {
			s.errorf(diagnostics.ErrC003, n.Arguments[i],
				fmt.Errorf("in argument %d: %w", i+1, err))
			failed = true
		}
	}
	if !failed {
		local.MergeInto(s.subst)
	}
	return fn.Return.Apply(local)
}

// resolveCallee types the function position of a call. An identifier naming
// a constructor resolves to the constructor's function type even when
// nullary, so None() and None both check.
func (s *Session) resolveCallee(n *ast.CallExpression, table *symbols.SymbolTable) typesystem.Type {
	if ident, ok := n.Function.(*ast.Identifier); ok {
		if sym, found := table.Find(ident.Value); found && sym.Kind == symbols.ConstructorSymbol {
			t := s.instantiate(sym.Type.Apply(s.subst))
			s.typeMap[ident] = t
			return t
		}
	}
	return s.inferExpression(n.Function, table).Apply(s.subst)
}
