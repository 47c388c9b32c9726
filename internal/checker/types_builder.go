package checker

import (
	"fmt"
	"unicode"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/typesystem"
)

// typeScope maps the lowercase type-parameter names of one declaration (or
// one annotation) to their generic placeholders. An open scope mints a
// placeholder on first use, which is how free lowercase names in a let
// annotation become polymorphic; a closed scope treats unknown names as
// undeclared.
type typeScope struct {
	params map[string]typesystem.TGeneric
	open   bool
}

func newTypeScope(open bool) *typeScope {
	return &typeScope{params: make(map[string]typesystem.TGeneric), open: open}
}

func (sc *typeScope) declare(s *Session, name string) typesystem.TGeneric {
	p := s.placeholder(name)
	sc.params[name] = p
	return p
}

// buildType converts a type expression into a type value, resolving names
// through the registry. Errors are reported and yield Unknown so checking
// continues.
func (s *Session) buildType(te ast.TypeExpr, sc *typeScope) typesystem.Type {
	switch n := te.(type) {
	case *ast.NamedTypeExpr:
		return s.buildNamedType(n, sc)

	case *ast.RecordTypeExpr:
		fields := make(map[string]typesystem.Field, len(n.Fields))
		for _, f := range n.Fields {
			if _, dup := fields[f.Name.Value]; dup {
				s.errorf(diagnostics.ErrC004, f.Name, f.Name.Value)
				continue
			}
			fields[f.Name.Value] = typesystem.Field{
				Type:     s.buildType(f.Type, sc),
				Optional: f.Optional,
			}
		}
		return typesystem.TRecord{Fields: fields}

	case *ast.TupleTypeExpr:
		elems := make([]typesystem.Type, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = s.buildType(e, sc)
		}
		return typesystem.TTuple{Elements: elems}

	case *ast.ArrayTypeExpr:
		return typesystem.TArray{Elem: s.buildType(n.Elem, sc)}

	case *ast.FunctionTypeExpr:
		params := make([]typesystem.Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = s.buildType(p, sc)
		}
		return typesystem.TFunc{Params: params, Return: s.buildType(n.Return, sc)}

	default:
		s.errorf(diagnostics.ErrC002, te, te.TokenLiteral())
		return typesystem.Unknown
	}
}

func (s *Session) buildNamedType(n *ast.NamedTypeExpr, sc *typeScope) typesystem.Type {
	name := n.Name.Value

	if isLowerName(name) {
		if len(n.Args) > 0 {
			s.errorf(diagnostics.ErrC003, n, "type parameter "+name+" cannot take arguments")
			return typesystem.Unknown
		}
		if p, ok := sc.params[name]; ok {
			return p
		}
		if sc.open {
			return sc.declare(s, name)
		}
		s.errorf(diagnostics.ErrC002, n, name)
		return typesystem.Unknown
	}

	args := make([]typesystem.Type, len(n.Args))
	for i, a := range n.Args {
		args[i] = s.buildType(a, sc)
	}

	switch name {
	case config.StringTypeName, config.NumberTypeName, config.BooleanTypeName,
		config.UnitTypeName, config.UnknownTypeName:
		if len(args) > 0 {
			s.errorf(diagnostics.ErrC003, n, name+" does not take type arguments")
		}
		return builtinTypeByName(name)

	case config.ArrayTypeName:
		if len(args) != 1 {
			s.errorf(diagnostics.ErrC003, n, "Array expects exactly 1 type argument")
			return typesystem.TArray{Elem: typesystem.Unknown}
		}
		return typesystem.TArray{Elem: args[0]}
	}

	if def, ok := s.reg.Adt(name); ok {
		if len(args) != len(def.Params) {
			s.errorf(diagnostics.ErrC003, n,
				typeArityMessage(name, len(def.Params), len(args)))
			return typesystem.Unknown
		}
		return typesystem.TAdt{Name: name, Params: args}
	}

	if def, ok := s.reg.Alias(name); ok {
		g := typesystem.TGeneric{ID: s.freshID(), Name: name, Args: genericArgs(def.Params)}
		return s.instantiateGenericType(g, args, n)
	}

	s.errorf(diagnostics.ErrC002, n, name)
	return typesystem.Unknown
}

func typeArityMessage(name string, want, got int) string {
	return fmt.Sprintf("%s expects %d type arguments, got %d", name, want, got)
}

func isLowerName(name string) bool {
	for _, r := range name {
		return unicode.IsLower(r)
	}
	return false
}
