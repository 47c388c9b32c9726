package checker

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/symbols"
	"github.com/vela-lang/vela/internal/typesystem"
)

// pendingType is a hoisted type declaration waiting for its body pass.
type pendingType struct {
	decl  *ast.TypeDeclaration
	sc    *typeScope
	adt   *AdtDef
	alias *AliasDef
}

// checkProgram drives the file check. Type and component declarations are
// hoisted in two phases (names first, bodies second) so definitions can
// reference each other regardless of source order; then every statement is
// checked in order.
func (s *Session) checkProgram(program *ast.Program) {
	var pending []*pendingType
	for _, stmt := range program.Statements {
		switch n := stmt.(type) {
		case *ast.TypeDeclaration:
			if p := s.hoistTypeName(n); p != nil {
				pending = append(pending, p)
			}
		case *ast.ImportStatement:
			s.checkImport(n)
		}
	}

	for _, p := range pending {
		s.fillTypeBody(p)
	}
	for _, stmt := range program.Statements {
		if n, ok := stmt.(*ast.ComponentDeclaration); ok {
			s.registerComponentDeclaration(n)
		}
	}

	for _, stmt := range program.Statements {
		switch n := stmt.(type) {
		case *ast.LetStatement:
			s.checkLet(n, s.globalScope)
		case *ast.ExpressionStatement:
			s.inferExpression(n.Expression, s.globalScope)
		}
	}
}

// hoistTypeName registers the name and parameter list of a declaration so
// later bodies can refer to it. Bodies are filled in by fillTypeBody.
func (s *Session) hoistTypeName(n *ast.TypeDeclaration) *pendingType {
	name := n.Name.Value
	if s.reg.HasType(name) {
		s.errorf(diagnostics.ErrC004, n.Name, name)
		return nil
	}

	sc := newTypeScope(false)
	params := make([]typesystem.TGeneric, len(n.Params))
	for i, p := range n.Params {
		params[i] = sc.declare(s, p.Value)
	}

	p := &pendingType{decl: n, sc: sc}
	if n.Alias != nil {
		p.alias = &AliasDef{Name: name, Params: params, Body: typesystem.Unknown}
		s.reg.RegisterAlias(p.alias)
		s.globalScope.DefineType(name, typesystem.TGeneric{ID: s.freshID(), Name: name, Args: genericArgs(params)}, s.file)
	} else {
		p.adt = &AdtDef{Name: name, Params: params}
		s.reg.RegisterAdt(p.adt)
		s.globalScope.DefineType(name, adtInstance(name, params), s.file)
	}
	return p
}

// fillTypeBody completes a hoisted declaration: the alias body, or one
// constructor entry per ADT variant.
func (s *Session) fillTypeBody(p *pendingType) {
	n := p.decl
	if p.alias != nil {
		p.alias.Body = s.buildType(n.Alias, p.sc)
		return
	}

	ret := adtInstance(p.adt.Name, p.adt.Params)
	for _, cd := range n.Constructors {
		if _, dup := s.reg.Constructor(cd.Name.Value); dup {
			s.errorf(diagnostics.ErrC004, cd.Name, cd.Name.Value)
			continue
		}
		v := &Variant{Name: cd.Name.Value, AdtName: p.adt.Name}
		v.Ctor = typesystem.TFunc{Return: ret, CtorName: v.Name}
		if cd.Payload != nil {
			v.Payload = s.buildType(cd.Payload, p.sc)
			v.Ctor.Params = []typesystem.Type{v.Payload}
		}
		p.adt.Variants = append(p.adt.Variants, v)
		s.reg.ctors[v.Name] = v
		s.globalScope.DefineConstructor(v.Name, v.Ctor, s.file)
	}
}

func genericArgs(params []typesystem.TGeneric) []typesystem.Type {
	args := make([]typesystem.Type, len(params))
	for i, p := range params {
		args[i] = p
	}
	return args
}

func (s *Session) registerComponentDeclaration(n *ast.ComponentDeclaration) {
	name := n.Name.Value
	if _, dup := s.reg.Component(name); dup {
		s.errorf(diagnostics.ErrC004, n.Name, name)
		return
	}

	attrs := typesystem.TRecord{Fields: make(map[string]typesystem.Field)}
	if n.Attrs != nil {
		attrs = s.buildType(n.Attrs, newTypeScope(false)).(typesystem.TRecord)
	}
	el := typesystem.TElement{Name: name, Attrs: attrs}
	s.reg.RegisterComponent(el)
	s.globalScope.DefineComponent(name, el, s.file)
}

// checkImport loads the target module through the shared loader and binds
// the requested exports. A module re-entering its own processing set is a
// circular dependency: reported, and the import degrades to no bindings.
func (s *Session) checkImport(n *ast.ImportStatement) {
	if s.loader == nil {
		s.errorf(diagnostics.ErrC001, n.Path, n.Path.Value)
		return
	}

	entry, err := s.loader.Load(s.file, n.Path.Value)
	if err != nil {
		s.errorf(diagnostics.ErrC008, n.Path, n.Path.Value)
		return
	}

	if len(n.Symbols) == 0 {
		for name, t := range entry.Exports {
			s.globalScope.DefineGeneralized(name, t, entry.Path)
		}
		return
	}
	for _, sym := range n.Symbols {
		t, ok := entry.Exports[sym.Value]
		if !ok {
			s.errorf(diagnostics.ErrC001, sym, sym.Value)
			continue
		}
		s.globalScope.DefineGeneralized(sym.Value, t, entry.Path)
	}
}

// checkLet infers the bound expression, checks it against the annotation if
// one is present, and defines the binding in the given scope.
func (s *Session) checkLet(n *ast.LetStatement, table *symbols.SymbolTable) {
	if table.IsDefinedLocally(n.Name.Value) {
		s.errorf(diagnostics.ErrC004, n.Name, n.Name.Value)
	}

	inferred := s.inferExpression(n.Value, table)

	t := inferred
	if n.TypeAnnotation != nil {
		annotated := s.buildType(n.TypeAnnotation, newTypeScope(true))
		t = s.unifyAt(n, annotated, inferred, s.subst)
	}
	t = t.Apply(s.subst)

	table.DefineWithNode(n.Name.Value, t, s.file, n, s.generalizable(t, table))
	s.typeMap[n] = t
	if table.IsGlobalScope() {
		s.addHint(n.Name, t)
	}
}
