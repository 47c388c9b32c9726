package checker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/symbols"
	"github.com/vela-lang/vela/internal/typesystem"
)

// inferElement checks a structural element against its declared component
// (or intrinsic tag). Every attribute is checked even after one fails, so a
// single bad element reports all of its problems in one run.
func (s *Session) inferElement(n *ast.ElementExpression, table *symbols.SymbolTable) typesystem.Type {
	tag := n.TagName.Value
	el, ok := s.reg.Component(tag)
	if !ok {
		s.errorf(diagnostics.ErrC002, n.TagName, tag)
		for _, attr := range n.Attributes {
			s.inferExpression(attr.Value, table)
		}
		return typesystem.Unknown
	}

	provided := make(map[string]bool, len(n.Attributes))
	for _, attr := range n.Attributes {
		name := attr.Name.Value
		if provided[name] {
			s.errorf(diagnostics.ErrC004, attr.Name, name)
			continue
		}
		provided[name] = true

		expected, declared := el.Attrs.Fields[name]
		valType := s.inferExpression(attr.Value, table)
		if !declared {
			s.errorf(diagnostics.ErrC007, attr.Name,
				fmt.Sprintf("unexpected attribute '%s' on <%s>", name, tag))
			continue
		}
		s.checkAttribute(attr, tag, expected.Type, valType)
	}

	var missing []string
	for name, f := range el.Attrs.Fields {
		if !f.Optional && !provided[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	for _, name := range missing {
		s.errorf(diagnostics.ErrC007, n,
			fmt.Sprintf("missing required attribute '%s' on <%s>", name, tag))
	}

	return el
}

// checkAttribute unifies one attribute value against its declared field. A
// string literal may satisfy an enum-like ADT field when it names one of the
// ADT's nullary constructors, compared case-insensitively.
func (s *Session) checkAttribute(attr *ast.Attribute, tag string, expected, provided typesystem.Type) {
	if adt, ok := expected.(typesystem.TAdt); ok {
		if lit, ok := attr.Value.(*ast.StringLiteral); ok && s.matchesEnumVariant(adt.Name, lit.Value) {
			return
		}
	}

	local := s.subst.Clone()
	if _, err := typesystem.Unify(expected, provided, local, s.reg); err != nil {
		s.errorf(diagnostics.ErrC007, attr.Name,
			fmt.Sprintf("attribute '%s' on <%s>: %v", attr.Name.Value, tag, err))
		return
	}
	local.MergeInto(s.subst)
}

// matchesEnumVariant reports whether value names a nullary constructor of
// the given ADT, ignoring case.
func (s *Session) matchesEnumVariant(adtName, value string) bool {
	def, ok := s.reg.Adt(adtName)
	if !ok {
		return false
	}
	for _, v := range def.Variants {
		if v.Payload == nil && strings.EqualFold(v.Name, value) {
			return true
		}
	}
	return false
}
