package checker

import (
	"strings"

	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/typesystem"
)

// registerBuiltins seeds the registry and the prelude scope with the
// built-in Option and Result types plus the intrinsic element tags declared
// in vela.yaml.
func (s *Session) registerBuiltins() {
	a := s.placeholder("a")
	s.registerBuiltinAdt(config.OptionTypeName, []typesystem.TGeneric{a}, []builtinVariant{
		{name: config.SomeCtorName, payload: a},
		{name: config.NoneCtorName},
	})

	ra := s.placeholder("a")
	rb := s.placeholder("b")
	s.registerBuiltinAdt(config.ResultTypeName, []typesystem.TGeneric{ra, rb}, []builtinVariant{
		{name: config.OkCtorName, payload: ra},
		{name: config.ErrCtorName, payload: rb},
	})

	for tag, attrs := range s.project.Intrinsics {
		s.reg.RegisterComponent(intrinsicElement(tag, attrs))
	}
}

type builtinVariant struct {
	name    string
	payload typesystem.Type
}

// placeholder allocates a zero-argument generic placeholder used as a
// declared type parameter.
func (s *Session) placeholder(name string) typesystem.TGeneric {
	return typesystem.TGeneric{ID: s.freshID(), Name: name}
}

func (s *Session) registerBuiltinAdt(name string, params []typesystem.TGeneric, variants []builtinVariant) {
	def := &AdtDef{Name: name, Params: params}
	ret := adtInstance(name, params)
	prelude := s.globalScope.Outer()

	for _, bv := range variants {
		v := &Variant{Name: bv.name, AdtName: name, Payload: bv.payload}
		v.Ctor = typesystem.TFunc{Return: ret, CtorName: bv.name}
		if bv.payload != nil {
			v.Ctor.Params = []typesystem.Type{bv.payload}
		}
		def.Variants = append(def.Variants, v)
		prelude.DefineConstructor(bv.name, v.Ctor, "")
	}

	s.reg.RegisterAdt(def)
	prelude.DefineType(name, ret, "")
}

func adtInstance(name string, params []typesystem.TGeneric) typesystem.TAdt {
	ps := make([]typesystem.Type, len(params))
	for i, p := range params {
		ps[i] = p
	}
	return typesystem.TAdt{Name: name, Params: ps}
}

// intrinsicElement builds an element type from a vela.yaml attribute table.
// A trailing '?' on the type name marks the attribute optional.
func intrinsicElement(tag string, attrs map[string]string) typesystem.TElement {
	fields := make(map[string]typesystem.Field, len(attrs))
	for attr, typeName := range attrs {
		optional := strings.HasSuffix(typeName, "?")
		fields[attr] = typesystem.Field{
			Type:     builtinTypeByName(strings.TrimSuffix(typeName, "?")),
			Optional: optional,
		}
	}
	return typesystem.TElement{Name: tag, Attrs: typesystem.TRecord{Fields: fields}}
}

func builtinTypeByName(name string) typesystem.Type {
	switch name {
	case config.StringTypeName:
		return typesystem.Str
	case config.NumberTypeName:
		return typesystem.Num
	case config.BooleanTypeName:
		return typesystem.Bool
	case config.UnitTypeName:
		return typesystem.Unit
	default:
		return typesystem.Unknown
	}
}
