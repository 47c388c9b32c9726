package typesystem

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the interface for all types in our system. The variant set is
// closed: every operation over types (substitution, occurs check,
// unification, printing) switches exhaustively over these forms.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVars() []TVar
}

// TCon represents a primitive type constant.
type TCon struct {
	Name string
}

// The primitive singletons. Unknown unifies with anything and is absorbed
// (the other operand wins).
var (
	Str     = TCon{Name: "String"}
	Num     = TCon{Name: "Number"}
	Bool    = TCon{Name: "Boolean"}
	Unit    = TCon{Name: "Unit"}
	Unknown = TCon{Name: "Unknown"}
)

func (t TCon) String() string       { return t.Name }
func (t TCon) Apply(s Subst) Type   { return t }
func (t TCon) FreeTypeVars() []TVar { return nil }

// TVar represents a type variable awaiting resolution. Identity is the ID,
// never the display name; IDs are unique for the duration of one file check.
type TVar struct {
	ID   int
	Name string
}

func (t TVar) String() string { return t.Name }

func (t TVar) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[int]bool))
}

func (t TVar) FreeTypeVars() []TVar { return []TVar{t} }

// TFunc represents a function type. CtorName is set when the function is an
// ADT constructor, so call sites can recover the variant being built.
type TFunc struct {
	Params   []Type
	Return   Type
	CtorName string
}

func (t TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Return)
}

func (t TFunc) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[int]bool))
}

func (t TFunc) FreeTypeVars() []TVar {
	var vars []TVar
	for _, p := range t.Params {
		vars = append(vars, p.FreeTypeVars()...)
	}
	vars = append(vars, t.Return.FreeTypeVars()...)
	return uniqueTVars(vars)
}

// TArray represents a homogeneous array of unbounded length.
type TArray struct {
	Elem Type
}

func (t TArray) String() string { return fmt.Sprintf("Array<%s>", t.Elem) }

func (t TArray) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[int]bool))
}

func (t TArray) FreeTypeVars() []TVar { return uniqueTVars(t.Elem.FreeTypeVars()) }

// TTuple represents a fixed-arity, heterogeneous tuple.
type TTuple struct {
	Elements []Type
}

func (t TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

func (t TTuple) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[int]bool))
}

func (t TTuple) FreeTypeVars() []TVar {
	var vars []TVar
	for _, e := range t.Elements {
		vars = append(vars, e.FreeTypeVars()...)
	}
	return uniqueTVars(vars)
}

// Field is one record field: its type plus whether the field may be absent.
type Field struct {
	Type     Type
	Optional bool
}

// TRecord represents a structural record. Key order is irrelevant; keys are
// unique. Unification is covariant in optionality (see unify.go).
type TRecord struct {
	Fields map[string]Field
}

func (t TRecord) String() string {
	keys := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		f := t.Fields[k]
		mark := ""
		if f.Optional {
			mark = "?"
		}
		parts = append(parts, fmt.Sprintf("%s%s: %s", k, mark, f.Type))
	}
	return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
}

func (t TRecord) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[int]bool))
}

func (t TRecord) FreeTypeVars() []TVar {
	keys := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var vars []TVar
	for _, k := range keys {
		vars = append(vars, t.Fields[k].Type.FreeTypeVars()...)
	}
	return uniqueTVars(vars)
}

// TAdt represents a nominal algebraic data type instance. Equality is by
// name and parameter count, not by structure of the constructors.
type TAdt struct {
	Name   string
	Params []Type
}

func (t TAdt) String() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
}

func (t TAdt) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[int]bool))
}

// FreeTypeVars deliberately does not descend into Params: an ADT's declared
// type parameters do not "contain" a variable used only in its constructors.
// Constructor types are checked independently when called.
func (t TAdt) FreeTypeVars() []TVar { return nil }

// TGeneric represents an instantiated generic or parametric alias reference,
// e.g. Option<Number>. With zero arguments it behaves like a type variable
// during alias resolution: the ID makes it bindable in a substitution map.
type TGeneric struct {
	ID   int
	Name string
	Args []Type
}

func (t TGeneric) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
}

func (t TGeneric) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[int]bool))
}

func (t TGeneric) FreeTypeVars() []TVar {
	var vars []TVar
	for _, a := range t.Args {
		vars = append(vars, a.FreeTypeVars()...)
	}
	return uniqueTVars(vars)
}

// TElement represents a declared element type (a renderable tag) wrapping
// the record of attributes it accepts. For unification it is treated like
// its attribute record, plus a nominal tag-name check.
type TElement struct {
	Name  string
	Attrs TRecord
}

func (t TElement) String() string { return fmt.Sprintf("<%s>", t.Name) }

func (t TElement) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[int]bool))
}

func (t TElement) FreeTypeVars() []TVar { return t.Attrs.FreeTypeVars() }

// Equal reports structural equality of two types. TVar compares by ID;
// TAdt and TGeneric compare by name plus pairwise-equal arguments, except
// that a zero-argument TGeneric is a placeholder and compares by id, so two
// distinct placeholders sharing a display name still bind instead of
// short-circuiting as equal.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case TCon:
		b, ok := b.(TCon)
		return ok && a.Name == b.Name
	case TVar:
		b, ok := b.(TVar)
		return ok && a.ID == b.ID
	case TFunc:
		bf, ok := b.(TFunc)
		if !ok || len(a.Params) != len(bf.Params) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], bf.Params[i]) {
				return false
			}
		}
		return Equal(a.Return, bf.Return)
	case TArray:
		ba, ok := b.(TArray)
		return ok && Equal(a.Elem, ba.Elem)
	case TTuple:
		bt, ok := b.(TTuple)
		if !ok || len(a.Elements) != len(bt.Elements) {
			return false
		}
		for i := range a.Elements {
			if !Equal(a.Elements[i], bt.Elements[i]) {
				return false
			}
		}
		return true
	case TRecord:
		br, ok := b.(TRecord)
		if !ok || len(a.Fields) != len(br.Fields) {
			return false
		}
		for k, fa := range a.Fields {
			fb, ok := br.Fields[k]
			if !ok || fa.Optional != fb.Optional || !Equal(fa.Type, fb.Type) {
				return false
			}
		}
		return true
	case TAdt:
		bn, ok := b.(TAdt)
		if !ok || a.Name != bn.Name || len(a.Params) != len(bn.Params) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], bn.Params[i]) {
				return false
			}
		}
		return true
	case TGeneric:
		bg, ok := b.(TGeneric)
		if !ok || a.Name != bg.Name || len(a.Args) != len(bg.Args) {
			return false
		}
		if len(a.Args) == 0 {
			return a.ID == bg.ID
		}
		for i := range a.Args {
			if !Equal(a.Args[i], bg.Args[i]) {
				return false
			}
		}
		return true
	case TElement:
		be, ok := b.(TElement)
		return ok && a.Name == be.Name && Equal(a.Attrs, be.Attrs)
	default:
		return false
	}
}

func uniqueTVars(vars []TVar) []TVar {
	if len(vars) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(vars))
	unique := make([]TVar, 0, len(vars))
	for _, v := range vars {
		if !seen[v.ID] {
			seen[v.ID] = true
			unique = append(unique, v)
		}
	}
	return unique
}
