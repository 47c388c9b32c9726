package checker

import (
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/typesystem"
)

// Variant is one constructor of an ADT: nullary when Payload is nil, unary
// otherwise. Ctor is the constructor's function type over the owning ADT's
// parameter placeholders; it is instantiated fresh at every use site.
type Variant struct {
	Name    string
	AdtName string
	Payload typesystem.Type
	Ctor    typesystem.TFunc
}

// AdtDef is one registered algebraic data type. Params are zero-argument
// generic placeholders; their ids are what constructor instantiation renames.
type AdtDef struct {
	Name     string
	Params   []typesystem.TGeneric
	Variants []*Variant
}

// AliasDef is one registered parametric alias.
type AliasDef struct {
	Name   string
	Params []typesystem.TGeneric
	Body   typesystem.Type
}

// Registry holds the per-session constructor list, alias table and component
// table. It is built once per file check from the built-in entries plus every
// user definition encountered, and discarded with the session.
type Registry struct {
	adts       map[string]*AdtDef
	aliases    map[string]*AliasDef
	ctors      map[string]*Variant
	components map[string]typesystem.TElement
}

func NewRegistry() *Registry {
	return &Registry{
		adts:       make(map[string]*AdtDef),
		aliases:    make(map[string]*AliasDef),
		ctors:      make(map[string]*Variant),
		components: make(map[string]typesystem.TElement),
	}
}

func (r *Registry) Adt(name string) (*AdtDef, bool) {
	def, ok := r.adts[name]
	return def, ok
}

func (r *Registry) Alias(name string) (*AliasDef, bool) {
	def, ok := r.aliases[name]
	return def, ok
}

func (r *Registry) Constructor(name string) (*Variant, bool) {
	v, ok := r.ctors[name]
	return v, ok
}

func (r *Registry) Component(name string) (typesystem.TElement, bool) {
	el, ok := r.components[name]
	return el, ok
}

func (r *Registry) HasType(name string) bool {
	if _, ok := r.adts[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

func (r *Registry) RegisterAdt(def *AdtDef) {
	r.adts[def.Name] = def
	for _, v := range def.Variants {
		r.ctors[v.Name] = v
	}
}

func (r *Registry) RegisterAlias(def *AliasDef) {
	r.aliases[def.Name] = def
}

func (r *Registry) RegisterComponent(el typesystem.TElement) {
	r.components[el.Name] = el
}

// ExpandAliasOnce performs one level of alias expansion: a generic reference
// whose base name has an alias definition is replaced by the alias body with
// declared parameters substituted by the instance's actual arguments. Any
// other type is returned unchanged with false. Nominal ADTs never expand.
func (r *Registry) ExpandAliasOnce(t typesystem.Type, s typesystem.Subst) (typesystem.Type, bool) {
	g, ok := t.(typesystem.TGeneric)
	if !ok {
		return t, false
	}
	def, ok := r.aliases[g.Name]
	if !ok || len(def.Params) != len(g.Args) {
		return t, false
	}

	local := make(typesystem.Subst, len(def.Params))
	for i, p := range def.Params {
		local[p.ID] = g.Args[i]
	}
	return def.Body.Apply(local), true
}

// ResolveToRecordType expands aliases until it reaches a record type,
// bounded by the alias depth guard. Used when a caller must inspect fields
// of a possibly-aliased record. Returns false when the chain does not end in
// a record.
func (r *Registry) ResolveToRecordType(t typesystem.Type, s typesystem.Subst) (typesystem.TRecord, bool) {
	cur := t.Apply(s)
	for i := 0; i <= config.MaxAliasDepth; i++ {
		if rec, ok := cur.(typesystem.TRecord); ok {
			return rec, true
		}
		next, expanded := r.ExpandAliasOnce(cur, s)
		if !expanded {
			return typesystem.TRecord{}, false
		}
		cur = next.Apply(s)
	}
	return typesystem.TRecord{}, false
}
