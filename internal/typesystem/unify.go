package typesystem

import (
	"fmt"

	"github.com/vela-lang/vela/internal/config"
)

// Resolver lets Unify expand parametric aliases it cannot see locally. The
// checker's registry implements it; a nil resolver disables expansion.
type Resolver interface {
	// ExpandAliasOnce performs one level of alias expansion, reporting
	// whether anything was expanded.
	ExpandAliasOnce(t Type, s Subst) (Type, bool)
}

// Unify attempts to make t1 and t2 equal by extending the substitution map
// in place, returning the unified type. When the caller distinguishes
// directions, t1 is the expected type and t2 the provided one; this matters
// only for the optional-field covariance rule on records.
//
// When both sides could bind (two distinct variables), the left operand is
// bound so diagnostics stay deterministic.
func Unify(t1, t2 Type, s Subst, r Resolver) (Type, error) {
	a := ApplyWithCycleCheck(t1, s, make(map[int]bool))
	b := ApplyWithCycleCheck(t2, s, make(map[int]bool))

	if Equal(a, b) {
		return a, nil
	}

	// Alias expansion, one level at a time, re-checking equality after each
	// step. Hitting the depth bound (a self-referential alias) falls back to
	// the un-expanded operands rather than recursing forever.
	if r != nil {
		ea, eb := a, b
		expanded, hitBound := false, false
		for i := 0; i < config.MaxAliasDepth; i++ {
			na, ok1 := r.ExpandAliasOnce(ea, s)
			nb, ok2 := r.ExpandAliasOnce(eb, s)
			if !ok1 && !ok2 {
				break
			}
			ea, eb = na, nb
			expanded = true
			if Equal(ea, eb) {
				return ea, nil
			}
			if i == config.MaxAliasDepth-1 {
				hitBound = true
			}
		}
		if expanded && !hitBound {
			a, b = ea, eb
		}
	}

	// Unknown absorbs: the other operand propagates.
	if isUnknown(a) {
		return b, nil
	}
	if isUnknown(b) {
		return a, nil
	}

	// Both instantiated generics of the same base.
	ga, aIsGen := a.(TGeneric)
	gb, bIsGen := b.(TGeneric)
	if aIsGen && bIsGen && len(ga.Args) > 0 && len(gb.Args) > 0 {
		if ga.Name != gb.Name {
			return nil, errUnify(a, b)
		}
		if len(ga.Args) != len(gb.Args) {
			return nil, errMismatch(fmt.Sprintf("%s expects %d type arguments, got %d", ga.Name, len(ga.Args), len(gb.Args)))
		}
		args := make([]Type, len(ga.Args))
		for i := range ga.Args {
			u, err := Unify(ga.Args[i], gb.Args[i], s, r)
			if err != nil {
				return nil, errContext(fmt.Sprintf("type argument %d of %s", i+1, ga.Name), err)
			}
			args[i] = u
		}
		return TGeneric{ID: ga.ID, Name: ga.Name, Args: args}, nil
	}

	// A zero-argument generic behaves like a variable during alias
	// resolution: occurs-check, then bind.
	if aIsGen && len(ga.Args) == 0 {
		if err := bindID(ga.ID, ga, b, s); err != nil {
			return nil, err
		}
		return b, nil
	}
	if bIsGen && len(gb.Args) == 0 {
		if err := bindID(gb.ID, gb, a, s); err != nil {
			return nil, err
		}
		return a, nil
	}

	// Nominal ADTs: name and arity must match, parameters unify pairwise.
	if na, ok := a.(TAdt); ok {
		if nb, ok := b.(TAdt); ok {
			if na.Name != nb.Name || len(na.Params) != len(nb.Params) {
				return nil, errUnify(a, b)
			}
			params := make([]Type, len(na.Params))
			for i := range na.Params {
				u, err := Unify(na.Params[i], nb.Params[i], s, r)
				if err != nil {
					return nil, errContext(fmt.Sprintf("type parameter %d of %s", i+1, na.Name), err)
				}
				params[i] = u
			}
			return TAdt{Name: na.Name, Params: params}, nil
		}
	}

	// Type variables. Both sides are fully resolved here, so a remaining
	// TVar is genuinely unbound.
	if va, ok := a.(TVar); ok {
		if vb, ok := b.(TVar); ok && va.ID == vb.ID {
			return a, nil
		}
		if err := bindID(va.ID, va, b, s); err != nil {
			return nil, err
		}
		return b, nil
	}
	if vb, ok := b.(TVar); ok {
		if err := bindID(vb.ID, vb, a, s); err != nil {
			return nil, err
		}
		return a, nil
	}

	// Matching composite shapes.
	switch a := a.(type) {
	case TArray:
		if b, ok := b.(TArray); ok {
			elem, err := Unify(a.Elem, b.Elem, s, r)
			if err != nil {
				return nil, errContext("array element", err)
			}
			return TArray{Elem: elem}, nil
		}

	case TTuple:
		if b, ok := b.(TTuple); ok {
			if len(a.Elements) != len(b.Elements) {
				return nil, errMismatch(fmt.Sprintf("tuple length mismatch: %d vs %d", len(a.Elements), len(b.Elements)))
			}
			elems := make([]Type, len(a.Elements))
			for i := range a.Elements {
				u, err := Unify(a.Elements[i], b.Elements[i], s, r)
				if err != nil {
					return nil, errContext(fmt.Sprintf("tuple element %d", i+1), err)
				}
				elems[i] = u
			}
			return TTuple{Elements: elems}, nil
		}

	case TFunc:
		if b, ok := b.(TFunc); ok {
			if len(a.Params) != len(b.Params) {
				return nil, errMismatch(fmt.Sprintf("function parameter count mismatch: %d vs %d", len(a.Params), len(b.Params)))
			}
			params := make([]Type, len(a.Params))
			for i := range a.Params {
				u, err := Unify(a.Params[i], b.Params[i], s, r)
				if err != nil {
					return nil, errContext(fmt.Sprintf("function parameter %d", i+1), err)
				}
				params[i] = u
			}
			ret, err := Unify(a.Return, b.Return, s, r)
			if err != nil {
				return nil, errContext("function return type", err)
			}
			ctor := a.CtorName
			if ctor == "" {
				ctor = b.CtorName
			}
			return TFunc{Params: params, Return: ret, CtorName: ctor}, nil
		}

	case TRecord:
		if b, ok := b.(TRecord); ok {
			return unifyRecords(a, b, s, r)
		}

	case TElement:
		if b, ok := b.(TElement); ok {
			if a.Name != b.Name {
				return nil, errUnify(a, b)
			}
			attrs, err := unifyRecords(a.Attrs, b.Attrs, s, r)
			if err != nil {
				return nil, errContext(fmt.Sprintf("element <%s>", a.Name), err)
			}
			return TElement{Name: a.Name, Attrs: attrs.(TRecord)}, nil
		}
	}

	return nil, errUnify(a, b)
}

// unifyRecords implements the optional-field covariance rule: a required
// field on the provided side may satisfy an optional expected field, never
// the reverse, and a field present on only one side must be optional there.
func unifyRecords(expected, provided TRecord, s Subst, r Resolver) (Type, error) {
	fields := make(map[string]Field, len(expected.Fields))

	for name, fe := range expected.Fields {
		fp, ok := provided.Fields[name]
		if !ok {
			if !fe.Optional {
				return nil, errMismatch(fmt.Sprintf("record is missing required field '%s'", name))
			}
			fields[name] = fe
			continue
		}
		if fp.Optional && !fe.Optional {
			return nil, errMismatch(fmt.Sprintf("field '%s' is required but only optionally provided", name))
		}
		u, err := Unify(fe.Type, fp.Type, s, r)
		if err != nil {
			return nil, errContext(fmt.Sprintf("record field '%s'", name), err)
		}
		fields[name] = Field{Type: u, Optional: fe.Optional}
	}

	for name, fp := range provided.Fields {
		if _, ok := expected.Fields[name]; ok {
			continue
		}
		if !fp.Optional {
			return nil, errMismatch(fmt.Sprintf("record has unexpected field '%s'", name))
		}
	}

	return TRecord{Fields: fields}, nil
}

func bindID(id int, self, other Type, s Subst) error {
	if OccursCheck(id, other) {
		return errMismatch(fmt.Sprintf("infinite type: %s occurs in %s", self, other))
	}
	s[id] = other
	return nil
}

func isUnknown(t Type) bool {
	c, ok := t.(TCon)
	return ok && c.Name == Unknown.Name
}

func errUnify(t1, t2 Type) error {
	return fmt.Errorf("cannot unify %s with %s", t1, t2)
}

func errMismatch(msg string) error {
	return fmt.Errorf("type mismatch: %s", msg)
}

func errContext(ctx string, err error) error {
	return fmt.Errorf("in %s: %w", ctx, err)
}
