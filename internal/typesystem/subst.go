package typesystem

// Subst is a mapping from type-variable identity to types. Zero-argument
// TGeneric placeholders share the same id space as TVar and bind here too.
//
// One top-level Subst lives for a whole file check; speculative work (tuple
// vs array classification, call-site argument binding) happens in short
// lived local maps that are merged back only on success.
type Subst map[int]Type

// Clone returns a shallow copy, used to create local speculation maps.
func (s Subst) Clone() Subst {
	out := make(Subst, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// MergeInto copies every binding of s into dst. Called when a speculative
// local map succeeded and its refinements should become visible outside.
func (s Subst) MergeInto(dst Subst) {
	for k, v := range s {
		dst[k] = v
	}
}

// ApplyWithCycleCheck resolves t through the substitution map. A variable id
// already present in visited is returned unchanged rather than recursed into,
// so a cyclic map can never hang the checker. Composite types are rebuilt
// only when a child actually changed.
func ApplyWithCycleCheck(t Type, s Subst, visited map[int]bool) Type {
	out, _ := applyWC(t, s, visited)
	return out
}

func applyWC(t Type, s Subst, visited map[int]bool) (Type, bool) {
	if t == nil {
		return nil, false
	}

	switch t := t.(type) {
	case TCon:
		return t, false

	case TVar:
		return resolveID(t, t.ID, s, visited)

	case TGeneric:
		if len(t.Args) == 0 {
			return resolveID(t, t.ID, s, visited)
		}
		newArgs, changed := applyList(t.Args, s, visited)
		if !changed {
			return t, false
		}
		return TGeneric{ID: t.ID, Name: t.Name, Args: newArgs}, true

	case TFunc:
		newParams, pChanged := applyList(t.Params, s, visited)
		newRet, rChanged := applyWC(t.Return, s, visited)
		if !pChanged && !rChanged {
			return t, false
		}
		return TFunc{Params: newParams, Return: newRet, CtorName: t.CtorName}, true

	case TArray:
		newElem, changed := applyWC(t.Elem, s, visited)
		if !changed {
			return t, false
		}
		return TArray{Elem: newElem}, true

	case TTuple:
		newElems, changed := applyList(t.Elements, s, visited)
		if !changed {
			return t, false
		}
		return TTuple{Elements: newElems}, true

	case TRecord:
		changed := false
		newFields := make(map[string]Field, len(t.Fields))
		for k, f := range t.Fields {
			nt, c := applyWC(f.Type, s, visited)
			newFields[k] = Field{Type: nt, Optional: f.Optional}
			changed = changed || c
		}
		if !changed {
			return t, false
		}
		return TRecord{Fields: newFields}, true

	case TAdt:
		newParams, changed := applyList(t.Params, s, visited)
		if !changed {
			return t, false
		}
		return TAdt{Name: t.Name, Params: newParams}, true

	case TElement:
		newAttrs, changed := applyWC(t.Attrs, s, visited)
		if !changed {
			return t, false
		}
		return TElement{Name: t.Name, Attrs: newAttrs.(TRecord)}, true

	default:
		return t, false
	}
}

// resolveID chases one or more indirections for a bindable id, guarding
// against cycles with the visited set.
func resolveID(original Type, id int, s Subst, visited map[int]bool) (Type, bool) {
	if visited[id] {
		return original, false
	}
	replacement, ok := s[id]
	if !ok {
		return original, false
	}
	// A direct self-binding would be an occurs-check bug elsewhere; refuse
	// to loop on it.
	if tv, ok := replacement.(TVar); ok && tv.ID == id {
		return original, false
	}
	visited[id] = true
	resolved, _ := applyWC(replacement, s, visited)
	delete(visited, id)
	return resolved, true
}

func applyList(ts []Type, s Subst, visited map[int]bool) ([]Type, bool) {
	changed := false
	out := make([]Type, len(ts))
	for i, t := range ts {
		nt, c := applyWC(t, s, visited)
		out[i] = nt
		changed = changed || c
	}
	if !changed {
		return ts, false
	}
	return out, true
}

// OccursCheck returns true if the bindable id appears free inside t. It
// recurses into function params/return, array elements, tuple elements,
// record field types, element attributes and generic arguments. An ADT's own
// type parameters are not considered to contain a variable used only in its
// constructors; constructor types are checked independently when called.
func OccursCheck(id int, t Type) bool {
	switch t := t.(type) {
	case TCon:
		return false
	case TVar:
		return t.ID == id
	case TFunc:
		for _, p := range t.Params {
			if OccursCheck(id, p) {
				return true
			}
		}
		return OccursCheck(id, t.Return)
	case TArray:
		return OccursCheck(id, t.Elem)
	case TTuple:
		for _, e := range t.Elements {
			if OccursCheck(id, e) {
				return true
			}
		}
		return false
	case TRecord:
		for _, f := range t.Fields {
			if OccursCheck(id, f.Type) {
				return true
			}
		}
		return false
	case TAdt:
		return false
	case TGeneric:
		if len(t.Args) == 0 && t.ID == id {
			return true
		}
		for _, a := range t.Args {
			if OccursCheck(id, a) {
				return true
			}
		}
		return false
	case TElement:
		return OccursCheck(id, t.Attrs)
	default:
		return false
	}
}
