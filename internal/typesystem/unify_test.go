package typesystem

import (
	"strings"
	"testing"
	"time"
)

func expectUnifies(t *testing.T, a, b Type) Type {
	t.Helper()
	u, err := Unify(a, b, make(Subst), nil)
	if err != nil {
		t.Fatalf("expected %s to unify with %s, got error: %v", a, b, err)
	}
	return u
}

func expectUnifyError(t *testing.T, a, b Type, substr string) {
	t.Helper()
	_, err := Unify(a, b, make(Subst), nil)
	if err == nil {
		t.Fatalf("expected %s vs %s to fail, but it unified", a, b)
	}
	if substr != "" && !strings.Contains(err.Error(), substr) {
		t.Errorf("expected error to contain %q, got: %v", substr, err)
	}
}

// ---------------------------------------------------------------------------
// Primitives and Unknown
// ---------------------------------------------------------------------------

func TestUnifyIdenticalPrimitives(t *testing.T) {
	u := expectUnifies(t, Num, Num)
	if !Equal(u, Num) {
		t.Errorf("expected Number, got %s", u)
	}
}

func TestUnifyDistinctPrimitivesFails(t *testing.T) {
	expectUnifyError(t, Num, Str, "cannot unify")
}

func TestUnknownAbsorbsEitherSide(t *testing.T) {
	if u := expectUnifies(t, Unknown, Str); !Equal(u, Str) {
		t.Errorf("expected String, got %s", u)
	}
	if u := expectUnifies(t, Str, Unknown); !Equal(u, Str) {
		t.Errorf("expected String, got %s", u)
	}
}

// ---------------------------------------------------------------------------
// Symmetry: for concrete types, unify(A,B) succeeds iff unify(B,A) does,
// and both directions agree structurally.
// ---------------------------------------------------------------------------

func TestUnifySymmetryForConcreteTypes(t *testing.T) {
	pairs := [][2]Type{
		{Num, Num},
		{Num, Str},
		{TArray{Elem: Num}, TArray{Elem: Num}},
		{TArray{Elem: Num}, TArray{Elem: Str}},
		{TTuple{Elements: []Type{Num, Str}}, TTuple{Elements: []Type{Num, Str}}},
		{TTuple{Elements: []Type{Num}}, TTuple{Elements: []Type{Num, Str}}},
		{
			TFunc{Params: []Type{Num}, Return: Bool},
			TFunc{Params: []Type{Num}, Return: Bool},
		},
		{
			TAdt{Name: "Option", Params: []Type{Num}},
			TAdt{Name: "Option", Params: []Type{Num}},
		},
		{
			TAdt{Name: "Option", Params: []Type{Num}},
			TAdt{Name: "Result", Params: []Type{Num}},
		},
		{
			TRecord{Fields: map[string]Field{"x": {Type: Num}}},
			TRecord{Fields: map[string]Field{"x": {Type: Num}}},
		},
	}

	for _, pair := range pairs {
		ab, errAB := Unify(pair[0], pair[1], make(Subst), nil)
		ba, errBA := Unify(pair[1], pair[0], make(Subst), nil)
		if (errAB == nil) != (errBA == nil) {
			t.Errorf("symmetry broken for %s vs %s: %v / %v", pair[0], pair[1], errAB, errBA)
			continue
		}
		if errAB == nil && !Equal(ab, ba) {
			t.Errorf("results differ for %s vs %s: %s / %s", pair[0], pair[1], ab, ba)
		}
	}
}

// ---------------------------------------------------------------------------
// Variables, binding and the occurs check
// ---------------------------------------------------------------------------

func TestUnifyBindsVariable(t *testing.T) {
	s := make(Subst)
	v := TVar{ID: 1, Name: "t1"}
	u, err := Unify(v, Num, s, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(u, Num) {
		t.Errorf("expected Number, got %s", u)
	}
	if !Equal(s[1], Num) {
		t.Errorf("expected binding t1 -> Number, got %v", s[1])
	}
}

func TestUnifyTwoVariablesBindsLeft(t *testing.T) {
	s := make(Subst)
	a := TVar{ID: 1, Name: "t1"}
	b := TVar{ID: 2, Name: "t2"}
	if _, err := Unify(a, b, s, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, leftBound := s[1]; !leftBound {
		t.Error("expected the left operand to be bound")
	}
	if _, rightBound := s[2]; rightBound {
		t.Error("right operand must stay free")
	}
}

func TestUnifySameVariableIsTrivial(t *testing.T) {
	s := make(Subst)
	v := TVar{ID: 7, Name: "t7"}
	if _, err := Unify(v, v, s, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 0 {
		t.Errorf("expected no bindings, got %v", s)
	}
}

func TestOccursCheckRejectsInfiniteType(t *testing.T) {
	v := TVar{ID: 1, Name: "t1"}
	expectUnifyError(t, v, TArray{Elem: v}, "infinite type")
	expectUnifyError(t, v, TFunc{Params: []Type{v}, Return: Num}, "infinite type")
}

func TestZeroArgGenericBindsLikeVariable(t *testing.T) {
	s := make(Subst)
	g := TGeneric{ID: 3, Name: "a"}
	u, err := Unify(g, Num, s, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(u, Num) {
		t.Errorf("expected Number, got %s", u)
	}
	if !Equal(s[3], Num) {
		t.Errorf("expected binding 3 -> Number, got %v", s[3])
	}
}

func TestPlaceholdersCompareByIdentity(t *testing.T) {
	a1 := TGeneric{ID: 1, Name: "a"}
	a2 := TGeneric{ID: 2, Name: "a"}
	if Equal(a1, a2) {
		t.Error("distinct placeholders sharing a display name must not be equal")
	}
	if !Equal(a1, a1) {
		t.Error("a placeholder must equal itself")
	}
	p1 := TGeneric{ID: 3, Name: "Pair", Args: []Type{Num, Str}}
	p2 := TGeneric{ID: 4, Name: "Pair", Args: []Type{Num, Str}}
	if !Equal(p1, p2) {
		t.Error("instantiated generics compare by name and arguments")
	}

	s := make(Subst)
	if _, err := Unify(a1, a2, s, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) == 0 {
		t.Error("unifying two distinct placeholders must bind one to the other")
	}
}

// ---------------------------------------------------------------------------
// Composite shapes
// ---------------------------------------------------------------------------

func TestUnifyArrayElementwise(t *testing.T) {
	s := make(Subst)
	v := TVar{ID: 1, Name: "t1"}
	u, err := Unify(TArray{Elem: v}, TArray{Elem: Str}, s, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(u, TArray{Elem: Str}) {
		t.Errorf("expected Array<String>, got %s", u)
	}
}

func TestUnifyTupleLengthMismatch(t *testing.T) {
	a := TTuple{Elements: []Type{Num, Str}}
	b := TTuple{Elements: []Type{Num}}
	expectUnifyError(t, a, b, "tuple length mismatch")
}

func TestUnifyFunctionArityMismatch(t *testing.T) {
	a := TFunc{Params: []Type{Num}, Return: Num}
	b := TFunc{Params: []Type{Num, Num}, Return: Num}
	expectUnifyError(t, a, b, "parameter count mismatch")
}

func TestUnifyAdtArityMismatchFails(t *testing.T) {
	a := TAdt{Name: "Pair", Params: []Type{Num, Num}}
	b := TAdt{Name: "Pair", Params: []Type{Num}}
	expectUnifyError(t, a, b, "")
}

func TestUnifyGenericSameBasePairwise(t *testing.T) {
	s := make(Subst)
	v := TVar{ID: 1, Name: "t1"}
	a := TGeneric{ID: 10, Name: "Box", Args: []Type{v}}
	b := TGeneric{ID: 11, Name: "Box", Args: []Type{Num}}
	if _, err := Unify(a, b, s, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(s[1], Num) {
		t.Errorf("expected t1 -> Number, got %v", s[1])
	}
}

func TestUnifyGenericDifferentBaseFails(t *testing.T) {
	a := TGeneric{ID: 10, Name: "Box", Args: []Type{Num}}
	b := TGeneric{ID: 11, Name: "Crate", Args: []Type{Num}}
	expectUnifyError(t, a, b, "cannot unify")
}

// ---------------------------------------------------------------------------
// Record covariance
// ---------------------------------------------------------------------------

func TestRecordExtraOptionalFieldOnExpectedSide(t *testing.T) {
	expected := TRecord{Fields: map[string]Field{
		"x":     {Type: Num},
		"label": {Type: Str, Optional: true},
	}}
	provided := TRecord{Fields: map[string]Field{
		"x": {Type: Num},
	}}
	expectUnifies(t, expected, provided)
}

func TestRecordMissingRequiredFieldFails(t *testing.T) {
	expected := TRecord{Fields: map[string]Field{
		"x": {Type: Num},
		"y": {Type: Num},
	}}
	provided := TRecord{Fields: map[string]Field{
		"x": {Type: Num},
	}}
	expectUnifyError(t, expected, provided, "missing required field 'y'")
}

func TestRecordRequiredSatisfiesOptionalNotReverse(t *testing.T) {
	optional := TRecord{Fields: map[string]Field{
		"x": {Type: Num, Optional: true},
	}}
	required := TRecord{Fields: map[string]Field{
		"x": {Type: Num},
	}}
	// Provided required satisfies expected optional.
	expectUnifies(t, optional, required)
	// Provided optional cannot satisfy expected required.
	expectUnifyError(t, required, optional, "only optionally provided")
}

func TestRecordUnexpectedRequiredFieldFails(t *testing.T) {
	expected := TRecord{Fields: map[string]Field{
		"x": {Type: Num},
	}}
	provided := TRecord{Fields: map[string]Field{
		"x": {Type: Num},
		"y": {Type: Str},
	}}
	expectUnifyError(t, expected, provided, "unexpected field 'y'")
}

// ---------------------------------------------------------------------------
// Elements
// ---------------------------------------------------------------------------

func TestUnifyElementsByNameAndAttrs(t *testing.T) {
	a := TElement{Name: "Button", Attrs: TRecord{Fields: map[string]Field{"label": {Type: Str}}}}
	b := TElement{Name: "Button", Attrs: TRecord{Fields: map[string]Field{"label": {Type: Str}}}}
	expectUnifies(t, a, b)

	c := TElement{Name: "Input", Attrs: TRecord{Fields: map[string]Field{"label": {Type: Str}}}}
	expectUnifyError(t, a, c, "cannot unify")
}

// ---------------------------------------------------------------------------
// Alias expansion through a resolver
// ---------------------------------------------------------------------------

// tableResolver expands generics by name from a fixed table.
type tableResolver struct {
	defs map[string]Type
}

func (r *tableResolver) ExpandAliasOnce(t Type, s Subst) (Type, bool) {
	g, ok := t.(TGeneric)
	if !ok {
		return t, false
	}
	body, ok := r.defs[g.Name]
	if !ok {
		return t, false
	}
	return body, true
}

func TestUnifyExpandsAliasToUnderlyingType(t *testing.T) {
	r := &tableResolver{defs: map[string]Type{
		"Id": TRecord{Fields: map[string]Field{"value": {Type: Num}}},
	}}
	alias := TGeneric{ID: 1, Name: "Id", Args: []Type{Num}}
	rec := TRecord{Fields: map[string]Field{"value": {Type: Num}}}

	if _, err := Unify(alias, rec, make(Subst), r); err != nil {
		t.Fatalf("expected alias to expand and unify, got: %v", err)
	}
}

func TestSelfReferentialAliasTerminates(t *testing.T) {
	// Loop = Loop: expansion makes no progress, the depth guard must fall
	// back to the un-expanded operands instead of hanging.
	r := &tableResolver{defs: map[string]Type{
		"Loop": TGeneric{ID: 99, Name: "Loop", Args: []Type{Num}},
	}}
	alias := TGeneric{ID: 1, Name: "Loop", Args: []Type{Num}}

	done := make(chan struct{})
	go func() {
		Unify(alias, Str, make(Subst), r)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("unification of a self-referential alias did not terminate")
	}
}
