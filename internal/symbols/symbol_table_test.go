package symbols

import (
	"sort"
	"testing"

	"github.com/vela-lang/vela/internal/typesystem"
)

func TestFindWalksScopeChain(t *testing.T) {
	global := NewSymbolTable()
	global.Define("x", typesystem.Num, "main.vela")
	inner := NewEnclosedSymbolTable(global, ScopeBlock)

	sym, ok := inner.Find("x")
	if !ok || !typesystem.Equal(sym.Type, typesystem.Num) {
		t.Fatalf("expected x: Number from the outer scope, got %v", sym)
	}
	if inner.IsDefinedLocally("x") {
		t.Error("IsDefinedLocally must not look at outer scopes")
	}
}

func TestDefineGeneralizedMarksSymbol(t *testing.T) {
	table := NewSymbolTable()
	table.Define("param", typesystem.TVar{ID: 1, Name: "t1"}, "main.vela")
	table.DefineGeneralized("id", typesystem.TFunc{
		Params: []typesystem.Type{typesystem.TVar{ID: 2, Name: "t2"}},
		Return: typesystem.TVar{ID: 2, Name: "t2"},
	}, "main.vela")

	if sym, _ := table.Find("param"); sym.Generalized {
		t.Error("a plain definition must stay monomorphic")
	}
	if sym, _ := table.Find("id"); !sym.Generalized {
		t.Error("a generalized definition must carry the flag")
	}
}

func TestGetAllNamesSpansScopes(t *testing.T) {
	global := NewSymbolTable()
	global.Define("a", typesystem.Num, "main.vela")
	global.Define("b", typesystem.Str, "main.vela")
	inner := NewEnclosedSymbolTable(global, ScopeFunction)
	inner.Define("b", typesystem.Num, "main.vela") // shadows
	inner.Define("c", typesystem.Bool, "main.vela")

	names := inner.GetAllNames()
	sort.Strings(names)
	want := []string{"a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestOuterReturnsEnclosingScope(t *testing.T) {
	global := NewSymbolTable()
	inner := NewEnclosedSymbolTable(global, ScopeBlock)
	if inner.Outer() != global {
		t.Error("expected the enclosing table")
	}
	if global.Outer() != nil {
		t.Error("the root table has no enclosing scope")
	}
	if !global.IsGlobalScope() || inner.IsGlobalScope() {
		t.Error("scope kinds must follow construction")
	}
}
