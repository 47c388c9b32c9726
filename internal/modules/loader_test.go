package modules

import (
	"fmt"
	"testing"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/typesystem"
)

func newTestLoader(files map[string]string) (*Loader, *[]string) {
	var parsed []string
	l := NewLoader(
		func(path string) ([]byte, error) {
			src, ok := files[path]
			if !ok {
				return nil, fmt.Errorf("no such file: %s", path)
			}
			return []byte(src), nil
		},
		func(path string, src []byte) (*ast.Program, error) {
			parsed = append(parsed, path)
			return &ast.Program{File: path}, nil
		},
	)
	l.Check = func(program *ast.Program, path string, loader *Loader) (map[string]typesystem.Type, []*diagnostics.DiagnosticError) {
		return map[string]typesystem.Type{"x": typesystem.Num}, nil
	}
	return l, &parsed
}

func TestResolveRelativeWithExtension(t *testing.T) {
	l, _ := newTestLoader(nil)
	got, err := l.Resolve("/proj/src/main.vela", "./lib")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/proj/src/lib.vela" {
		t.Errorf("expected /proj/src/lib.vela, got %s", got)
	}
}

func TestLoadReturnsExports(t *testing.T) {
	l, _ := newTestLoader(map[string]string{"/proj/lib.vela": "let x = 1"})
	entry, err := l.Load("/proj/main.vela", "./lib")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !typesystem.Equal(entry.Exports["x"], typesystem.Num) {
		t.Errorf("expected x: Number, got %v", entry.Exports["x"])
	}
	if entry.BuildID == "" {
		t.Error("expected a build id")
	}
}

func TestLoadCachesBySecondRequest(t *testing.T) {
	l, parsed := newTestLoader(map[string]string{"/proj/lib.vela": "let x = 1"})

	first, err := l.Load("/proj/main.vela", "./lib")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := l.Load("/proj/other.vela", "../proj/lib")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("expected the cached entry on the second load")
	}
	if len(*parsed) != 1 {
		t.Errorf("expected one parse, got %d", len(*parsed))
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	l, _ := newTestLoader(map[string]string{})
	if _, err := l.Load("/proj/main.vela", "./ghost"); err == nil {
		t.Fatal("expected an error for a missing module")
	}
}

func TestCycleDetection(t *testing.T) {
	files := map[string]string{
		"/proj/a.vela": "import b",
		"/proj/b.vela": "import a",
	}
	l, _ := newTestLoader(files)
	// Simulate a.vela importing b.vela importing a.vela by re-entering Load
	// from the check callback.
	l.Check = func(program *ast.Program, path string, loader *Loader) (map[string]typesystem.Type, []*diagnostics.DiagnosticError) {
		next := "./b"
		if path == "/proj/b.vela" {
			next = "./a"
		}
		if _, err := loader.Load(path, next); err != nil {
			return nil, []*diagnostics.DiagnosticError{
				diagnostics.NewError(diagnostics.ErrC008, program.GetToken(), next),
			}
		}
		return nil, nil
	}

	entry, err := l.Load("/proj/main.vela", "./a")
	if err != nil {
		t.Fatalf("the outer load must not fail: %v", err)
	}

	cycleReported := false
	for _, e := range entry.Errors {
		if e.Code == diagnostics.ErrC008 {
			cycleReported = true
		}
	}
	for _, cached := range l.Loaded {
		for _, e := range cached.Errors {
			if e.Code == diagnostics.ErrC008 {
				cycleReported = true
			}
		}
	}
	if !cycleReported {
		t.Error("expected a circular dependency diagnostic")
	}
}

func TestInvalidateDropsCache(t *testing.T) {
	l, parsed := newTestLoader(map[string]string{"/proj/lib.vela": "let x = 1"})

	if _, err := l.Load("/proj/main.vela", "./lib"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Invalidate("/proj/lib.vela")
	if _, err := l.Load("/proj/main.vela", "./lib"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*parsed) != 2 {
		t.Errorf("expected a re-parse after invalidation, got %d parses", len(*parsed))
	}
}
