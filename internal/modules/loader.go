package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/typesystem"
)

// ReadFileFunc reads a source file. Injected so editor hosts can serve
// unsaved buffer contents instead of disk state.
type ReadFileFunc func(path string) ([]byte, error)

// ParseFunc parses one source file into a program.
type ParseFunc func(path string, src []byte) (*ast.Program, error)

// CheckFunc type-checks a parsed program and returns its exported bindings
// together with any diagnostics. The checker installs itself here; keeping it
// a callback avoids an import cycle between the loader and the checker.
type CheckFunc func(program *ast.Program, path string, loader *Loader) (map[string]typesystem.Type, []*diagnostics.DiagnosticError)

// CacheEntry is the result of loading and checking one module.
type CacheEntry struct {
	Path    string
	BuildID string // Unique per check run, lets hosts detect stale results
	Exports map[string]typesystem.Type
	Errors  []*diagnostics.DiagnosticError
}

// Loader resolves import paths, runs the checker over imported files and
// caches the resulting export tables.
type Loader struct {
	ReadFile ReadFileFunc
	Parse    ParseFunc
	Check    CheckFunc

	Loaded     map[string]*CacheEntry // Cache of checked modules by absolute path
	Processing map[string]bool        // Cycle detection during loading
}

func NewLoader(readFile ReadFileFunc, parse ParseFunc) *Loader {
	l := &Loader{
		ReadFile:   readFile,
		Parse:      parse,
		Loaded:     make(map[string]*CacheEntry),
		Processing: make(map[string]bool),
	}
	if l.ReadFile == nil {
		l.ReadFile = os.ReadFile
	}
	return l
}

// Resolve turns an import path as written in source into an absolute file
// path. Relative imports resolve against the importing file's directory; the
// source extension is appended when missing.
func (l *Loader) Resolve(fromFile, importPath string) (string, error) {
	p := importPath
	if !strings.HasSuffix(p, config.SourceFileExt) {
		p += config.SourceFileExt
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(filepath.Dir(fromFile), p)
	}
	return filepath.Abs(p)
}

// Load reads, parses and checks the module at importPath (relative to
// fromFile) and returns its cached entry. Re-loading a path that is still
// being processed is a dependency cycle.
func (l *Loader) Load(fromFile, importPath string) (*CacheEntry, error) {
	absPath, err := l.Resolve(fromFile, importPath)
	if err != nil {
		return nil, err
	}

	if entry, ok := l.Loaded[absPath]; ok {
		return entry, nil
	}

	// Check cycle
	if l.Processing[absPath] {
		return nil, fmt.Errorf("circular dependency detected loading module: %s", absPath)
	}
	l.Processing[absPath] = true
	defer func() { delete(l.Processing, absPath) }()

	src, err := l.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load module %s: %w", importPath, err)
	}

	program, err := l.Parse(absPath, src)
	if err != nil {
		return nil, fmt.Errorf("cannot parse module %s: %w", importPath, err)
	}

	entry := &CacheEntry{
		Path:    absPath,
		BuildID: uuid.NewString(),
		Exports: make(map[string]typesystem.Type),
	}
	if l.Check != nil {
		entry.Exports, entry.Errors = l.Check(program, absPath, l)
	}

	l.Loaded[absPath] = entry
	return entry, nil
}

// Invalidate drops the cached entry for a path. Editor hosts call this when
// a buffer changes so the next Load re-checks the file.
func (l *Loader) Invalidate(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return
	}
	delete(l.Loaded, absPath)
}
