package checker

import (
	"fmt"
	"sort"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/diagnostics"
	"github.com/vela-lang/vela/internal/modules"
	"github.com/vela-lang/vela/internal/symbols"
	"github.com/vela-lang/vela/internal/typesystem"
)

// Hint is an editor-facing annotation: the resolved type of a binding,
// rendered as text. Hints never affect checking or lowering.
type Hint struct {
	Node ast.Node
	Text string
}

// Result is everything one file check produces. The TypeMap is keyed by the
// same node identities the parser handed in, so the lowering pass can look
// up the resolved type of any expression it revisits.
type Result struct {
	Errors           []*diagnostics.DiagnosticError
	Hints            []Hint
	TypeMap          map[ast.Node]typesystem.Type
	Exports          map[string]typesystem.Type
	RequiredBuiltins []string
}

// Session holds the state for checking one file. Each file gets a fresh
// session with its own substitution map, registry and counter; nothing is
// shared across files except the loader's cache.
type Session struct {
	file    string
	counter int
	subst   typesystem.Subst
	reg     *Registry
	loader  *modules.Loader
	project *config.Project

	errorSet         map[string]*diagnostics.DiagnosticError // Key: "line:col:code:message" for deduplication
	hints            []Hint
	typeMap          map[ast.Node]typesystem.Type
	requiredBuiltins map[string]bool
	globalScope      *symbols.SymbolTable
}

func newSession(file string, loader *modules.Loader, project *config.Project) *Session {
	if project == nil {
		project = &config.Project{}
	}
	prelude := symbols.NewEnclosedSymbolTable(nil, symbols.ScopePrelude)
	s := &Session{
		file:             file,
		subst:            make(typesystem.Subst),
		reg:              NewRegistry(),
		loader:           loader,
		project:          project,
		errorSet:         make(map[string]*diagnostics.DiagnosticError),
		typeMap:          make(map[ast.Node]typesystem.Type),
		requiredBuiltins: make(map[string]bool),
		globalScope:      symbols.NewEnclosedSymbolTable(prelude, symbols.ScopeGlobal),
	}
	return s
}

// Check type-checks one parsed file. A panic anywhere in the traversal is
// converted into a single reported error tagged with the file path, so one
// bad construct cannot abort checking of an entire project.
func Check(program *ast.Program, file string, loader *modules.Loader, project *config.Project) (res *Result) {
	s := newSession(file, loader, project)
	defer func() {
		if r := recover(); r != nil {
			s.addError(diagnostics.NewError(diagnostics.ErrC009, program.GetToken(), file, r))
			res = s.result()
		}
	}()

	s.registerBuiltins()
	s.checkProgram(program)
	return s.result()
}

// CheckFn adapts Check to the loader's callback shape so imported files are
// checked with their own fresh session.
func CheckFn(project *config.Project) modules.CheckFunc {
	return func(program *ast.Program, path string, loader *modules.Loader) (map[string]typesystem.Type, []*diagnostics.DiagnosticError) {
		res := Check(program, path, loader, project)
		return res.Exports, res.Errors
	}
}

// FreshVar generates a fresh type variable. Ids are never reused within one
// file check; the display name follows the id.
func (s *Session) FreshVar() typesystem.TVar {
	s.counter++
	return typesystem.TVar{ID: s.counter, Name: fmt.Sprintf("t%d", s.counter)}
}

// freshID allocates an id for a zero-argument generic placeholder. These
// share the id space with type variables so both bind in the same map.
func (s *Session) freshID() int {
	s.counter++
	return s.counter
}

// addError records an error, deduplicating by position, code and message so
// one bad expression visited twice reports once while distinct problems at
// the same token all survive.
func (s *Session) addError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = s.file
	}
	key := fmt.Sprintf("%d:%d:%s:%s", err.Token.Line, err.Token.Column, err.Code, err.Message)
	s.errorSet[key] = err
}

func (s *Session) errorf(code diagnostics.ErrorCode, node ast.Node, args ...interface{}) {
	s.addError(diagnostics.NewError(code, node.GetToken(), args...))
}

func (s *Session) addHint(node ast.Node, t typesystem.Type) {
	s.hints = append(s.hints, Hint{Node: node, Text: t.String()})
}

func (s *Session) requireBuiltin(name string) {
	s.requiredBuiltins[name] = true
}

// errors returns all unique errors sorted by position for deterministic
// output.
func (s *Session) errors() []*diagnostics.DiagnosticError {
	result := make([]*diagnostics.DiagnosticError, 0, len(s.errorSet))
	for _, err := range s.errorSet {
		result = append(result, err)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Token.Line != b.Token.Line {
			return a.Token.Line < b.Token.Line
		}
		if a.Token.Column != b.Token.Column {
			return a.Token.Column < b.Token.Column
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Message < b.Message
	})
	return result
}

func (s *Session) result() *Result {
	exports := make(map[string]typesystem.Type)
	for name, sym := range s.globalScope.All() {
		if sym.Type != nil {
			exports[name] = sym.Type.Apply(s.subst)
		}
	}

	builtins := make([]string, 0, len(s.requiredBuiltins))
	for name := range s.requiredBuiltins {
		builtins = append(builtins, name)
	}
	sort.Strings(builtins)

	return &Result{
		Errors:           s.errors(),
		Hints:            s.hints,
		TypeMap:          s.typeMap,
		Exports:          exports,
		RequiredBuiltins: builtins,
	}
}

// unifyAt unifies expected against provided in the given map, reporting a
// type error at node on failure. Returns the unified type, or Unknown after
// an error so checking continues.
func (s *Session) unifyAt(node ast.Node, expected, provided typesystem.Type, subst typesystem.Subst) typesystem.Type {
	u, err := typesystem.Unify(expected, provided, subst, s.reg)
	if err != nil {
		s.errorf(diagnostics.ErrC003, node, err)
		return typesystem.Unknown
	}
	return u
}

// optionOf wraps a type in the built-in Option and records that the lowering
// pass must emit Option support.
func (s *Session) optionOf(t typesystem.Type) typesystem.Type {
	s.requireBuiltin(config.OptionTypeName)
	return typesystem.TAdt{Name: config.OptionTypeName, Params: []typesystem.Type{t}}
}
