package checker

import (
	"sort"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/typesystem"
)

type discriminantKind int

const (
	discOther discriminantKind = iota
	discAdt
	discString
	discNumber
	discBoolean
)

// coverage tracks what a match's arms have covered so far. ADT scrutinees
// track their variant set; booleans track the two literals; strings,
// numbers and everything else are unbounded domains where only a catch-all
// arm can close the match.
type coverage struct {
	kind    discriminantKind
	adtName string

	variants   map[string]bool // every constructor of the scrutinee's ADT
	remaining  map[string]bool // variants not yet fully covered
	partial    map[string]bool // variants touched only by literal payloads
	signatures map[string]bool // canonical pattern signatures already seen

	wildcardSeen bool
	trueCovered  bool
	falseCovered bool
}

// newCoverage classifies the fully substituted scrutinee type and, for an
// ADT, seeds the remaining set with every constructor belonging to it.
func (s *Session) newCoverage(scrutinee typesystem.Type) *coverage {
	c := &coverage{
		variants:   make(map[string]bool),
		remaining:  make(map[string]bool),
		partial:    make(map[string]bool),
		signatures: make(map[string]bool),
	}

	switch t := scrutinee.(type) {
	case typesystem.TAdt:
		c.kind = discAdt
		c.adtName = t.Name
		if def, ok := s.reg.Adt(t.Name); ok {
			for _, v := range def.Variants {
				c.variants[v.Name] = true
				c.remaining[v.Name] = true
			}
		}
	case typesystem.TCon:
		switch t.Name {
		case config.StringTypeName:
			c.kind = discString
		case config.NumberTypeName:
			c.kind = discNumber
		case config.BooleanTypeName:
			c.kind = discBoolean
		}
	}
	return c
}

// recordArm applies one arm's pattern to the coverage state and reports
// whether the arm is reachable. An arm is unreachable if its signature was
// already processed, if an earlier wildcard or variable arm covers
// everything, or if its target variant is already fully covered.
func (c *coverage) recordArm(p ast.Pattern) bool {
	sig := patternSignature(p)

	if c.signatures[sig] {
		return false
	}
	if c.wildcardSeen {
		return false
	}

	reachable := true
	switch pat := p.(type) {
	case *ast.WildcardPattern, *ast.IdentifierPattern:
		c.signatures[sig] = true
		c.wildcardSeen = true

	case *ast.ConstructorPattern:
		if c.kind == discAdt && c.variants[pat.Name.Value] && !c.remaining[pat.Name.Value] {
			reachable = false
		}
		c.signatures[sig] = true
		if reachable {
			if coversVariantFully(pat) {
				delete(c.remaining, pat.Name.Value)
				delete(c.partial, pat.Name.Value)
			} else if c.remaining[pat.Name.Value] {
				c.partial[pat.Name.Value] = true
			}
		}

	case *ast.LiteralPattern:
		c.signatures[sig] = true
		if c.kind == discBoolean {
			if b, ok := pat.Value.(*ast.BooleanLiteral); ok {
				if b.Value {
					if c.trueCovered {
						reachable = false
					}
					c.trueCovered = true
				} else {
					if c.falseCovered {
						reachable = false
					}
					c.falseCovered = true
				}
			}
		}
	}
	return reachable
}

// coversVariantFully reports whether a constructor pattern covers every
// value of its variant: bare constructors and binding/wildcard payloads do,
// a literal payload only covers the values equal to the literal.
func coversVariantFully(p *ast.ConstructorPattern) bool {
	if p.Param == nil {
		return true
	}
	switch p.Param.(type) {
	case *ast.IdentifierPattern, *ast.WildcardPattern:
		return true
	}
	return false
}

func (c *coverage) exhaustive() bool {
	if c.wildcardSeen {
		return true
	}
	switch c.kind {
	case discAdt:
		return len(c.remaining) == 0
	case discBoolean:
		return c.trueCovered && c.falseCovered
	default:
		// Strings, numbers and structural types are unbounded; only a
		// catch-all closes them.
		return false
	}
}

// missing names the uncovered cases for the non-exhaustive diagnostic.
func (c *coverage) missing() []string {
	switch c.kind {
	case discAdt:
		names := make([]string, 0, len(c.remaining))
		for name := range c.remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	case discBoolean:
		var names []string
		if !c.trueCovered {
			names = append(names, "true")
		}
		if !c.falseCovered {
			names = append(names, "false")
		}
		return names
	default:
		return []string{"_"}
	}
}

// patternSignature computes the canonical form used for duplicate-arm
// detection, e.g. "Some(param)", "Some(_)", "Some(1)", "_", "var", "42".
func patternSignature(p ast.Pattern) string {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return "_"
	case *ast.IdentifierPattern:
		return "var"
	case *ast.LiteralPattern:
		return pat.Value.TokenLiteral()
	case *ast.ConstructorPattern:
		if pat.Param == nil {
			return pat.Name.Value
		}
		switch sub := pat.Param.(type) {
		case *ast.IdentifierPattern:
			return pat.Name.Value + "(param)"
		case *ast.WildcardPattern:
			return pat.Name.Value + "(_)"
		default:
			return pat.Name.Value + "(" + patternSignature(sub) + ")"
		}
	default:
		return "?"
	}
}
