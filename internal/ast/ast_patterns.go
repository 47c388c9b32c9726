package ast

import (
	"github.com/vela-lang/vela/internal/token"
)

// Pattern is a Node in match-arm position.
type Pattern interface {
	Node
	patternNode()
}

// ConstructorPattern matches one ADT variant, optionally binding its payload:
// Some(x), None, Circle(r)
type ConstructorPattern struct {
	Token token.Token
	Name  *Identifier
	Param Pattern // nil for a nullary constructor
}

func (cp *ConstructorPattern) patternNode()         {}
func (cp *ConstructorPattern) TokenLiteral() string { return cp.Token.Lexeme }
func (cp *ConstructorPattern) GetToken() token.Token {
	if cp == nil {
		return token.Token{}
	}
	return cp.Token
}

// IdentifierPattern binds the scrutinee (or a payload) to a name. It matches
// anything.
type IdentifierPattern struct {
	Token token.Token
	Name  *Identifier
}

func (ip *IdentifierPattern) patternNode()         {}
func (ip *IdentifierPattern) TokenLiteral() string { return ip.Token.Lexeme }
func (ip *IdentifierPattern) GetToken() token.Token {
	if ip == nil {
		return token.Token{}
	}
	return ip.Token
}

// WildcardPattern matches anything without binding: _
type WildcardPattern struct {
	Token token.Token
}

func (wp *WildcardPattern) patternNode()         {}
func (wp *WildcardPattern) TokenLiteral() string { return wp.Token.Lexeme }
func (wp *WildcardPattern) GetToken() token.Token {
	if wp == nil {
		return token.Token{}
	}
	return wp.Token
}

// LiteralPattern matches an exact literal value: 0, "red", true
type LiteralPattern struct {
	Token token.Token
	Value Expression
}

func (lp *LiteralPattern) patternNode()         {}
func (lp *LiteralPattern) TokenLiteral() string { return lp.Token.Lexeme }
func (lp *LiteralPattern) GetToken() token.Token {
	if lp == nil {
		return token.Token{}
	}
	return lp.Token
}
