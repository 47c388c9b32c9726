package ast

import (
	"github.com/vela-lang/vela/internal/token"
)

// Node is the base interface for all AST nodes. Every node reports the token
// that anchors its source span; diagnostics are placed there.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every tree the parser produces for one file.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if p == nil || len(p.Statements) == 0 {
		return token.Token{}
	}
	return p.Statements[0].GetToken()
}

// LetStatement represents a top-level or block-local binding.
// let x = expr or let x: Type = expr
type LetStatement struct {
	Token          token.Token // The 'let' token
	Name           *Identifier
	TypeAnnotation TypeExpr // Optional
	Value          Expression
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token {
	if ls == nil {
		return token.Token{}
	}
	return ls.Token
}

// ConstructorDef is one variant of an ADT declaration. Payload is nil for a
// nullary constructor; constructors take at most one argument.
type ConstructorDef struct {
	Token   token.Token
	Name    *Identifier
	Payload TypeExpr
}

func (cd *ConstructorDef) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}

// TypeDeclaration declares either a parametric alias (Alias set) or an ADT
// (Constructors set). The two are mutually exclusive.
// type Pair<a> = (a, a)
// type Shape = Circle(Number) | Square(Number) | Dot
type TypeDeclaration struct {
	Token        token.Token // The 'type' token
	Name         *Identifier
	Params       []*Identifier
	Alias        TypeExpr
	Constructors []*ConstructorDef
}

func (td *TypeDeclaration) statementNode()       {}
func (td *TypeDeclaration) TokenLiteral() string { return td.Token.Lexeme }
func (td *TypeDeclaration) GetToken() token.Token {
	if td == nil {
		return token.Token{}
	}
	return td.Token
}

// ComponentDeclaration declares an element type: a renderable tag together
// with the record of attributes it accepts.
// component Button { label: String, disabled?: Boolean }
type ComponentDeclaration struct {
	Token token.Token // The 'component' token
	Name  *Identifier
	Attrs *RecordTypeExpr
}

func (cd *ComponentDeclaration) statementNode()       {}
func (cd *ComponentDeclaration) TokenLiteral() string { return cd.Token.Lexeme }
func (cd *ComponentDeclaration) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}

// ImportStatement represents an import of another file's exports.
// import "./shapes" (Circle, area)
type ImportStatement struct {
	Token   token.Token // The 'import' token
	Path    *StringLiteral
	Symbols []*Identifier // Specific symbols to import; empty imports all
}

func (is *ImportStatement) statementNode()       {}
func (is *ImportStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *ImportStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// ExpressionStatement wraps an expression in statement position.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}
