package ast

import (
	"github.com/vela-lang/vela/internal/token"
)

// TypeExpr is a Node in type position (annotations, alias bodies,
// constructor payloads).
type TypeExpr interface {
	Node
	typeExprNode()
}

// NamedTypeExpr references a type by name, optionally applied to arguments:
// Number, Option<String>, Pair<a, b>.
type NamedTypeExpr struct {
	Token token.Token
	Name  *Identifier
	Args  []TypeExpr
}

func (nt *NamedTypeExpr) typeExprNode()        {}
func (nt *NamedTypeExpr) TokenLiteral() string { return nt.Token.Lexeme }
func (nt *NamedTypeExpr) GetToken() token.Token {
	if nt == nil {
		return token.Token{}
	}
	return nt.Token
}

// RecordTypeField is one field of a record type expression.
type RecordTypeField struct {
	Name     *Identifier
	Type     TypeExpr
	Optional bool
}

// RecordTypeExpr is a structural record type: { x: Number, label?: String }
type RecordTypeExpr struct {
	Token  token.Token // The '{' token
	Fields []*RecordTypeField
}

func (rt *RecordTypeExpr) typeExprNode()        {}
func (rt *RecordTypeExpr) TokenLiteral() string { return rt.Token.Lexeme }
func (rt *RecordTypeExpr) GetToken() token.Token {
	if rt == nil {
		return token.Token{}
	}
	return rt.Token
}

// TupleTypeExpr is a fixed-arity tuple type: (Number, String)
type TupleTypeExpr struct {
	Token    token.Token // The '(' token
	Elements []TypeExpr
}

func (tt *TupleTypeExpr) typeExprNode()        {}
func (tt *TupleTypeExpr) TokenLiteral() string { return tt.Token.Lexeme }
func (tt *TupleTypeExpr) GetToken() token.Token {
	if tt == nil {
		return token.Token{}
	}
	return tt.Token
}

// ArrayTypeExpr is a homogeneous array type: Array<Number>
type ArrayTypeExpr struct {
	Token token.Token
	Elem  TypeExpr
}

func (at *ArrayTypeExpr) typeExprNode()        {}
func (at *ArrayTypeExpr) TokenLiteral() string { return at.Token.Lexeme }
func (at *ArrayTypeExpr) GetToken() token.Token {
	if at == nil {
		return token.Token{}
	}
	return at.Token
}

// FunctionTypeExpr is a function type: (Number, Number) -> Boolean
type FunctionTypeExpr struct {
	Token  token.Token
	Params []TypeExpr
	Return TypeExpr
}

func (ft *FunctionTypeExpr) typeExprNode()        {}
func (ft *FunctionTypeExpr) TokenLiteral() string { return ft.Token.Lexeme }
func (ft *FunctionTypeExpr) GetToken() token.Token {
	if ft == nil {
		return token.Token{}
	}
	return ft.Token
}
