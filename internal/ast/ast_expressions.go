package ast

import (
	"github.com/vela-lang/vela/internal/token"
)

// Identifier represents an identifier, e.g., a variable name.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// NumberLiteral represents a numeric literal. Vela has a single Number type.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() token.Token {
	if nl == nil {
		return token.Token{}
	}
	return nl.Token
}

// IsInteger reports whether the literal denotes an integral value, which is
// what tuple index positions require.
func (nl *NumberLiteral) IsInteger() bool {
	return nl.Value == float64(int(nl.Value))
}

// StringLiteral represents a string, e.g. "hello"
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// BooleanLiteral represents boolean literals true/false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

// UnitLiteral represents the unit value ().
type UnitLiteral struct {
	Token token.Token
}

func (u *UnitLiteral) expressionNode()      {}
func (u *UnitLiteral) TokenLiteral() string { return u.Token.Lexeme }
func (u *UnitLiteral) GetToken() token.Token {
	if u == nil {
		return token.Token{}
	}
	return u.Token
}

// RecordField is one key/value entry of a record literal. Fields keep their
// source order for deterministic diagnostics.
type RecordField struct {
	Name  *Identifier
	Value Expression
}

// RecordLiteral represents a record construction, e.g. { x: 1, y: 2 }
type RecordLiteral struct {
	Token  token.Token // The '{' token
	Fields []*RecordField
}

func (rl *RecordLiteral) expressionNode()      {}
func (rl *RecordLiteral) TokenLiteral() string { return rl.Token.Lexeme }
func (rl *RecordLiteral) GetToken() token.Token {
	if rl == nil {
		return token.Token{}
	}
	return rl.Token
}

// ArrayLiteral represents a bracketed sequence, e.g. [1, 2, 3]. Whether it
// denotes an array or a tuple is decided by the checker: homogeneous
// elements classify as an array, heterogeneous ones as a tuple.
type ArrayLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token {
	if al == nil {
		return token.Token{}
	}
	return al.Token
}

// BlockExpression is a brace-delimited statement sequence whose value is the
// value of its final expression statement, or Unit if there is none.
type BlockExpression struct {
	Token      token.Token // The '{' token
	Statements []Statement
}

func (be *BlockExpression) expressionNode()      {}
func (be *BlockExpression) TokenLiteral() string { return be.Token.Lexeme }
func (be *BlockExpression) GetToken() token.Token {
	if be == nil {
		return token.Token{}
	}
	return be.Token
}

// IfExpression is the conditional expression form.
type IfExpression struct {
	Token       token.Token // The 'if' token
	Condition   Expression
	Consequence Expression
	Alternative Expression // Optional
}

func (ie *IfExpression) expressionNode()      {}
func (ie *IfExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *IfExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// Param is one parameter of a function literal.
type Param struct {
	Name *Identifier
	Type TypeExpr // Optional annotation
}

// FunctionLiteral represents an anonymous function.
// fn(x: Number) -> Number { x + 1 }
type FunctionLiteral struct {
	Token      token.Token // The 'fn' token
	Parameters []*Param
	ReturnType TypeExpr // Optional
	Body       Expression
}

func (fl *FunctionLiteral) expressionNode()      {}
func (fl *FunctionLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FunctionLiteral) GetToken() token.Token {
	if fl == nil {
		return token.Token{}
	}
	return fl.Token
}

// CallExpression represents a function or constructor call. TypeArgs are
// explicit type arguments at the call site, e.g. identity<Number>(1).
type CallExpression struct {
	Token     token.Token // The '(' token
	Function  Expression
	TypeArgs  []TypeExpr
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// MemberExpression represents field access, e.g. point.x or items.length
type MemberExpression struct {
	Token    token.Token // The '.' token
	Object   Expression
	Property *Identifier
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Lexeme }
func (me *MemberExpression) GetToken() token.Token {
	if me == nil {
		return token.Token{}
	}
	return me.Token
}

// IndexExpression represents subscript access, e.g. items[0]
type IndexExpression struct {
	Token  token.Token // The '[' token
	Object Expression
	Index  Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// PrefixExpression represents a unary operator application, e.g. !ok or -n
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token {
	if pe == nil {
		return token.Token{}
	}
	return pe.Token
}

// InfixExpression represents a binary operator application, e.g. a + b
type InfixExpression struct {
	Token    token.Token // The operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// MatchArm is one pattern -> expression arm of a match.
type MatchArm struct {
	Token      token.Token
	Pattern    Pattern
	Expression Expression
}

func (ma *MatchArm) GetToken() token.Token {
	if ma == nil {
		return token.Token{}
	}
	return ma.Token
}

// MatchExpression represents pattern matching over a scrutinee.
type MatchExpression struct {
	Token      token.Token // The 'match' token
	Expression Expression
	Arms       []*MatchArm
}

func (me *MatchExpression) expressionNode()      {}
func (me *MatchExpression) TokenLiteral() string { return me.Token.Lexeme }
func (me *MatchExpression) GetToken() token.Token {
	if me == nil {
		return token.Token{}
	}
	return me.Token
}

// Attribute is one attribute of an element expression.
type Attribute struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (a *Attribute) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// ElementExpression represents a structural element, e.g.
// <Button label="ok" disabled={flag} />
type ElementExpression struct {
	Token      token.Token // The '<' token
	TagName    *Identifier
	Attributes []*Attribute
}

func (ee *ElementExpression) expressionNode()      {}
func (ee *ElementExpression) TokenLiteral() string { return ee.Token.Lexeme }
func (ee *ElementExpression) GetToken() token.Token {
	if ee == nil {
		return token.Token{}
	}
	return ee.Token
}
