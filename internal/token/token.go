package token

// Type identifies the lexical class of a token.
type Type int

const (
	ILLEGAL Type = iota
	EOF

	IDENT_LOWER // identifiers starting with a lowercase letter
	IDENT_UPPER // type and constructor names
	NUMBER
	STRING
	TRUE
	FALSE

	LET
	TYPE
	COMPONENT
	IMPORT
	MATCH
	IF
	ELSE
	FN

	ASSIGN
	ARROW
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	LANGLE
	RANGLE
	COMMA
	COLON
	DOT
	QUESTION
	PIPE
	UNDERSCORE

	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	BANG
	EQ
	NOT_EQ
	LT
	GT
	LT_EQ
	GT_EQ
	AND
	OR
)

// Token is the smallest unit the parser hands to the checker. The checker
// only ever reads Lexeme/Line/Column for diagnostics.
type Token struct {
	Type   Type
	Lexeme string
	Line   int
	Column int
}
