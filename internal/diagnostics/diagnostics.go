package diagnostics

import (
	"fmt"

	"github.com/vela-lang/vela/internal/token"
)

// ErrorCode is a short stable identifier for a class of checker errors.
// The message text, not the code, is the contract consumers match on;
// codes exist for deduplication and editor grouping.
type ErrorCode string

const (
	ErrC001 ErrorCode = "C001" // undefined symbol
	ErrC002 ErrorCode = "C002" // undeclared type
	ErrC003 ErrorCode = "C003" // type error (unification failure and friends)
	ErrC004 ErrorCode = "C004" // redefinition of symbol
	ErrC005 ErrorCode = "C005" // match not exhaustive
	ErrC006 ErrorCode = "C006" // unreachable match arm
	ErrC007 ErrorCode = "C007" // element attribute error
	ErrC008 ErrorCode = "C008" // circular module dependency
	ErrC009 ErrorCode = "C009" // internal checker error
)

var templates = map[ErrorCode]string{
	ErrC001: "undefined symbol: %s",
	ErrC002: "undeclared type: %s",
	ErrC003: "type error: %s",
	ErrC004: "redefinition of %s",
	ErrC005: "match is not exhaustive: %s",
	ErrC006: "unreachable match arm: %s",
	ErrC007: "element attribute error: %s",
	ErrC008: "circular dependency detected loading module: %s",
	ErrC009: "internal error while checking %s: %v",
}

// DiagnosticError is a single reported problem, carrying the token whose
// span the editor integration uses to place the squiggle.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

// NewError builds a DiagnosticError from the code's message template.
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	tmpl, ok := templates[code]
	if !ok {
		tmpl = "%v"
	}
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Message: fmt.Sprintf(tmpl, args...),
	}
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("[checker] error [%s]: %s", e.Code, e.Message)
}
