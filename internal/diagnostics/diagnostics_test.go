package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vela-lang/vela/internal/token"
)

func TestNewErrorFormatsTemplate(t *testing.T) {
	tok := token.Token{Lexeme: "foo", Line: 3, Column: 7}
	e := NewError(ErrC001, tok, "foo")

	if e.Message != "undefined symbol: foo" {
		t.Errorf("unexpected message: %q", e.Message)
	}
	if e.Error() != "[checker] error [C001]: undefined symbol: foo" {
		t.Errorf("unexpected Error(): %q", e.Error())
	}
	if e.Token.Line != 3 || e.Token.Column != 7 {
		t.Error("token position must be preserved for span lookup")
	}
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	e := NewError(ErrorCode("C999"), token.Token{}, "boom")
	if e.Message != "boom" {
		t.Errorf("expected raw argument passthrough, got %q", e.Message)
	}
}

func TestRenderPlainWriterHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	errs := []*DiagnosticError{
		NewError(ErrC005, token.Token{Line: 2, Column: 4}, "missing cases: None"),
	}
	errs[0].File = "main.vela"

	Render(&buf, errs)

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Error("a non-terminal writer must not receive ANSI escapes")
	}
	if !strings.Contains(out, "main.vela:2:4") {
		t.Errorf("expected location prefix, got: %q", out)
	}
	if !strings.Contains(out, "error [C005] match is not exhaustive: missing cases: None") {
		t.Errorf("expected rendered message, got: %q", out)
	}
}

func TestRenderOneLinePerError(t *testing.T) {
	var buf bytes.Buffer
	errs := []*DiagnosticError{
		NewError(ErrC001, token.Token{Line: 1, Column: 1}, "a"),
		NewError(ErrC002, token.Token{Line: 2, Column: 1}, "B"),
	}
	Render(&buf, errs)
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}
}
