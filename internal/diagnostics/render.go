package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\x1b[31m"
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

// Render writes errors to w in a fixed one-line-per-error format.
// Color is only emitted when w is a real terminal.
func Render(w io.Writer, errs []*DiagnosticError) {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	for _, e := range errs {
		loc := fmt.Sprintf("%s:%d:%d", e.File, e.Token.Line, e.Token.Column)
		if colored {
			fmt.Fprintf(w, "%s%s%s %serror [%s]%s %s\n", ansiDim, loc, ansiReset, ansiRed, e.Code, ansiReset, e.Message)
		} else {
			fmt.Fprintf(w, "%s error [%s] %s\n", loc, e.Code, e.Message)
		}
	}
}
