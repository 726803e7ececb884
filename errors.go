// errors.go — user-facing error rendering with caret snippets.
//
// WrapErrorWithSource turns the pipeline's structured errors (*ParseError,
// *RuntimeError) into readable multi-line snippets with a caret under the
// offending column:
//
//	PARSE ERROR at 3:8: expected ')' after IF condition
//
//	   2 | DECLARE INT a=10
//	   3 | IF (a>5 START IF
//	     |        ^
//	   4 | PRINT: a
//
// Up to one line of context is shown on each side; line/column are 1-based
// and clamped to the source so rendering never fails. Errors of any other
// type pass through unchanged. The output is plain text, suitable for logs
// and terminals; the CLI applies coloring on top.
package lexor

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource augments a parse or runtime error with a caret-marked
// snippet of src. Other errors are returned as-is.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *ParseError:
		return fmt.Errorf("%s", caretSnippet(src, "PARSE ERROR", e.Line, e.Col, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", caretSnippet(src, "RUNTIME ERROR", e.Line, e.Col, e.Msg))
	default:
		return err
	}
}

// caretSnippet builds the header plus a numbered excerpt with a caret under
// the 1-based column. Coordinates out of range are clamped.
func caretSnippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]
	if col > len(lineTxt)+1 {
		col = len(lineTxt) + 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
