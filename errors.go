// errors.go — user-facing error wrapping and caret-snippet rendering.
//
// WrapErrorWithSource turns the positional diagnostics produced by the lexer
// (*LexError) and parser (*ParseError) into readable snippets with a caret
// pointing at the offending column:
//
//	PARSE ERROR in add.m3lc at 3:12: expected ")" (got end of input)
//
//	   2 | two := succ one;
//	   3 | main := two (succ
//	     |            ^
//
// Any other error is returned unchanged. The reducer and the equivalence
// checker are total over well-formed terms, so lexing and parsing are the
// only stages that ever produce errors here.
package m3lc

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns err augmented with a caret-annotated snippet of
// src when err is a lex or parse error, and err unchanged otherwise.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name (typically the
// file path) included in the header.
func WrapErrorWithName(err error, srcName, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Lex/parse Col are 0-based; render as 1-based.
		return fmt.Errorf("%s", snippet(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "PARSE ERROR", srcName, e.Line, e.Col+1, e.Msg))
	default:
		return err
	}
}

//// END_OF_PUBLIC

// snippet builds the caret-annotated rendering. Coordinates are treated as
// 1-based and clamped to the source bounds, so out-of-range positions never
// break rendering.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
