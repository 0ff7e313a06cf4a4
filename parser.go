// parser.go — recursive-descent parser for m3lc files and terms.
//
// Grammar (EBNF):
//
//	File        := Definition* MainTerm
//	Definition  := Identifier ":=" Term ";"?
//	MainTerm    := Term | "main" ":=" Term ";"?
//	Term        := Application
//	Application := Atom+                     -- left-associative juxtaposition
//	Atom        := Variable | Abstraction | "(" Term ")"
//	Abstraction := "fn" Identifier "=>" Term
//	Variable    := Identifier
//
// Application binds tighter than an abstraction body extends, and a body
// extends maximally to the right: "fn x => x y" is fn x => (x y). This falls
// out of the descent for free, because an abstraction atom parses its body
// as a full Term and so consumes everything up to the next ")" / ";" / EOF.
//
// A single left-to-right pass with one token of lookahead suffices; there is
// no backtracking. Failures are *ParseError values carrying the offending
// token's line and column. An error caused purely by running out of input
// sets AtEOF, which IsIncomplete exposes so the REPL can keep reading lines
// instead of reporting a hard error.
package m3lc

import "fmt"

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// ParseError is a syntax failure at a source position.
type ParseError struct {
	Line  int
	Col   int
	Msg   string
	AtEOF bool // the parser wanted more input, not different input
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err is a parse error that would go away with
// more input, e.g. an unclosed paren or a dangling ":=" at end of input.
// REPLs use this to prompt for a continuation line.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.AtEOF
}

// ParseTerm parses a single term from src.
func ParseTerm(src string) (Term, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(EOF, "unexpected input after term"); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseFile parses a full m3lc file: zero or more definitions followed by the
// main term. The main term is the trailing definition named "main", or a bare
// trailing term. Semicolon terminators are accepted everywhere and required
// nowhere.
func ParseFile(src string) (*File, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	return p.file()
}

// ParseInput parses a single interactive entry: either one definition
// ("name := term") or one bare term. Exactly one of the two results is
// non-nil on success. A definition named "main" is returned as a plain
// definition here; the REPL decides what to do with it.
func ParseInput(src string) (*Defn, Term, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, nil, err
	}
	if p.peek().Type == ID && p.peekN(1).Type == DEFINE {
		name := p.peek().Lexeme
		p.i += 2
		t, err := p.term()
		if err != nil {
			return nil, nil, err
		}
		p.match(SEMI)
		if _, err := p.need(EOF, "unexpected input after definition"); err != nil {
			return nil, nil, err
		}
		return &Defn{Name: name, Term: t}, nil, nil
	}
	t, err := p.term()
	if err != nil {
		return nil, nil, err
	}
	p.match(SEMI)
	if _, err := p.need(EOF, "unexpected input after term"); err != nil {
		return nil, nil, err
	}
	return nil, t, nil
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                            PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

type parser struct {
	toks []Token
	i    int
}

func newParser(src string) (*parser, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	return &parser{toks: toks}, nil
}

/* ---------- token basics ---------- */

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.i]
}

func (p *parser) peekN(n int) Token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+n]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) match(tt ...TokenType) bool {
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

func (p *parser) errAt(got Token, msg string) error {
	return &ParseError{
		Line:  got.Line,
		Col:   got.Col,
		Msg:   fmt.Sprintf("%s (got %s)", msg, describe(got)),
		AtEOF: got.Type == EOF,
	}
}

func describe(t Token) string {
	if t.Type == ID {
		return fmt.Sprintf("%q", t.Lexeme)
	}
	return t.Type.String()
}

// startsAtom reports whether the next token can begin an Atom.
func (p *parser) startsAtom() bool {
	switch p.peek().Type {
	case ID, LROUND, FN:
		return true
	}
	return false
}

/* ---------- productions ---------- */

// file parses Definition* MainTerm.
func (p *parser) file() (*File, error) {
	var defns []Defn
	for p.peek().Type == ID && p.peekN(1).Type == DEFINE {
		name := p.peek().Lexeme
		p.i += 2 // ID DEFINE
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		p.match(SEMI)
		if name == "main" {
			// main is the file's term, and nothing may follow it
			if _, err := p.need(EOF, `"main" must be the last definition`); err != nil {
				return nil, err
			}
			return &File{Defns: defns, Main: t}, nil
		}
		defns = append(defns, Defn{Name: name, Term: t})
	}

	// A bare trailing term also serves as main.
	if p.startsAtom() {
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		p.match(SEMI)
		if _, err := p.need(EOF, "unexpected input after main term"); err != nil {
			return nil, err
		}
		return &File{Defns: defns, Main: t}, nil
	}

	return nil, p.errAt(p.peek(), "expected a main term")
}

// term parses Application := Atom+, folding left-associatively.
func (p *parser) term() (Term, error) {
	t, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.startsAtom() {
		// An "x :=" lookahead is the start of the next definition, not an
		// argument; this is what lets semicolon terminators stay optional.
		if p.peek().Type == ID && p.peekN(1).Type == DEFINE {
			break
		}
		arg, err := p.atom()
		if err != nil {
			return nil, err
		}
		t = &Appl{Left: t, Right: arg}
	}
	return t, nil
}

// atom parses Variable | Abstraction | "(" Term ")".
func (p *parser) atom() (Term, error) {
	switch {
	case p.match(ID):
		return &Var{Name: p.prev().Lexeme}, nil

	case p.match(FN):
		param, err := p.need(ID, `expected a parameter name after "fn"`)
		if err != nil {
			return nil, err
		}
		if _, err := p.need(ARROW, `expected "=>" after the parameter`); err != nil {
			return nil, err
		}
		body, err := p.term()
		if err != nil {
			return nil, err
		}
		return &Lam{Param: param.Lexeme, Body: body}, nil

	case p.match(LROUND):
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, `expected ")"`); err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, p.errAt(p.peek(), "expected a term")
}
