// lexer.go — tokenizer for the m3lc surface syntax.
//
// The token set is tiny: identifiers, "fn", ":=", "=>", parentheses, ";" and
// EOF. Comments run from '#' to end of line and are skipped like whitespace.
//
// Identifiers are [A-Za-z_][A-Za-z0-9_']*. The '.' character is deliberately
// not a legal identifier character: the reducer builds fresh names of the
// form "x.3", and excluding dots at the lexer guarantees a generated name can
// never collide with a name written in source.
//
// Every token carries its 1-based line and 0-based column; lexing failures
// are reported as *LexError with the same coordinates, which errors.go can
// render as a caret snippet.
package m3lc

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Punctuation
	LROUND // "("
	RROUND // ")"
	SEMI   // ";"

	// Operators
	DEFINE // ":="
	ARROW  // "=>"

	// Keywords & identifiers
	FN // "fn"
	ID
)

func (tt TokenType) String() string {
	switch tt {
	case EOF:
		return "end of input"
	case LROUND:
		return `"("`
	case RROUND:
		return `")"`
	case SEMI:
		return `";"`
	case DEFINE:
		return `":="`
	case ARROW:
		return `"=>"`
	case FN:
		return `"fn"`
	case ID:
		return "identifier"
	}
	return "unknown token"
}

// Token is a lexical token.
type Token struct {
	Type   TokenType
	Lexeme string // raw text slice; empty for EOF
	Line   int    // 1-based
	Col    int    // 0-based column of the token's first byte
}

// LexError is a tokenization failure at a source position.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Lexer scans an m3lc source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Scan tokenizes the entire source and returns tokens, EOF included.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}

//// END_OF_PUBLIC

/* ---------- cursor helpers ---------- */

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType) Token {
	tok := Token{
		Type:   tt,
		Lexeme: l.src[l.start:l.cur],
		Line:   l.tokStartLine,
		Col:    l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		case '#':
			// comment runs to end of line
			for !l.isAtEnd() {
				c, _ := l.peek()
				if c == '\n' {
					break
				}
				l.advance()
			}
			l.start = l.cur
		default:
			return
		}
	}
}

/* ---------- character classes ---------- */

func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isIdentTail(b byte) bool {
	return isAlpha(b) || (b >= '0' && b <= '9') || b == '\''
}

/* ---------- errors ---------- */

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.line, Col: l.col, Msg: msg}
}

/* ---------- scanners ---------- */

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespaceAndComments()
	l.tokStartLine = l.line
	l.tokStartCol = l.col

	if l.isAtEnd() {
		return l.addToken(EOF), nil
	}

	ch, _ := l.peek()
	switch ch {
	case '(':
		l.advance()
		return l.addToken(LROUND), nil
	case ')':
		l.advance()
		return l.addToken(RROUND), nil
	case ';':
		l.advance()
		return l.addToken(SEMI), nil
	case ':':
		if next, ok := l.peekN(1); ok && next == '=' {
			l.advance()
			l.advance()
			return l.addToken(DEFINE), nil
		}
		return Token{}, l.err(`expected "=" after ":"`)
	case '=':
		if next, ok := l.peekN(1); ok && next == '>' {
			l.advance()
			l.advance()
			return l.addToken(ARROW), nil
		}
		return Token{}, l.err(`expected ">" after "="`)
	}

	if isAlpha(ch) {
		return l.scanIdent(), nil
	}
	return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
}

// scanIdent consumes an identifier or the "fn" keyword.
func (l *Lexer) scanIdent() Token {
	for {
		b, ok := l.peek()
		if !ok || !isIdentTail(b) {
			break
		}
		l.advance()
	}
	if l.src[l.start:l.cur] == "fn" {
		return l.addToken(FN)
	}
	return l.addToken(ID)
}
