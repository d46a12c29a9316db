// Package scanner implements a pull tokenizer over UTF-8 source text.
package scanner

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/anthony-major/rlox/lang/token"
)

// Error is a single scanner diagnostic, formatted per the host's error
// reporting convention (scanner errors carry no token, only a line).
type Error struct {
	Line int
	Msg  string
}

func (e Error) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Msg)
}

// ErrorList collects errors across a full scan. It implements error itself
// so call sites that only care "did anything fail" can treat it as one.
type ErrorList []Error

func (el *ErrorList) Add(line int, msg string) {
	*el = append(*el, Error{Line: line, Msg: msg})
}

func (el ErrorList) Len() int      { return len(el) }
func (el ErrorList) Swap(i, j int) { el[i], el[j] = el[j], el[i] }
func (el ErrorList) Less(i, j int) bool {
	return el[i].Line < el[j].Line
}

// Sort orders the list by source line, ascending.
func (el ErrorList) Sort() { sort.Sort(el) }

func (el ErrorList) Error() string {
	var sb strings.Builder
	for i, e := range el {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Err returns el as an error if it is non-empty, else nil.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Scanner tokenizes a source string on demand, one token per call to Scan.
type Scanner struct {
	src  []rune
	errs ErrorList

	start int // rune index where the current lexeme starts
	off   int // rune index of the next unread rune
	line  int
}

// Init prepares s to scan src from the beginning.
func (s *Scanner) Init(src string) {
	s.src = []rune(src)
	s.errs = nil
	s.start = 0
	s.off = 0
	s.line = 1
}

// Errs returns the errors collected so far.
func (s *Scanner) Errs() ErrorList { return s.errs }

func (s *Scanner) atEnd() bool { return s.off >= len(s.src) }

func (s *Scanner) advance() rune {
	r := s.src[s.off]
	s.off++
	return r
}

func (s *Scanner) peek() rune {
	if s.atEnd() {
		return 0
	}
	return s.src[s.off]
}

func (s *Scanner) peekNext() rune {
	if s.off+1 >= len(s.src) {
		return 0
	}
	return s.src[s.off+1]
}

// match consumes the next rune and returns true if it equals want.
func (s *Scanner) match(want rune) bool {
	if s.atEnd() || s.src[s.off] != want {
		return false
	}
	s.off++
	return true
}

func (s *Scanner) lexeme() string { return string(s.src[s.start:s.off]) }

func (s *Scanner) make(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Line: s.line, Lexeme: s.lexeme()}
}

// Scan returns the next token. Once the source is exhausted it returns EOF
// on every subsequent call.
func (s *Scanner) Scan() token.Token {
	s.skipInsignificant()
	s.start = s.off
	if s.atEnd() {
		return token.Token{Kind: token.EOF, Line: s.line}
	}

	r := s.advance()
	switch {
	case isDigit(r):
		return s.number()
	case isAlpha(r):
		return s.identifier()
	}

	switch r {
	case '(':
		return s.make(token.LPAREN)
	case ')':
		return s.make(token.RPAREN)
	case '{':
		return s.make(token.LBRACE)
	case '}':
		return s.make(token.RBRACE)
	case ',':
		return s.make(token.COMMA)
	case '.':
		return s.make(token.DOT)
	case '-':
		return s.make(token.MINUS)
	case '+':
		return s.make(token.PLUS)
	case ';':
		return s.make(token.SEMICOLON)
	case '*':
		return s.make(token.STAR)
	case '/':
		return s.make(token.SLASH)
	case '!':
		if s.match('=') {
			return s.make(token.BANG_EQUAL)
		}
		return s.make(token.BANG)
	case '=':
		if s.match('=') {
			return s.make(token.EQUAL_EQUAL)
		}
		return s.make(token.EQUAL)
	case '<':
		if s.match('=') {
			return s.make(token.LESS_EQUAL)
		}
		return s.make(token.LESS)
	case '>':
		if s.match('=') {
			return s.make(token.GREATER_EQUAL)
		}
		return s.make(token.GREATER)
	case '"':
		return s.string()
	}

	s.errs.Add(s.line, fmt.Sprintf("Unexpected character '%c'.", r))
	return s.Scan()
}

// skipInsignificant consumes whitespace and line comments between tokens.
func (s *Scanner) skipInsignificant() {
	for !s.atEnd() {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.off++
		case '\n':
			s.off++
			s.line++
		case '/':
			if s.peekNext() == '/' {
				for !s.atEnd() && s.peek() != '\n' {
					s.off++
				}
				continue
			}
			return
		default:
			return
		}
	}
}

func (s *Scanner) string() token.Token {
	startLine := s.line
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.off++
	}
	if s.atEnd() {
		s.errs.Add(startLine, "Unterminated string.")
		return s.Scan()
	}
	s.off++ // closing quote
	lit := string(s.src[s.start+1 : s.off-1])
	return token.Token{Kind: token.STRING, Line: startLine, Lexeme: s.lexeme(), Str: lit}
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.off++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.off++ // consume the '.'
		for isDigit(s.peek()) {
			s.off++
		}
	}
	lit := s.lexeme()
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// unreachable given the grammar above, but keep Scan total
		s.errs.Add(s.line, fmt.Sprintf("Invalid number literal %q.", lit))
	}
	return token.Token{Kind: token.NUMBER, Line: s.line, Lexeme: lit, Num: n}
}

func (s *Scanner) identifier() token.Token {
	for isAlphaNumeric(s.peek()) {
		s.off++
	}
	lit := s.lexeme()
	kind := token.LookupIdent(lit)
	return token.Token{Kind: kind, Line: s.line, Lexeme: lit, Str: lit}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlpha(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAlphaNumeric(r rune) bool { return isAlpha(r) || isDigit(r) }

// ScanAll tokenizes src in full, returning every token up to and including
// EOF, along with any accumulated errors.
func ScanAll(src string) ([]token.Token, error) {
	var s Scanner
	s.Init(src)
	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	s.errs.Sort()
	return toks, s.errs.Err()
}
