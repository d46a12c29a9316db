// Package parser implements the recursive-descent parser that transforms a
// token stream into an abstract syntax tree.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anthony-major/rlox/lang/ast"
	"github.com/anthony-major/rlox/lang/scanner"
	"github.com/anthony-major/rlox/lang/token"
)

// Error is a single parser diagnostic.
type Error struct {
	Line  int
	Token string // the offending token's spelling, "" for EOF
	Msg   string
}

func (e Error) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("Line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("Line %d at '%s': %s", e.Line, e.Token, e.Msg)
}

// ErrorList collects parser diagnostics across a full parse.
type ErrorList []Error

func (el *ErrorList) Add(e Error) { *el = append(*el, e) }

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

// errPanicMode is the sentinel panicked with to unwind to the nearest
// statement boundary after a parse error; recovered in parseDeclaration.
var errPanicMode = struct{ error }{}

// parser holds the mutable state of a single parse.
type parser struct {
	toks   []token.Token
	pos    int
	errors ErrorList
}

// Parse tokenizes and parses src into a program (a list of statements).
// It never returns a nil error coupled with a nil statement list on a
// fundamentally broken input; instead it returns whatever statements were
// successfully parsed, plus the aggregate of scanner and parser errors.
func Parse(src string) ([]ast.Stmt, error) {
	toks, scanErr := scanner.ScanAll(src)
	var p parser
	p.toks = toks
	stmts := p.parseProgram()
	p.errors.Sort()
	perr := p.errors.Err()

	switch {
	case scanErr != nil && perr != nil:
		return stmts, combinedError{scan: scanErr, parse: perr}
	case scanErr != nil:
		return stmts, scanErr
	default:
		return stmts, perr
	}
}

// combinedError aggregates a scanner.ErrorList and a parser.ErrorList so
// callers that only want "did parsing fail" can treat it as one error,
// while the CLI driver still prints each underlying line, scanner errors
// first, each group sorted by source line.
type combinedError struct {
	scan  error
	parse error
}

func (c combinedError) Error() string {
	return c.scan.Error() + "\n" + c.parse.Error()
}

// Lines returns every formatted error line, scanner errors first, in the
// shape the host prints to stdout.
func (c combinedError) Lines() []string {
	return append(ErrorLines(c.scan), ErrorLines(c.parse)...)
}

// ErrorLines splits an error returned by Parse into individual formatted
// lines, regardless of whether it is a scanner.ErrorList, parser.ErrorList,
// a combinedError, or a plain error.
func ErrorLines(err error) []string {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case combinedError:
		return e.Lines()
	case scanner.ErrorList:
		lines := make([]string, len(e))
		for i, se := range e {
			lines[i] = se.Error()
		}
		return lines
	case ErrorList:
		lines := make([]string, len(e))
		for i, pe := range e {
			lines[i] = pe.Error()
		}
		return lines
	default:
		return []string{err.Error()}
	}
}

func (p *parser) cur() token.Token  { return p.toks[p.pos] }
func (p *parser) atEnd() bool       { return p.cur().Kind == token.EOF }
func (p *parser) check(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *parser) advance() token.Token {
	tok := p.cur()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

// match consumes the current token and returns true if its kind is in kinds.
func (p *parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes and returns the current token if it has kind k, otherwise
// reports msg and panics with errPanicMode, unwinding to the nearest
// recovery point.
func (p *parser) expect(k token.Kind, msg string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorAtCurrent(msg)
	panic(errPanicMode)
}

func (p *parser) errorAtCurrent(msg string) {
	tok := p.cur()
	tokStr := tok.String()
	if tok.Kind == token.EOF {
		tokStr = ""
	}
	p.errors.Add(Error{Line: tok.Line, Token: tokStr, Msg: msg})
}

func (p *parser) errorAt(tok token.Token, msg string) {
	tokStr := tok.String()
	if tok.Kind == token.EOF {
		tokStr = ""
	}
	p.errors.Add(Error{Line: tok.Line, Token: tokStr, Msg: msg})
}

// parseProgram parses "declaration* EOF".
func (p *parser) parseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if s := p.parseDeclaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// parseDeclaration parses a single declaration, recovering to the next
// synchronization point if a panic-mode error occurs inside it.
func (p *parser) parseDeclaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.VAR):
		return p.parseVarDecl()
	case p.match(token.FUN):
		return p.parseFunDecl("function")
	case p.match(token.CLASS):
		return p.parseClassDecl()
	default:
		return p.parseStatement()
	}
}

// synchronize discards tokens until a plausible statement boundary: right
// after a ';', or right before one of the declaration/statement keywords.
func (p *parser) synchronize() {
	for !p.atEnd() {
		if p.pos > 0 && p.toks[p.pos-1].Kind == token.SEMICOLON {
			return
		}
		switch p.cur().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
