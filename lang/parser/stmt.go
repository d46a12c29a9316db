package parser

import (
	"github.com/anthony-major/rlox/lang/ast"
	"github.com/anthony-major/rlox/lang/token"
)

func (p *parser) parseVarDecl() ast.Stmt {
	line := p.toks[p.pos-1].Line
	name := p.expect(token.IDENT, "Expect variable name.")
	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.parseExpression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name.Lexeme, Initializer: init, Line: line}
}

// parseFunDecl parses function("kind"): IDENT "(" params? ")" block.
func (p *parser) parseFunDecl(kind string) *ast.Function {
	line := p.cur().Line
	name := p.expect(token.IDENT, "Expect "+kind+" name.")
	p.expect(token.LPAREN, "Expect '(' after "+kind+" name.")

	var params []string
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= 255 {
				p.errorAtCurrent("Can't have more than 255 parameters.")
			}
			pname := p.expect(token.IDENT, "Expect parameter name.")
			params = append(params, pname.Lexeme)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN, "Expect ')' after parameters.")
	p.expect(token.LBRACE, "Expect '{' before "+kind+" body.")
	body := p.parseBlockBody()
	return &ast.Function{Name: name.Lexeme, Params: params, Body: body, Line: line}
}

func (p *parser) parseClassDecl() ast.Stmt {
	line := p.toks[p.pos-1].Line
	name := p.expect(token.IDENT, "Expect class name.")

	var super *ast.Variable
	if p.match(token.LESS) {
		superTok := p.expect(token.IDENT, "Expect superclass name.")
		super = &ast.Variable{Name: superTok.Lexeme, Line: superTok.Line}
	}

	p.expect(token.LBRACE, "Expect '{' before class body.")
	var methods []*ast.Function
	for !p.check(token.RBRACE) && !p.atEnd() {
		methods = append(methods, p.parseFunDecl("method"))
	}
	p.expect(token.RBRACE, "Expect '}' after class body.")
	return &ast.Class{Name: name.Lexeme, Superclass: super, Methods: methods, Line: line}
}

func (p *parser) parseStatement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.parsePrintStmt()
	case p.match(token.LBRACE):
		line := p.toks[p.pos-1].Line
		return &ast.Block{Statements: p.parseBlockBody(), Line: line}
	case p.match(token.IF):
		return p.parseIfStmt()
	case p.match(token.WHILE):
		return p.parseWhileStmt()
	case p.match(token.FOR):
		return p.parseForStmt()
	case p.match(token.RETURN):
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseBlockBody parses "declaration* }", with the opening "{" already
// consumed by the caller. It consumes the closing "}".
func (p *parser) parseBlockBody() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RBRACE) && !p.atEnd() {
		if s := p.parseDeclaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(token.RBRACE, "Expect '}' after block.")
	return stmts
}

func (p *parser) parsePrintStmt() ast.Stmt {
	line := p.toks[p.pos-1].Line
	expr := p.parseExpression()
	p.expect(token.SEMICOLON, "Expect ';' after value.")
	return &ast.Print{Expression: expr, Line: line}
}

func (p *parser) parseExprStmt() ast.Stmt {
	line := p.cur().Line
	expr := p.parseExpression()
	p.expect(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExprStmt{Expression: expr, Line: line}
}

func (p *parser) parseIfStmt() ast.Stmt {
	line := p.toks[p.pos-1].Line
	p.expect(token.LPAREN, "Expect '(' after 'if'.")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "Expect ')' after if condition.")
	then := p.parseStatement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.parseStatement()
	}
	return &ast.If{Condition: cond, Then: then, Else: els, Line: line}
}

func (p *parser) parseWhileStmt() ast.Stmt {
	line := p.toks[p.pos-1].Line
	p.expect(token.LPAREN, "Expect '(' after 'while'.")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "Expect ')' after condition.")
	body := p.parseStatement()
	return &ast.While{Condition: cond, Body: body, Line: line}
}

// parseForStmt desugars "for (init; cond; incr) body" into
// "{ init; while (cond) { body; incr; } }".
func (p *parser) parseForStmt() ast.Stmt {
	line := p.toks[p.pos-1].Line
	p.expect(token.LPAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.check(token.VAR):
		p.advance()
		init = p.parseVarDecl()
	default:
		init = p.parseExprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after loop condition.")

	var incr ast.Expr
	if !p.check(token.RPAREN) {
		incr = p.parseExpression()
	}
	p.expect(token.RPAREN, "Expect ')' after for clauses.")

	body := p.parseStatement()

	if incr != nil {
		body = &ast.Block{Statements: []ast.Stmt{body, &ast.ExprStmt{Expression: incr, Line: line}}, Line: line}
	}
	if cond == nil {
		cond = &ast.Literal{Value: true, Line: line}
	}
	body = &ast.While{Condition: cond, Body: body, Line: line}

	if init != nil {
		body = &ast.Block{Statements: []ast.Stmt{init, body}, Line: line}
	}
	return body
}

func (p *parser) parseReturnStmt() ast.Stmt {
	line := p.toks[p.pos-1].Line
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.parseExpression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Value: value, Line: line}
}
