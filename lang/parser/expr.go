package parser

import (
	"github.com/anthony-major/rlox/lang/ast"
	"github.com/anthony-major/rlox/lang/token"
)

func (p *parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

// parseAssignment parses "( call "." )? IDENT "=" assignment | logic_or" by
// first parsing the left side as a normal expression, then rewriting it into
// an Assign or Set node if a "=" follows.
func (p *parser) parseAssignment() ast.Expr {
	expr := p.parseOr()

	if p.match(token.EQUAL) {
		eq := p.toks[p.pos-1]
		value := p.parseAssignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value, Line: target.Line}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value, Line: target.Line}
		default:
			p.errorAt(eq, "Invalid assignment target.")
			return expr
		}
	}
	return expr
}

func (p *parser) parseOr() ast.Expr {
	expr := p.parseAnd()
	for p.match(token.OR) {
		op := p.toks[p.pos-1]
		right := p.parseAnd()
		expr = &ast.Logical{Left: expr, Op: op.Kind, Right: right, Line: op.Line}
	}
	return expr
}

func (p *parser) parseAnd() ast.Expr {
	expr := p.parseEquality()
	for p.match(token.AND) {
		op := p.toks[p.pos-1]
		right := p.parseEquality()
		expr = &ast.Logical{Left: expr, Op: op.Kind, Right: right, Line: op.Line}
	}
	return expr
}

func (p *parser) parseEquality() ast.Expr {
	expr := p.parseComparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.toks[p.pos-1]
		right := p.parseComparison()
		expr = &ast.Binary{Left: expr, Op: op.Kind, Right: right, Line: op.Line}
	}
	return expr
}

func (p *parser) parseComparison() ast.Expr {
	expr := p.parseTerm()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.toks[p.pos-1]
		right := p.parseTerm()
		expr = &ast.Binary{Left: expr, Op: op.Kind, Right: right, Line: op.Line}
	}
	return expr
}

func (p *parser) parseTerm() ast.Expr {
	expr := p.parseFactor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.toks[p.pos-1]
		right := p.parseFactor()
		expr = &ast.Binary{Left: expr, Op: op.Kind, Right: right, Line: op.Line}
	}
	return expr
}

func (p *parser) parseFactor() ast.Expr {
	expr := p.parseUnary()
	for p.match(token.SLASH, token.STAR) {
		op := p.toks[p.pos-1]
		right := p.parseUnary()
		expr = &ast.Binary{Left: expr, Op: op.Kind, Right: right, Line: op.Line}
	}
	return expr
}

func (p *parser) parseUnary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.toks[p.pos-1]
		operand := p.parseUnary()
		return &ast.Unary{Op: op.Kind, Operand: operand, Line: op.Line}
	}
	return p.parseCall()
}

// parseCall parses "primary ( "(" args? ")" | "." IDENT )*".
func (p *parser) parseCall() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.match(token.LPAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.expect(token.IDENT, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name.Lexeme, Line: name.Line}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	line := p.toks[p.pos-1].Line
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= 255 {
				p.errorAtCurrent("Can't have more than 255 arguments.")
			}
			args = append(args, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	rparen := p.expect(token.RPAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Args: args, ClosingParen: rparen.Lexeme, Line: line}
}

func (p *parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Value: false, Line: tok.Line}
	case p.match(token.TRUE):
		return &ast.Literal{Value: true, Line: tok.Line}
	case p.match(token.NIL):
		return &ast.Literal{Value: nil, Line: tok.Line}
	case p.match(token.NUMBER):
		return &ast.Literal{Value: tok.Num, Line: tok.Line}
	case p.match(token.STRING):
		return &ast.Literal{Value: tok.Str, Line: tok.Line}
	case p.match(token.THIS):
		return &ast.This{Line: tok.Line}
	case p.match(token.SUPER):
		p.expect(token.DOT, "Expect '.' after 'super'.")
		method := p.expect(token.IDENT, "Expect superclass method name.")
		return &ast.Super{Method: method.Lexeme, Line: tok.Line}
	case p.match(token.IDENT):
		return &ast.Variable{Name: tok.Lexeme, Line: tok.Line}
	case p.match(token.LPAREN):
		expr := p.parseExpression()
		p.expect(token.RPAREN, "Expect ')' after expression.")
		return &ast.Grouping{Expression: expr, Line: tok.Line}
	default:
		p.errorAtCurrent("Expect expression.")
		panic(errPanicMode)
	}
}
