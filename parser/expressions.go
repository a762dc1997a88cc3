package parser

import (
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/quill/expr"
	"github.com/deepnoodle-ai/quill/token"
)

// parseExpression is the entry point for Pratt expression parsing. The
// current token must be the first token of the expression. On return, the
// current token is the last token of the expression.
func (p *Parser) parseExpression(precedence int) expr.Expression {
	if p.err != nil {
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		p.setTokenError(p.curToken, "expression exceeds maximum nesting depth of %d", p.maxDepth)
		return nil
	}
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.setTokenError(p.curToken, "unexpected %s while parsing expression",
			tokenDescription(p.curToken))
		return nil
	}
	left := prefix()
	for p.err == nil && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	if p.err != nil {
		return nil
	}
	return left
}

// parseNumber parses an INT or FLOAT literal into a Number. A trailing "i"
// marks the value as imaginary: 2i parses as the number 0+2i.
func (p *Parser) parseNumber() expr.Expression {
	lit := p.curToken.Literal
	imaginary := strings.HasSuffix(lit, "i")
	if imaginary {
		lit = strings.TrimSuffix(lit, "i")
	}
	value, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.setTokenError(p.curToken, "invalid number literal %q", p.curToken.Literal)
		return nil
	}
	if imaginary {
		return &expr.Number{Value: complex(0, value)}
	}
	return &expr.Number{Value: complex(value, 0)}
}

// parseIdentExpr parses an identifier appearing inside an expression: the
// constant pi, the imaginary unit i, a function call, or a memory
// reference.
func (p *Parser) parseIdentExpr() expr.Expression {
	name := p.curToken.Literal
	switch name {
	case "pi":
		return &expr.Pi{}
	case "i":
		return &expr.Number{Value: complex(0, 1)}
	}
	if fn, ok := expr.LookupFunction(name); ok && p.peekTokenIs(token.LPAREN) {
		p.nextToken() // Move to '('
		p.nextToken() // Move to the argument
		arg := p.parseExpression(LOWEST)
		if p.err != nil {
			return nil
		}
		if !p.expectPeek("function call", token.RPAREN) {
			return nil
		}
		return &expr.Call{Fn: fn, Arg: arg}
	}
	return &expr.Reference{Ref: p.parseMemoryReferenceTail()}
}

// parseVariableExpr parses a %name parameter. The lexer strips the sigil.
func (p *Parser) parseVariableExpr() expr.Expression {
	return &expr.Variable{Name: p.curToken.Literal}
}

// parseGroupedExpr parses a parenthesized expression.
func (p *Parser) parseGroupedExpr() expr.Expression {
	p.nextToken() // Move past '('
	e := p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	if !p.expectPeek("grouped expression", token.RPAREN) {
		return nil
	}
	return e
}

// parsePrefixExpr parses a unary + or - expression. Unary operators bind
// tighter than any binary operator, so -2^2 parses as (-2)^2. A sign
// applied directly to a number literal folds into the literal, which keeps
// serialized programs stable under reparsing.
func (p *Parser) parsePrefixExpr() expr.Expression {
	op := expr.Operator(p.curToken.Literal)
	p.nextToken() // Move to the operand
	operand := p.parseExpression(PREFIX)
	if p.err != nil {
		return nil
	}
	if n, ok := operand.(*expr.Number); ok {
		if op == expr.OpSub {
			return &expr.Number{Value: -n.Value}
		}
		return n
	}
	return &expr.Prefix{Op: op, X: operand}
}

// parseInfixExpr parses a binary operator expression. The ^ operator is
// right associative; the others are left associative. A real literal plus
// or minus an imaginary literal folds into one complex literal, so 3+4i
// parses as the single number 3+4i.
func (p *Parser) parseInfixExpr(left expr.Expression) expr.Expression {
	op := expr.Operator(p.curToken.Literal)
	precedence := p.currentPrecedence()
	if op == expr.OpPow {
		precedence--
	}
	p.nextToken() // Move to the right operand
	right := p.parseExpression(precedence)
	if p.err != nil {
		return nil
	}
	if folded, ok := foldComplexLiteral(left, op, right); ok {
		return folded
	}
	return &expr.Infix{X: left, Op: op, Y: right}
}

// foldComplexLiteral merges "a+bi" and "a-bi" spellings into a single
// complex literal when the left side is a real literal and the right side
// is an imaginary literal. Those are exactly the forms complex numbers
// serialize to.
func foldComplexLiteral(left expr.Expression, op expr.Operator, right expr.Expression) (expr.Expression, bool) {
	if op != expr.OpAdd && op != expr.OpSub {
		return nil, false
	}
	ln, ok := left.(*expr.Number)
	if !ok {
		return nil, false
	}
	rn, ok := right.(*expr.Number)
	if !ok {
		return nil, false
	}
	if imag(ln.Value) != 0 || real(rn.Value) != 0 || imag(rn.Value) == 0 {
		return nil, false
	}
	if op == expr.OpSub {
		return &expr.Number{Value: ln.Value - rn.Value}, true
	}
	return &expr.Number{Value: ln.Value + rn.Value}, true
}

// parseMemoryReferenceTail parses the optional [index] suffix of a memory
// reference. The current token must be the region name. A bare name refers
// to slot zero.
func (p *Parser) parseMemoryReferenceTail() expr.MemoryReference {
	ref := expr.MemoryReference{Name: p.curToken.Literal}
	if !p.peekTokenIs(token.LBRACKET) {
		return ref
	}
	p.nextToken() // Move to '['
	if !p.expectPeek("memory reference", token.INT) {
		return ref
	}
	index, err := strconv.ParseUint(p.curToken.Literal, 10, 64)
	if err != nil {
		p.setTokenError(p.curToken, "invalid memory reference index %q", p.curToken.Literal)
		return ref
	}
	ref.Index = index
	p.expectPeek("memory reference", token.RBRACKET)
	return ref
}

// expectMemoryReference parses a memory reference whose first token has not
// been consumed yet.
func (p *Parser) expectMemoryReference(context string) expr.MemoryReference {
	if !p.expectPeek(context, token.IDENT) {
		return expr.MemoryReference{}
	}
	return p.parseMemoryReferenceTail()
}
