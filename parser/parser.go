// Package parser turns Quil source text into a Program.
//
// A parser is created by calling New() with a lexer as input. The parser
// should then be used only once, by calling parser.Parse() to produce the
// program. Parsing is fail-fast: the first problem found aborts the parse
// and is returned as a single ParseError carrying the offending token, its
// location, and the set of token types that were acceptable at that point.
package parser

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/expr"
	"github.com/deepnoodle-ai/quill/internal/lexer"
	"github.com/deepnoodle-ai/quill/program"
	"github.com/deepnoodle-ai/quill/token"
)

type (
	prefixParseFn func() expr.Expression
	infixParseFn  func(expr.Expression) expr.Expression
)

// Parse the provided input as Quil source code and return the Program. This
// is a shorthand way to create a Lexer and Parser and then call Parse on
// that.
func Parse(ctx context.Context, input string, options ...Option) (*program.Program, error) {
	// Extract filename from options before creating the parser, so that lexer
	// errors in the first tokens have proper location context.
	var filename string
	for _, opt := range options {
		var probe Parser
		opt(&probe)
		if probe.filename != "" {
			filename = probe.filename
			break
		}
	}

	l := lexer.New(input)
	if filename != "" {
		l.SetFilename(filename)
	}

	p := New(l, options...)
	return p.Parse(ctx)
}

// ParseExpression parses a single arithmetic expression, such as a gate
// parameter, from the given input. The entire input must be consumed.
func ParseExpression(input string, options ...Option) (expr.Expression, error) {
	p := New(lexer.New(input), options...)
	e := p.parseExpression(LOWEST)
	if p.err != nil {
		return nil, p.err
	}
	if !p.peekTokenIs(token.EOF) {
		p.peekError("expression", token.EOF)
		return nil, p.err
	}
	return e, nil
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name used in token positions and error
// messages.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum expression nesting depth for the parser.
// This prevents stack overflow on deeply nested input. The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// prevToken holds the previous token, which we already processed.
	prevToken token.Token

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// err holds the first error encountered. Once set, parsing is over.
	err ParserError

	// prefixParseFns holds a map of parsing methods for
	// prefix-based expression syntax.
	prefixParseFns map[token.Type]prefixParseFn

	// infixParseFns holds a map of parsing methods for
	// infix-based expression syntax.
	infixParseFns map[token.Type]infixParseFn

	// The filename of the input
	filename string

	// Current expression recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	// Create the parser and apply any provided options
	p := &Parser{
		l:              l,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.filename != "" {
		l.SetFilename(p.filename)
	}

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]

	// Register prefix-functions
	p.registerPrefix(token.INT, p.parseNumber)
	p.registerPrefix(token.FLOAT, p.parseNumber)
	p.registerPrefix(token.IDENT, p.parseIdentExpr)
	p.registerPrefix(token.VARIABLE, p.parseVariableExpr)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.MINUS, p.parsePrefixExpr)
	p.registerPrefix(token.PLUS, p.parsePrefixExpr)

	// Register infix functions
	p.registerInfix(token.PLUS, p.parseInfixExpr)
	p.registerInfix(token.MINUS, p.parseInfixExpr)
	p.registerInfix(token.ASTERISK, p.parseInfixExpr)
	p.registerInfix(token.SLASH, p.parseInfixExpr)
	p.registerInfix(token.CARET, p.parseInfixExpr)

	return p
}

// nextToken moves to the next token from the lexer, updating all of
// prevToken, curToken, and peekToken.
func (p *Parser) nextToken() error {
	var err error
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.peekToken, err = p.l.Next()
	if err == nil {
		return nil // success
	}
	// The lexer encountered an error. We consider all lexer errors "syntax
	// errors" and parsing is now over.
	opts := ErrorOpts{
		Cause:      err,
		File:       p.l.Filename(),
		SourceCode: p.l.GetLineText(p.peekToken),
	}
	if lexErr, ok := err.(*lexer.Error); ok {
		opts.StartPosition = lexErr.StartPosition
		opts.EndPosition = lexErr.EndPosition
		opts.SourceCode = p.l.GetLineText(token.Token{StartPosition: lexErr.StartPosition})
	}
	p.setError(NewSyntaxError(opts))
	return err
}

// Parse the program that is provided via the lexer.
func (p *Parser) Parse(ctx context.Context) (*program.Program, error) {
	p.ctx = ctx
	// It's possible for an error to already exist because we read tokens
	// from the lexer in the constructor.
	if p.err != nil {
		return nil, p.err
	}
	prog := program.New()
	for !p.curTokenIs(token.EOF) {
		if p.cancelled() {
			return nil, p.err
		}
		if p.curTokenIs(token.NEWLINE) {
			if err := p.nextToken(); err != nil {
				return nil, p.err
			}
			continue
		}
		if p.curTokenIs(token.INDENT) {
			p.setTokenError(p.curToken, "unexpected indentation outside a definition body")
			return nil, p.err
		}
		inst := p.parseInstruction()
		if p.err != nil {
			return nil, p.err
		}
		prog.Append(inst)
		// A definition body consumes its own trailing newline; everything
		// else stops on its last content token.
		if p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.EOF) {
			continue
		}
		if !p.expectLineEnd() {
			if gate, ok := inst.(*ast.Gate); ok {
				p.suggestCommand(gate.Name)
			}
			return nil, p.err
		}
	}
	return prog, nil
}

// registerPrefix registers a function for handling a prefix expression.
func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers a function for handling an infix expression.
func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// setError records the first error encountered. Later errors are discarded,
// since everything after the first failure is downstream noise.
func (p *Parser) setError(err ParserError) {
	if p.err == nil {
		p.err = err
	}
}

// cancelled checks if the parsing context has been cancelled. Returns true
// if cancelled, in which case parsing should stop.
func (p *Parser) cancelled() bool {
	if p.ctx == nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		p.setError(NewParseError(ErrorOpts{
			ErrType: "context error",
			Message: p.ctx.Err().Error(),
		}))
		return true
	default:
		return false
	}
}

// expectLineEnd asserts that the current instruction is followed by a
// newline or the end of input, and advances onto that token.
func (p *Parser) expectLineEnd() bool {
	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.EOF) {
		p.nextToken()
		return true
	}
	p.peekError("end of instruction", token.NEWLINE, token.EOF)
	return false
}

func (p *Parser) setTokenError(t token.Token, msg string, args ...interface{}) {
	p.setError(NewParseError(ErrorOpts{
		Message:       fmt.Sprintf(msg, args...),
		File:          p.l.Filename(),
		StartPosition: t.StartPosition,
		EndPosition:   t.EndPosition,
		SourceCode:    p.l.GetLineText(t),
		Found:         t,
	}))
}

// peekError records an error describing what the next token should have
// been.
func (p *Parser) peekError(context string, expected ...token.Type) {
	got := p.peekToken
	p.setError(NewParseError(ErrorOpts{
		Message: fmt.Sprintf("unexpected %s while parsing %s (expected %s)",
			tokenDescription(got), context, expectedDescription(expected)),
		File:          p.l.Filename(),
		StartPosition: got.StartPosition,
		EndPosition:   got.EndPosition,
		SourceCode:    p.l.GetLineText(got),
		Expected:      expected,
		Found:         got,
	}))
}

// curTokenIs returns true if the current token has the given type.
func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekTokenIs returns true if the next token has the given type.
func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek validates that the next token is of the given type, and
// advances if it is. If it's a different type, then an error is stored.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(context, t)
	return false
}

// peekPrecedence returns the precedence of the next token.
func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token.
func (p *Parser) currentPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}
