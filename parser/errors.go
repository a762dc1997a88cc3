package parser

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/quill/errors"
	"github.com/deepnoodle-ai/quill/token"
)

// ErrorOpts is a struct that holds a variety of error data. All fields are
// optional, although one of `Cause` or `Message` are recommended. If `Cause`
// is set, `Message` will be ignored.
type ErrorOpts struct {
	ErrType       string
	Message       string
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
	Expected      []token.Type
	Found         token.Token
	Hint          string
}

// ParserError is an interface that all parser errors implement.
type ParserError interface {
	Type() string
	Message() string
	Cause() error
	File() string
	StartPosition() token.Position
	EndPosition() token.Position
	SourceCode() string
	Error() string
	errors.FriendlyError
}

// NewParseError returns a new ParseError populated with the given error data.
func NewParseError(opts ErrorOpts) *ParseError {
	if opts.ErrType == "" {
		opts.ErrType = "parse error"
	}
	return &ParseError{
		errType:       opts.ErrType,
		message:       opts.Message,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
		expected:      opts.Expected,
		found:         opts.Found,
		hint:          opts.Hint,
	}
}

// ParseError describes the first point at which the input stopped matching
// the grammar. Parsing is fail-fast, so a single ParseError accounts for the
// whole parse: it carries the offending token, its location, and the set of
// token types that would have been acceptable there.
type ParseError struct {
	errType       string
	message       string
	cause         error
	file          string
	startPosition token.Position
	endPosition   token.Position
	sourceCode    string
	expected      []token.Type
	found         token.Token
	hint          string
}

func (e *ParseError) Error() string {
	var msg string
	if e.cause != nil {
		msg = e.cause.Error()
	} else if e.message != "" {
		msg = e.message
	}
	if e.errType != "" {
		msg = fmt.Sprintf("%s: %s", e.errType, msg)
	}
	return msg
}

func (e *ParseError) FriendlyErrorMessage() string {
	formatter := errors.NewFormatter(false)
	return formatter.Format(e.ToFormatted())
}

// ToFormatted converts the parser error to a FormattedError for display.
func (e *ParseError) ToFormatted() *errors.FormattedError {
	start := e.StartPosition()
	end := e.EndPosition()

	message := e.message
	if e.cause != nil {
		message = e.cause.Error()
	}

	return &errors.FormattedError{
		Code:      e.Code(),
		Kind:      e.errType,
		Message:   message,
		Filename:  e.file,
		Line:      start.LineNumber(),
		Column:    start.ColumnNumber(),
		EndColumn: end.ColumnNumber(),
		SourceLines: []errors.SourceLineEntry{
			{Number: start.LineNumber(), Text: e.sourceCode, IsMain: true},
		},
		Hint: e.hint,
	}
}

// Code classifies the error for display and tooling.
func (e *ParseError) Code() errors.ErrorCode {
	msg := e.message
	if e.cause != nil {
		msg = e.cause.Error()
	}
	if e.errType == "syntax error" {
		switch {
		case strings.Contains(msg, "unterminated string"):
			return errors.E1002
		case strings.Contains(msg, "number literal"):
			return errors.E1003
		case strings.Contains(msg, "escape sequence"):
			return errors.E1004
		}
		return errors.E1001
	}
	switch {
	case strings.Contains(msg, "nesting depth"):
		return errors.E1008
	case strings.Contains(msg, "indentation outside"):
		return errors.E1009
	}
	if len(e.expected) > 0 {
		if containsType(e.expected, token.RPAREN) || containsType(e.expected, token.RBRACKET) {
			return errors.E1007
		}
		if containsType(e.expected, token.INT) && containsType(e.expected, token.IDENT) &&
			!containsType(e.expected, token.FLOAT) {
			return errors.E1005
		}
		if len(e.expected) == 1 && e.expected[0] == token.IDENT {
			return errors.E1006
		}
	}
	return errors.E1001
}

// Location returns the error position as a SourceLocation.
func (e *ParseError) Location() errors.SourceLocation {
	return errors.SourceLocation{
		Filename: e.file,
		Line:     e.startPosition.LineNumber(),
		Column:   e.startPosition.ColumnNumber(),
		Source:   e.sourceCode,
	}
}

func containsType(types []token.Type, t token.Type) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func (e *ParseError) Cause() error {
	return e.cause
}

func (e *ParseError) Message() string {
	return e.message
}

func (e *ParseError) StartPosition() token.Position {
	return e.startPosition
}

func (e *ParseError) EndPosition() token.Position {
	return e.endPosition
}

func (e *ParseError) File() string {
	return e.file
}

func (e *ParseError) SourceCode() string {
	return e.sourceCode
}

// Expected returns the token types that were acceptable at the error
// location. Empty when the error was not a token mismatch.
func (e *ParseError) Expected() []token.Type {
	return e.expected
}

// Found returns the token actually encountered at the error location.
func (e *ParseError) Found() token.Token {
	return e.found
}

// Hint returns an optional "Did you mean?" suggestion for the error.
func (e *ParseError) Hint() string {
	return e.hint
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

func (e *ParseError) Type() string {
	return e.errType
}

// suggestCommand attaches a near-miss hint to the pending error when a
// failed gate application was probably a mistyped command keyword. Lexer
// errors are left alone.
func (p *Parser) suggestCommand(name string) {
	pe, ok := p.err.(*ParseError)
	if !ok || pe.hint != "" {
		return
	}
	if name == "" || name != strings.ToUpper(name) {
		return
	}
	pe.hint = errors.FormatSuggestions(errors.SuggestSimilar(name, token.Commands()))
}

// NewSyntaxError returns a new SyntaxError populated with the given error
// data. Syntax errors come from the lexer.
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	opts.ErrType = "syntax error"
	return &SyntaxError{ParseError: NewParseError(opts)}
}

type SyntaxError struct {
	*ParseError
}

func tokenTypeDescription(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return "identifier"
	case token.NEWLINE:
		return "newline"
	case token.INDENT:
		return "indentation"
	case token.INT:
		return "integer"
	case token.FLOAT:
		return "number"
	case token.STRING:
		return "string"
	case token.TARGET:
		return "label"
	case token.VARIABLE:
		return "parameter"
	default:
		return string(t)
	}
}

// expectedDescription joins acceptable token types for an error message.
func expectedDescription(expected []token.Type) string {
	parts := make([]string, len(expected))
	for i, t := range expected {
		parts[i] = tokenTypeDescription(t)
	}
	return strings.Join(parts, " or ")
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	case token.NEWLINE:
		return "newline"
	case token.INDENT:
		return "indentation"
	default:
		if t.Literal == "" {
			return string(t.Type)
		}
		return fmt.Sprintf("%q", t.Literal)
	}
}
