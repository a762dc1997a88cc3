// Package lexer provides tokenization of Quil source text.
//
// The lexer is line oriented: newlines are significant and produce NEWLINE
// tokens, semicolons are treated as line breaks, and a run of leading tabs
// (or four or more leading spaces) produces a single INDENT token marking a
// definition body line. Comments run from '#' to the end of the line and are
// never tokenized.
package lexer

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/quill/token"
)

// Error is a lexical error found while scanning the input.
type Error struct {
	Msg           string
	StartPosition token.Position
	EndPosition   token.Position
}

func (e *Error) Error() string { return e.Msg }

// Option is a configuration function for the Lexer.
type Option func(*Lexer)

// WithFile sets the filename associated with the input, for use in token
// positions and error messages.
func WithFile(filename string) Option {
	return func(l *Lexer) {
		l.file = filename
	}
}

// Lexer scans an input string and produces a stream of tokens.
type Lexer struct {
	input        string
	position     int  // byte offset of the current character
	readPosition int  // byte offset after the current character
	ch           byte // current character
	line         int  // 0-indexed line number
	lineStart    int  // byte offset of the start of the current line
	file         string
	atLineStart  bool
}

// New returns a Lexer for the given input.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{input: input, atLineStart: true}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Tokenize scans the entire input and returns all tokens including the
// trailing EOF token. The first lexical error stops the scan.
func Tokenize(input string, opts ...Option) ([]token.Token, error) {
	l := New(input, opts...)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Filename returns the filename associated with the input.
func (l *Lexer) Filename() string { return l.file }

// SetFilename sets the filename associated with the input.
func (l *Lexer) SetFilename(filename string) { l.file = filename }

// Position returns the position of the current character.
func (l *Lexer) Position() token.Position {
	return token.Position{
		Char:      l.position,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.position - l.lineStart,
		File:      l.file,
	}
}

// GetLineText returns the text of the line containing the given token. For
// an EOF token following a final newline, the previous line is returned as
// context.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start > len(l.input) {
		start = len(l.input)
	}
	text := l.lineAt(start)
	if text == "" && start > 0 && tok.Type == token.EOF {
		prev := start - 1 // step back over the newline
		for prev > 0 && l.input[prev-1] != '\n' {
			prev--
		}
		return l.lineAt(prev)
	}
	return text
}

func (l *Lexer) lineAt(start int) string {
	rest := l.input[start:]
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimSuffix(rest, "\r")
}

// Next returns the next token in the input. A returned error indicates a
// lexical problem such as an unterminated string or a malformed number, and
// further calls are not meaningful.
func (l *Lexer) Next() (token.Token, error) {
	if l.atLineStart {
		l.atLineStart = false
		if tok, ok := l.readIndent(); ok {
			return tok, nil
		}
	}
	for {
		l.skipSpace()
		if l.ch != '#' {
			break
		}
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
	}
	start := l.Position()
	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, StartPosition: start, EndPosition: start}, nil
	case l.ch == '\n':
		l.readChar()
		tok := token.Token{Type: token.NEWLINE, Literal: "\n", StartPosition: start, EndPosition: l.Position()}
		l.line++
		l.lineStart = l.position
		l.atLineStart = true
		return tok, nil
	case l.ch == ';':
		// Semicolons separate instructions exactly like line breaks, but
		// cannot introduce an indented body line.
		l.readChar()
		return token.Token{Type: token.NEWLINE, Literal: ";", StartPosition: start, EndPosition: l.Position()}, nil
	case l.ch == '@':
		l.readChar()
		if !isLetter(l.ch) {
			return token.Token{}, l.errorf(start, "expected a label name after '@'")
		}
		name := l.readIdentifier()
		return l.newToken(token.TARGET, start, name), nil
	case l.ch == '%':
		l.readChar()
		if !isLetter(l.ch) {
			return token.Token{}, l.errorf(start, "expected a parameter name after '%%'")
		}
		name := l.readIdentifier()
		return l.newToken(token.VARIABLE, start, name), nil
	case l.ch == '"':
		return l.readString(start)
	case isDigit(l.ch):
		return l.readNumber(start)
	case isLetter(l.ch):
		ident := l.readIdentifier()
		return l.newToken(token.LookupIdentifier(ident), start, ident), nil
	}
	var typ token.Type
	switch l.ch {
	case '(':
		typ = token.LPAREN
	case ')':
		typ = token.RPAREN
	case '[':
		typ = token.LBRACKET
	case ']':
		typ = token.RBRACKET
	case ',':
		typ = token.COMMA
	case ':':
		typ = token.COLON
	case '+':
		typ = token.PLUS
	case '-':
		typ = token.MINUS
	case '*':
		typ = token.ASTERISK
	case '/':
		typ = token.SLASH
	case '^':
		typ = token.CARET
	default:
		return token.Token{}, l.errorf(start, "unexpected character %q", string(l.ch))
	}
	literal := string(l.ch)
	l.readChar()
	return l.newToken(typ, start, literal), nil
}

func (l *Lexer) newToken(typ token.Type, start token.Position, literal string) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.Position(),
	}
}

func (l *Lexer) errorf(start token.Position, format string, args ...interface{}) error {
	return &Error{
		Msg:           fmt.Sprintf(format, args...),
		StartPosition: start,
		EndPosition:   l.Position(),
	}
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipSpace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// readIndent consumes leading indentation at the start of a line. A run of
// tabs, or of four or more spaces, yields one INDENT token. Shorter space
// runs are insignificant whitespace.
func (l *Lexer) readIndent() (token.Token, bool) {
	start := l.Position()
	from := l.position
	if l.ch == '\t' {
		for l.ch == '\t' {
			l.readChar()
		}
		return l.newToken(token.INDENT, start, l.input[from:l.position]), true
	}
	if l.ch == ' ' {
		end := l.position
		for end < len(l.input) && l.input[end] == ' ' {
			end++
		}
		if end-from >= 4 {
			for l.position < end {
				l.readChar()
			}
			return l.newToken(token.INDENT, start, l.input[from:l.position]), true
		}
	}
	return token.Token{}, false
}

// readIdentifier reads an identifier starting at the current character.
// Identifiers may contain interior dashes (RAW-CAPTURE, INITIAL-FREQUENCY)
// but never end with one, so trailing dashes are left for the operator
// scanner.
func (l *Lexer) readIdentifier() string {
	from := l.position
	end := l.position
	for end < len(l.input) && isIdentChar(l.input[end]) {
		end++
	}
	for end > from+1 && l.input[end-1] == '-' {
		end--
	}
	for l.position < end {
		l.readChar()
	}
	return l.input[from:end]
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	from := l.position
	typ := token.INT
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		if !isDigit(l.peekChar()) {
			return token.Token{}, l.errorf(start, "invalid number literal %q", l.input[from:l.readPosition])
		}
		typ = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		typ = token.FLOAT
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			return token.Token{}, l.errorf(start, "invalid number literal %q", l.input[from:l.position])
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	// A trailing 'i' marks an imaginary literal: 2i, 0.5i, 1e3i.
	if l.ch == 'i' && !isIdentChar(l.peekChar()) {
		typ = token.FLOAT
		l.readChar()
		return l.newToken(typ, start, l.input[from:l.position]), nil
	}
	if l.ch == '.' || isLetter(l.ch) {
		for isDigit(l.ch) || isLetter(l.ch) || l.ch == '.' {
			l.readChar()
		}
		return token.Token{}, l.errorf(start, "invalid number literal %q", l.input[from:l.position])
	}
	return l.newToken(typ, start, l.input[from:l.position]), nil
}

func (l *Lexer) readString(start token.Position) (token.Token, error) {
	l.readChar() // consume the opening quote
	var sb strings.Builder
	for {
		switch l.ch {
		case 0, '\n':
			return token.Token{}, l.errorf(start, "unterminated string literal")
		case '"':
			l.readChar()
			return l.newToken(token.STRING, start, sb.String()), nil
		case '\\':
			l.readChar()
			switch l.ch {
			case '"', '\\':
				sb.WriteByte(l.ch)
				l.readChar()
			default:
				return token.Token{}, l.errorf(start, "invalid escape sequence in string literal")
			}
		default:
			sb.WriteByte(l.ch)
			l.readChar()
		}
	}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '-'
}
