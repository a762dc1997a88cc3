package parser

import "github.com/deepnoodle-ai/quill/token"

// Precedence order for operators
const (
	_ int = iota
	LOWEST
	SUM     // + or -
	PRODUCT // * or /
	POWER   // ^
	PREFIX  // -x
	CALL    // sin(x)
)

// Precedences for each token type
var precedences = map[token.Type]int{
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.CARET:    POWER,
	token.LPAREN:   CALL,
}
