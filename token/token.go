// Package token defines language keywords and tokens used when lexing source code.
package token

import "sort"

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the file
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes.
// Used for computing End positions from a start position.
// Note: This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"
	NEWLINE Type = "EOL"
	INDENT  Type = "INDENT"

	IDENT    Type = "IDENT"
	INT      Type = "INT"
	FLOAT    Type = "FLOAT"
	STRING   Type = "STRING"
	TARGET   Type = "TARGET"   // @name
	VARIABLE Type = "VARIABLE" // %name

	LPAREN   Type = "("
	RPAREN   Type = ")"
	LBRACKET Type = "["
	RBRACKET Type = "]"
	COMMA    Type = ","
	COLON    Type = ":"
	PLUS     Type = "+"
	MINUS    Type = "-"
	ASTERISK Type = "*"
	SLASH    Type = "/"
	CARET    Type = "^"

	// Instruction commands
	ADD        Type = "ADD"
	AND        Type = "AND"
	CAPTURE    Type = "CAPTURE"
	DECLARE    Type = "DECLARE"
	DEFCAL     Type = "DEFCAL"
	DEFCIRCUIT Type = "DEFCIRCUIT"
	DEFFRAME   Type = "DEFFRAME"
	DEFGATE    Type = "DEFGATE"
	DEFWAVE    Type = "DEFWAVEFORM"
	DELAY      Type = "DELAY"
	DIV        Type = "DIV"
	EXCHANGE   Type = "EXCHANGE"
	FENCE      Type = "FENCE"
	HALT       Type = "HALT"
	IOR        Type = "IOR"
	JUMP       Type = "JUMP"
	JUMPUNLESS Type = "JUMP-UNLESS"
	JUMPWHEN   Type = "JUMP-WHEN"
	LABEL      Type = "LABEL"
	LOAD       Type = "LOAD"
	MEASURE    Type = "MEASURE"
	MOVE       Type = "MOVE"
	MUL        Type = "MUL"
	NEG        Type = "NEG"
	NOP        Type = "NOP"
	NOT        Type = "NOT"
	PRAGMA     Type = "PRAGMA"
	PULSE      Type = "PULSE"
	RAWCAPTURE Type = "RAW-CAPTURE"
	RESET      Type = "RESET"
	STORE      Type = "STORE"
	SUB        Type = "SUB"
	WAIT       Type = "WAIT"
	XOR        Type = "XOR"

	// Gate modifiers
	CONTROLLED Type = "CONTROLLED"
	DAGGER     Type = "DAGGER"
	FORKED     Type = "FORKED"

	// Keywords that only appear inside instructions
	AS          Type = "AS"
	MATRIX      Type = "MATRIX"
	NONBLOCKING Type = "NONBLOCKING"
	OFFSET      Type = "OFFSET"
	PERMUTATION Type = "PERMUTATION"
	SHARING     Type = "SHARING"

	// Memory region data types
	BIT     Type = "BIT"
	INTEGER Type = "INTEGER"
	OCTET   Type = "OCTET"
	REAL    Type = "REAL"
)

// Reserved keywords. Commands are case sensitive and always uppercase.
var keywords = map[string]Type{
	"ADD":         ADD,
	"AND":         AND,
	"AS":          AS,
	"BIT":         BIT,
	"CAPTURE":     CAPTURE,
	"CONTROLLED":  CONTROLLED,
	"DAGGER":      DAGGER,
	"DECLARE":     DECLARE,
	"DEFCAL":      DEFCAL,
	"DEFCIRCUIT":  DEFCIRCUIT,
	"DEFFRAME":    DEFFRAME,
	"DEFGATE":     DEFGATE,
	"DEFWAVEFORM": DEFWAVE,
	"DELAY":       DELAY,
	"DIV":         DIV,
	"EXCHANGE":    EXCHANGE,
	"FENCE":       FENCE,
	"FORKED":      FORKED,
	"HALT":        HALT,
	"INTEGER":     INTEGER,
	"IOR":         IOR,
	"JUMP":        JUMP,
	"JUMP-UNLESS": JUMPUNLESS,
	"JUMP-WHEN":   JUMPWHEN,
	"LABEL":       LABEL,
	"LOAD":        LOAD,
	"MATRIX":      MATRIX,
	"MEASURE":     MEASURE,
	"MOVE":        MOVE,
	"MUL":         MUL,
	"NEG":         NEG,
	"NONBLOCKING": NONBLOCKING,
	"NOP":         NOP,
	"NOT":         NOT,
	"OCTET":       OCTET,
	"OFFSET":      OFFSET,
	"PERMUTATION": PERMUTATION,
	"PRAGMA":      PRAGMA,
	"PULSE":       PULSE,
	"RAW-CAPTURE": RAWCAPTURE,
	"REAL":        REAL,
	"RESET":       RESET,
	"SHARING":     SHARING,
	"STORE":       STORE,
	"SUB":         SUB,
	"WAIT":        WAIT,
	"XOR":         XOR,
}

// LookupIdentifier returns the keyword token type for the given identifier,
// or IDENT if it is not a reserved keyword.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}

// IsCommand returns true if the token type begins an instruction.
func IsCommand(t Type) bool {
	switch t {
	case ADD, AND, CAPTURE, DECLARE, DEFCAL, DEFCIRCUIT, DEFFRAME, DEFGATE,
		DEFWAVE, DELAY, DIV, EXCHANGE, FENCE, HALT, IOR, JUMP, JUMPUNLESS,
		JUMPWHEN, LABEL, LOAD, MEASURE, MOVE, MUL, NEG, NONBLOCKING, NOP,
		NOT, PRAGMA, PULSE, RAWCAPTURE, RESET, STORE, SUB, WAIT, XOR:
		return true
	}
	return false
}

// IsModifier returns true if the token type is a gate modifier.
func IsModifier(t Type) bool {
	return t == CONTROLLED || t == DAGGER || t == FORKED
}

// Commands returns the spellings of all keywords that begin an instruction,
// sorted. Used for near-miss suggestions in parse errors.
func Commands() []string {
	var names []string
	for name, t := range keywords {
		if IsCommand(t) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
