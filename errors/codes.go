package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - E2xxx: Validation errors
//   - E3xxx: Evaluation errors
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Unterminated string literal
	E1003 ErrorCode = "E1003" // Invalid number literal
	E1004 ErrorCode = "E1004" // Invalid escape sequence
	E1005 ErrorCode = "E1005" // Expected qubit
	E1006 ErrorCode = "E1006" // Expected identifier
	E1007 ErrorCode = "E1007" // Unclosed delimiter
	E1008 ErrorCode = "E1008" // Maximum nesting depth exceeded
	E1009 ErrorCode = "E1009" // Unexpected indentation

	// Validation errors (E2xxx)
	E2001 ErrorCode = "E2001" // Duplicate label
	E2002 ErrorCode = "E2002" // Unresolved jump target
	E2003 ErrorCode = "E2003" // Undeclared memory reference
	E2004 ErrorCode = "E2004" // Gate arity mismatch
	E2005 ErrorCode = "E2005" // Duplicate memory region

	// Evaluation errors (E3xxx)
	E3001 ErrorCode = "E3001" // Incomplete evaluation
	E3002 ErrorCode = "E3002" // Division by zero
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "unterminated string literal",
	E1003: "invalid number literal",
	E1004: "invalid escape sequence",
	E1005: "expected qubit",
	E1006: "expected identifier",
	E1007: "unclosed delimiter",
	E1008: "maximum nesting depth exceeded",
	E1009: "unexpected indentation",

	E2001: "duplicate label",
	E2002: "unresolved jump target",
	E2003: "undeclared memory reference",
	E2004: "gate arity mismatch",
	E2005: "duplicate memory region",

	E3001: "incomplete evaluation",
	E3002: "division by zero",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '2':
		return "validation"
	case '3':
		return "evaluation"
	default:
		return "unknown"
	}
}
