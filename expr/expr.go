// Package expr defines the arithmetic expressions that appear in gate
// parameters, definition bodies, and waveform samples.
//
// Expressions are immutable values carrying no source positions. All
// arithmetic is complex valued. An expression can be simplified (constant
// folding), have its variables substituted, or be fully evaluated to a
// complex number. Equality and hashing are defined on simplified forms, so
// spellings that fold to the same value compare equal.
package expr

import (
	"strconv"
	"strings"
)

// Expression is an arithmetic expression tree. Implementations are Number,
// Pi, Variable, Reference, Call, Infix, and Prefix.
type Expression interface {
	// String returns the canonical textual form of the expression.
	String() string

	// Simplify returns an equivalent expression with constant subtrees
	// folded. Unbound variables and references survive. Division by a
	// constant zero is left unfolded; only Evaluate reports it.
	Simplify() Expression

	// Substitute returns an equivalent expression with bound variables
	// replaced by number literals. Unbound variables remain symbolic.
	Substitute(bindings Bindings) Expression

	// Evaluate reduces the expression to a single complex number using
	// the given environment, which may be nil. An expression containing
	// symbols missing from the environment evaluates to an Incomplete
	// error; dividing by zero evaluates to a DivisionByZero error.
	Evaluate(env *Environment) (complex128, error)

	exprNode()
}

// Bindings maps variable names to complex values for substitution.
type Bindings map[string]complex128

// MemoryReference identifies one slot of a named memory region. A bare
// region name in source text refers to slot zero.
type MemoryReference struct {
	Name  string
	Index uint64
}

func (r MemoryReference) String() string {
	return r.Name + "[" + strconv.FormatUint(r.Index, 10) + "]"
}

// Operator is an arithmetic operator symbol.
type Operator string

// Operators usable in Infix and Prefix expressions. Prefix expressions are
// limited to OpAdd and OpSub.
const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
	OpPow Operator = "^"
)

// Function is a built-in function usable in a Call expression.
type Function string

// The built-in functions.
const (
	Cis  Function = "cis"
	Cos  Function = "cos"
	Exp  Function = "exp"
	Sin  Function = "sin"
	Sqrt Function = "sqrt"
)

// LookupFunction resolves a source spelling to a built-in function. Names
// are case insensitive (SQRT and sqrt are the same function).
func LookupFunction(name string) (Function, bool) {
	switch Function(strings.ToLower(name)) {
	case Cis:
		return Cis, true
	case Cos:
		return Cos, true
	case Exp:
		return Exp, true
	case Sin:
		return Sin, true
	case Sqrt:
		return Sqrt, true
	}
	return "", false
}

// Number is a complex number literal.
type Number struct {
	Value complex128
}

func (x *Number) exprNode() {}

func (x *Number) String() string { return FormatComplex(x.Value) }

// Pi is the built-in constant π. It stays symbolic until simplified or
// evaluated.
type Pi struct{}

func (x *Pi) exprNode() {}

func (x *Pi) String() string { return "pi" }

// Variable is a formal parameter, written %name in source text.
type Variable struct {
	Name string
}

func (x *Variable) exprNode() {}

func (x *Variable) String() string { return "%" + x.Name }

// Reference reads one slot of a memory region.
type Reference struct {
	Ref MemoryReference
}

func (x *Reference) exprNode() {}

func (x *Reference) String() string { return x.Ref.String() }

// Call applies a built-in function to an argument.
type Call struct {
	Fn  Function
	Arg Expression
}

func (x *Call) exprNode() {}

func (x *Call) String() string {
	return string(x.Fn) + "(" + x.Arg.String() + ")"
}

// Infix applies a binary operator to two operands.
type Infix struct {
	X  Expression
	Op Operator
	Y  Expression
}

func (x *Infix) exprNode() {}

func (x *Infix) String() string {
	return "(" + x.X.String() + string(x.Op) + x.Y.String() + ")"
}

// Prefix applies a unary operator to an operand.
type Prefix struct {
	Op Operator
	X  Expression
}

func (x *Prefix) exprNode() {}

func (x *Prefix) String() string {
	return "(" + string(x.Op) + x.X.String() + ")"
}

// FormatComplex renders a complex value the way the language writes it: the
// imaginary part is dropped when zero, a pure imaginary value is written
// with a trailing "i", and a full complex value is written as "a+bi" or
// "a-bi".
func FormatComplex(v complex128) string {
	re, im := real(v), imag(v)
	switch {
	case im == 0:
		return formatFloat(re)
	case re == 0:
		return formatFloat(im) + "i"
	case im < 0:
		return formatFloat(re) + formatFloat(im) + "i"
	default:
		return formatFloat(re) + "+" + formatFloat(im) + "i"
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
