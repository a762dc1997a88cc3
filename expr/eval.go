package expr

import (
	"fmt"
	"math"
	"math/cmplx"
)

// ErrorKind identifies the category of an evaluation error.
type ErrorKind int

const (
	// ErrIncomplete indicates the expression contains a variable or
	// memory reference with no value in the environment.
	ErrIncomplete ErrorKind = iota

	// ErrDivisionByZero indicates a division whose divisor evaluated
	// to zero.
	ErrDivisionByZero
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrIncomplete:
		return "incomplete"
	case ErrDivisionByZero:
		return "division by zero"
	default:
		return "unknown"
	}
}

// EvaluationError is returned when an expression cannot be reduced to a
// complex number.
type EvaluationError struct {
	Kind    ErrorKind
	Message string
}

func (e *EvaluationError) Error() string { return e.Message }

func evalErrorf(kind ErrorKind, format string, args ...interface{}) error {
	return &EvaluationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsDivisionByZero returns true if the error is an EvaluationError with
// kind ErrDivisionByZero.
func IsDivisionByZero(err error) bool {
	e, ok := err.(*EvaluationError)
	return ok && e.Kind == ErrDivisionByZero
}

// IsIncomplete returns true if the error is an EvaluationError with kind
// ErrIncomplete.
func IsIncomplete(err error) bool {
	e, ok := err.(*EvaluationError)
	return ok && e.Kind == ErrIncomplete
}

// Environment supplies values for the symbols in an expression: variable
// bindings by name and memory region contents by region name.
type Environment struct {
	Variables map[string]complex128
	Memory    map[string][]float64
}

func (e *Environment) variable(name string) (complex128, bool) {
	if e == nil {
		return 0, false
	}
	v, ok := e.Variables[name]
	return v, ok
}

func (e *Environment) memory(ref MemoryReference) (float64, bool) {
	if e == nil {
		return 0, false
	}
	region, ok := e.Memory[ref.Name]
	if !ok || ref.Index >= uint64(len(region)) {
		return 0, false
	}
	return region[ref.Index], true
}

func (x *Number) Evaluate(env *Environment) (complex128, error) {
	return x.Value, nil
}

func (x *Pi) Evaluate(env *Environment) (complex128, error) {
	return complex(math.Pi, 0), nil
}

func (x *Variable) Evaluate(env *Environment) (complex128, error) {
	if v, ok := env.variable(x.Name); ok {
		return v, nil
	}
	return 0, evalErrorf(ErrIncomplete, "variable %%%s has no value", x.Name)
}

func (x *Reference) Evaluate(env *Environment) (complex128, error) {
	if v, ok := env.memory(x.Ref); ok {
		return complex(v, 0), nil
	}
	return 0, evalErrorf(ErrIncomplete, "memory reference %s has no value", x.Ref)
}

func (x *Call) Evaluate(env *Environment) (complex128, error) {
	arg, err := x.Arg.Evaluate(env)
	if err != nil {
		return 0, err
	}
	return applyFunction(x.Fn, arg), nil
}

func (x *Infix) Evaluate(env *Environment) (complex128, error) {
	left, err := x.X.Evaluate(env)
	if err != nil {
		return 0, err
	}
	right, err := x.Y.Evaluate(env)
	if err != nil {
		return 0, err
	}
	return applyOperator(x.Op, left, right)
}

func (x *Prefix) Evaluate(env *Environment) (complex128, error) {
	v, err := x.X.Evaluate(env)
	if err != nil {
		return 0, err
	}
	if x.Op == OpSub {
		return -v, nil
	}
	return v, nil
}

func applyFunction(fn Function, arg complex128) complex128 {
	switch fn {
	case Cis:
		return cmplx.Exp(complex(0, 1) * arg)
	case Cos:
		return cmplx.Cos(arg)
	case Exp:
		return cmplx.Exp(arg)
	case Sin:
		return cmplx.Sin(arg)
	case Sqrt:
		return cmplx.Sqrt(arg)
	default:
		return cmplx.NaN()
	}
}

func applyOperator(op Operator, left, right complex128) (complex128, error) {
	switch op {
	case OpAdd:
		return left + right, nil
	case OpSub:
		return left - right, nil
	case OpMul:
		return left * right, nil
	case OpDiv:
		if right == 0 {
			return 0, evalErrorf(ErrDivisionByZero, "division by zero")
		}
		return left / right, nil
	case OpPow:
		return cmplx.Pow(left, right), nil
	default:
		return 0, evalErrorf(ErrIncomplete, "unknown operator %q", string(op))
	}
}
