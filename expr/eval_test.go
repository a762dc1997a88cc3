package expr

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

func assertClose(t *testing.T, expected, actual complex128) {
	t.Helper()
	if cmplx.Abs(expected-actual) > 1e-9 {
		t.Errorf("expected %v, got %v", expected, actual)
	}
}

func TestEvaluateConstants(t *testing.T) {
	v, err := (&Number{Value: complex(2.5, 0)}).Evaluate(nil)
	assert.Nil(t, err)
	assert.Equal(t, complex(2.5, 0), v)

	v, err = (&Pi{}).Evaluate(nil)
	assert.Nil(t, err)
	assert.Equal(t, complex(math.Pi, 0), v)
}

func TestEvaluateArithmetic(t *testing.T) {
	// 2*pi*0.25 is a quarter turn
	e := &Infix{
		X:  &Infix{X: &Number{Value: 2}, Op: OpMul, Y: &Pi{}},
		Op: OpMul,
		Y:  &Number{Value: complex(0.25, 0)},
	}
	v, err := e.Evaluate(nil)
	assert.Nil(t, err)
	assertClose(t, complex(math.Pi/2, 0), v)

	// Exponentiation is right-assoc at the parser level; evaluation is
	// plain complex pow
	p := &Infix{X: &Number{Value: 2}, Op: OpPow, Y: &Number{Value: 10}}
	v, err = p.Evaluate(nil)
	assert.Nil(t, err)
	assertClose(t, complex(1024, 0), v)
}

func TestEvaluateSqrtOfNegative(t *testing.T) {
	// sqrt(-1) promotes to the imaginary unit rather than erroring
	e := &Call{Fn: Sqrt, Arg: &Number{Value: complex(-1, 0)}}
	v, err := e.Evaluate(nil)
	assert.Nil(t, err)
	assertClose(t, complex(0, 1), v)
}

func TestEvaluateFunctions(t *testing.T) {
	v, err := (&Call{Fn: Sin, Arg: &Infix{X: &Pi{}, Op: OpDiv, Y: &Number{Value: 2}}}).Evaluate(nil)
	assert.Nil(t, err)
	assertClose(t, complex(1, 0), v)

	v, err = (&Call{Fn: Cos, Arg: &Number{Value: 0}}).Evaluate(nil)
	assert.Nil(t, err)
	assertClose(t, complex(1, 0), v)

	v, err = (&Call{Fn: Exp, Arg: &Number{Value: 0}}).Evaluate(nil)
	assert.Nil(t, err)
	assertClose(t, complex(1, 0), v)

	// cis(pi) = -1
	v, err = (&Call{Fn: Cis, Arg: &Pi{}}).Evaluate(nil)
	assert.Nil(t, err)
	assertClose(t, complex(-1, 0), v)
}

func TestEvaluateVariables(t *testing.T) {
	e := &Infix{
		X:  &Variable{Name: "foo"},
		Op: OpAdd,
		Y:  &Variable{Name: "bar"},
	}
	env := &Environment{Variables: map[string]complex128{
		"foo": 10,
		"bar": 100,
	}}
	v, err := e.Evaluate(env)
	assert.Nil(t, err)
	assert.Equal(t, complex(110, 0), v)
}

func TestEvaluateMemory(t *testing.T) {
	e := &Infix{
		X:  &Reference{Ref: MemoryReference{Name: "theta", Index: 1}},
		Op: OpMul,
		Y:  &Reference{Ref: MemoryReference{Name: "beta", Index: 0}},
	}
	env := &Environment{Memory: map[string][]float64{
		"theta": {0, 2},
		"beta":  {3.1},
	}}
	v, err := e.Evaluate(env)
	assert.Nil(t, err)
	assertClose(t, complex(6.2, 0), v)
}

func TestEvaluateIncomplete(t *testing.T) {
	e := &Infix{X: &Variable{Name: "theta"}, Op: OpMul, Y: &Number{Value: 2}}
	_, err := e.Evaluate(nil)
	assert.NotNil(t, err)
	assert.True(t, IsIncomplete(err))
	assert.Contains(t, err.Error(), "%theta")

	// A memory reference past the end of its region is also incomplete
	r := &Reference{Ref: MemoryReference{Name: "ro", Index: 4}}
	_, err = r.Evaluate(&Environment{Memory: map[string][]float64{"ro": {1}}})
	assert.NotNil(t, err)
	assert.True(t, IsIncomplete(err))
}

func TestEvaluateDivisionByZero(t *testing.T) {
	e := &Infix{X: &Number{Value: 1}, Op: OpDiv, Y: &Number{Value: 0}}
	_, err := e.Evaluate(nil)
	assert.NotNil(t, err)
	assert.True(t, IsDivisionByZero(err))
	assert.False(t, IsIncomplete(err))
	assert.Equal(t, "division by zero", err.Error())

	// The divisor only has to evaluate to zero
	e = &Infix{
		X:  &Number{Value: 1},
		Op: OpDiv,
		Y:  &Infix{X: &Number{Value: 2}, Op: OpSub, Y: &Number{Value: 2}},
	}
	_, err = e.Evaluate(nil)
	assert.True(t, IsDivisionByZero(err))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "incomplete", ErrIncomplete.String())
	assert.Equal(t, "division by zero", ErrDivisionByZero.String())
}
